package city

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/CityProduction_Go/internal/domain"
)

// MockReportRepository is a testify mock of repository.ProductionReports
type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) SaveCityReport(ctx context.Context, report *domain.CityProductionReport) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockReportRepository) GetLatestCityReport(ctx context.Context, cityID string) (*domain.CityProductionReport, error) {
	args := m.Called(ctx, cityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CityProductionReport), args.Error(1)
}
