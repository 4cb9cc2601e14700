package repository

import (
	"context"

	"github.com/osse101/CityProduction_Go/internal/domain"
)

// ProductionReports defines the interface for city production report persistence
type ProductionReports interface {
	// SaveCityReport stores a report together with all of its lines atomically
	SaveCityReport(ctx context.Context, report *domain.CityProductionReport) error
	// GetLatestCityReport returns the most recent report for a city (highest turn, then newest)
	// or domain.ErrReportNotFound
	GetLatestCityReport(ctx context.Context, cityID string) (*domain.CityProductionReport, error)
}
