package city

import (
	"context"
	"errors"
	"fmt"

	"github.com/osse101/CityProduction_Go/internal/domain"
	"github.com/osse101/CityProduction_Go/internal/logger"
	"github.com/osse101/CityProduction_Go/internal/metrics"
	"github.com/osse101/CityProduction_Go/internal/repository"
	"github.com/osse101/CityProduction_Go/internal/worker"
)

// persistJob writes one report through the worker pool
type persistJob struct {
	repo      repository.ProductionReports
	report    *domain.CityProductionReport
	requestID string
	passID    string
}

// JobContext carries the IDs of the recomputation that produced the report
func (j *persistJob) JobContext(ctx context.Context) context.Context {
	if j.requestID != "" {
		ctx = logger.WithRequestID(ctx, j.requestID)
	}
	if j.passID != "" {
		ctx = logger.WithPassID(ctx, j.passID)
	}
	return ctx
}

func (j *persistJob) Process(ctx context.Context) error {
	err := j.repo.SaveCityReport(ctx, j.report)
	metrics.ReportsPersisted.WithLabelValues(metrics.Outcome(err)).Inc()
	if err != nil {
		return fmt.Errorf("save report %s for city %s: %w", j.report.ID, j.report.CityID, err)
	}
	logger.FromContext(ctx).Debug(LogMsgReportPersisted, "report_id", j.report.ID, "city_id", j.report.CityID)
	return nil
}

// persist queues a report without blocking the recomputation. When the queue
// is full the report is dropped from persistence but stays in the cache.
func (s *service) persist(ctx context.Context, report *domain.CityProductionReport) {
	if s.pool == nil {
		return
	}

	job := &persistJob{
		repo:      s.repo,
		report:    report,
		requestID: logger.GetRequestID(ctx),
		passID:    logger.GetPassID(ctx),
	}
	err := s.pool.TryEnqueue(job)
	if err == nil {
		return
	}

	metrics.ReportsPersisted.WithLabelValues(metrics.OutcomeFailure).Inc()
	if errors.Is(err, worker.ErrQueueFull) {
		logger.FromContext(ctx).Warn(LogMsgReportDropped, "city_id", report.CityID, "report_id", report.ID)
		return
	}
	logger.FromContext(ctx).Error(LogMsgFailedToEnqueue, "city_id", report.CityID, "error", err)
}
