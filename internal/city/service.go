package city

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/osse101/CityProduction_Go/internal/domain"
	"github.com/osse101/CityProduction_Go/internal/logger"
	"github.com/osse101/CityProduction_Go/internal/production"
	"github.com/osse101/CityProduction_Go/internal/repository"
	"github.com/osse101/CityProduction_Go/internal/worker"
)

// Rules is the rule set a service computes against; *rules.Registry implements it
type Rules interface {
	production.PolicyLookup
	Digest() string
}

// Config tunes the recomputation service
type Config struct {
	// StrictParity fails a resource type on an odd flat-after contribution.
	// When false the contribution is skipped and counted on the line instead.
	StrictParity     bool
	Workers          int
	CacheSize        int
	CacheTTL         time.Duration
	PersistWorkers   int
	PersistQueueSize int
	// PersistTimeout bounds one report save; zero uses the pool default
	PersistTimeout   time.Duration
}

// Service recomputes city production from contribution feeds
type Service interface {
	Recompute(ctx context.Context, in domain.CityContributions) (*domain.CityProductionReport, error)
	RecomputeTurn(ctx context.Context, turn int, cities []domain.CityContributions) (*domain.TurnReport, error)
	LatestReport(ctx context.Context, cityID string) (*domain.CityProductionReport, error)
	Shutdown(ctx context.Context) error
}

type service struct {
	rules  Rules
	engine *production.Engine
	repo   repository.ProductionReports
	pool   *worker.Pool
	cache  *reportCache
	cfg    Config
}

// NewService creates a recomputation service. repo may be nil, in which case
// reports live only in the cache.
func NewService(rules Rules, repo repository.ProductionReports, cfg Config) Service {
	cfg = cfg.withDefaults()

	s := &service{
		rules:  rules,
		engine: production.NewEngine(rules),
		repo:   repo,
		cache:  newReportCache(cfg.CacheSize, cfg.CacheTTL),
		cfg:    cfg,
	}

	if repo != nil {
		s.pool = worker.NewPool(cfg.PersistWorkers, cfg.PersistQueueSize).WithJobTimeout(cfg.PersistTimeout)
		s.pool.Start()
	}
	return s
}

func (c Config) withDefaults() Config {
	if c.Workers < 1 {
		c.Workers = DefaultWorkers
	}
	if c.CacheSize < 1 {
		c.CacheSize = DefaultCacheSize
	}
	if c.CacheTTL <= 0 {
		c.CacheTTL = DefaultCacheTTL
	}
	if c.PersistWorkers < 1 {
		c.PersistWorkers = DefaultPersistWorkers
	}
	if c.PersistQueueSize < 1 {
		c.PersistQueueSize = DefaultPersistQueueSize
	}
	return c
}

// LatestReport returns the most recent report for a city
func (s *service) LatestReport(ctx context.Context, cityID string) (*domain.CityProductionReport, error) {
	if report, ok := s.cache.Get(cityID); ok {
		return report, nil
	}

	if s.repo == nil {
		return nil, fmt.Errorf("%w: city %q", domain.ErrReportNotFound, cityID)
	}

	report, err := s.repo.GetLatestCityReport(ctx, cityID)
	if err != nil {
		if !errors.Is(err, domain.ErrReportNotFound) {
			logger.FromContext(ctx).Error(LogMsgFailedToLoadReport, "city_id", cityID, "error", err)
		}
		return nil, err
	}

	s.cache.Add(report)
	return report, nil
}

// Shutdown waits for queued reports to be persisted
func (s *service) Shutdown(ctx context.Context) error {
	if s.pool == nil {
		return nil
	}
	logger.FromContext(ctx).Info(LogMsgPersistenceDrainStart)
	return s.pool.Stop(ctx)
}
