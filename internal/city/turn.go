package city

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/osse101/CityProduction_Go/internal/domain"
	"github.com/osse101/CityProduction_Go/internal/logger"
)

// RecomputeTurn recomputes many cities in parallel for one turn. Each city's
// outcome is independent: failures are collected on the turn report. Once ctx
// is cancelled no further cities are started; the partial report is returned
// together with the context error.
func (s *service) RecomputeTurn(ctx context.Context, turn int, cities []domain.CityContributions) (*domain.TurnReport, error) {
	if turn < 0 {
		return nil, fmt.Errorf("%w: turn must not be negative", domain.ErrInvalidInput)
	}

	passID := uuid.NewString()
	ctx = logger.WithPassID(ctx, passID)
	log := logger.FromContext(ctx)
	log.Info(LogMsgTurnStarted, "turn", turn, "cities", len(cities), "workers", s.cfg.Workers)

	reports := make([]*domain.CityProductionReport, len(cities))
	errs := make([]error, len(cities))
	seen := make(map[string]bool, len(cities))

	var g errgroup.Group
	g.SetLimit(s.cfg.Workers)

	for i := range cities {
		if err := ctx.Err(); err != nil {
			errs[i] = fmt.Errorf("%s: %w", LogMsgCityNotScheduled, err)
			continue
		}

		cityID := cities[i].CityID
		if seen[cityID] {
			errs[i] = fmt.Errorf("%w: %s %q", domain.ErrInvalidInput, LogMsgDuplicateCityInTurn, cityID)
			continue
		}
		seen[cityID] = true

		in := cities[i]
		in.Turn = turn
		g.Go(func() error {
			reports[i], errs[i] = s.Recompute(ctx, in)
			return nil
		})
	}
	_ = g.Wait()

	result := &domain.TurnReport{
		PassID: passID,
		Turn:   turn,
		Cities: make([]*domain.CityProductionReport, 0, len(cities)),
	}
	for i, err := range errs {
		if err != nil {
			log.Warn(LogMsgCityFailed, "city_id", cities[i].CityID, "error", err)
			result.Failures = append(result.Failures, domain.CityFailure{CityID: cities[i].CityID, Error: err.Error()})
			continue
		}
		result.Cities = append(result.Cities, reports[i])
	}

	log.Info(LogMsgTurnCompleted, "turn", turn, "cities", len(result.Cities), "failures", len(result.Failures))

	if err := ctx.Err(); err != nil {
		return result, err
	}
	return result, nil
}
