package city

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/CityProduction_Go/internal/domain"
	"github.com/osse101/CityProduction_Go/internal/logger"
	"github.com/osse101/CityProduction_Go/internal/metrics"
	"github.com/osse101/CityProduction_Go/internal/production"
)

// Recompute rebuilds every resource type of one city from scratch. A failing
// resource type is reported on the result and does not stop the others.
func (s *service) Recompute(ctx context.Context, in domain.CityContributions) (*domain.CityProductionReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.CityID) == "" {
		return nil, fmt.Errorf("%w: city id is required", domain.ErrInvalidInput)
	}
	if in.Turn < 0 {
		return nil, fmt.Errorf("%w: turn must not be negative", domain.ErrInvalidInput)
	}

	log := logger.FromContext(ctx).With(logger.AttrKeyCityID, in.CityID)
	start := time.Now()

	groups, order := groupByResourceType(in)

	report := &domain.CityProductionReport{
		ID:          uuid.NewString(),
		CityID:      in.CityID,
		Turn:        in.Turn,
		RulesDigest: s.rules.Digest(),
		Lines:       make([]domain.ProductionLine, 0, len(order)),
	}

	for _, rt := range order {
		line, err := s.recomputeResource(ctx, rt, groups[rt])
		metrics.Recomputations.WithLabelValues(s.metricLabel(rt), metrics.Outcome(err)).Inc()
		if err != nil {
			log.Warn(LogMsgResourceFailed, "resource_type", rt, "error", err)
			report.Failures = append(report.Failures, domain.ResourceFailure{
				ResourceType: rt,
				Reason:       domain.FailureReason(err),
				Error:        err.Error(),
			})
			continue
		}
		report.Lines = append(report.Lines, line)
	}

	report.ComputedAt = time.Now().UTC()
	metrics.RecomputeDuration.Observe(time.Since(start).Seconds())

	log.Info(LogMsgCityRecomputed,
		"turn", in.Turn,
		"lines", len(report.Lines),
		"failures", len(report.Failures),
		"duration", time.Since(start))

	s.cache.Add(report)
	s.persist(ctx, report)

	return report, nil
}

// recomputeResource runs one resource type through a fresh breakdown
func (s *service) recomputeResource(ctx context.Context, rt domain.ResourceTypeID, contributions []domain.Contribution) (domain.ProductionLine, error) {
	b := production.NewBreakdown(rt)
	rejected := 0

	for _, c := range contributions {
		bucket, err := s.engine.AddSourcedAmount(b, c.DoubledAmount, c.Override(), c.Source)
		if err != nil {
			metrics.ContributionsRejected.WithLabelValues(domain.FailureReason(err)).Inc()
			if !s.cfg.StrictParity && errors.Is(err, domain.ErrFractionalUnitInTerminalBucket) {
				// The breakdown is unchanged after a rejected add
				rejected++
				logger.FromContext(ctx).Warn(LogMsgContributionSkipped,
					"resource_type", rt, "source", c.Source, "doubled_amount", c.DoubledAmount)
				continue
			}
			return domain.ProductionLine{}, err
		}
		metrics.Contributions.WithLabelValues(bucket.String()).Inc()
	}

	line, err := s.engine.Finalize(b)
	if err != nil {
		return domain.ProductionLine{}, err
	}
	line.RejectedEntries = rejected
	return line, nil
}

func (s *service) metricLabel(rt domain.ResourceTypeID) string {
	if _, err := s.rules.Lookup(rt); err != nil {
		return unknownResourceLabel
	}
	return string(rt)
}

// groupByResourceType buckets contributions per resource type, keeping feed
// order within a type, and returns the resource types sorted by ID. Tracked
// resource types without contributions get an empty group.
func groupByResourceType(in domain.CityContributions) (map[domain.ResourceTypeID][]domain.Contribution, []domain.ResourceTypeID) {
	groups := make(map[domain.ResourceTypeID][]domain.Contribution)
	for _, rt := range in.Track {
		if _, ok := groups[rt]; !ok {
			groups[rt] = nil
		}
	}
	for _, c := range in.Contributions {
		groups[c.ResourceType] = append(groups[c.ResourceType], c)
	}

	order := make([]domain.ResourceTypeID, 0, len(groups))
	for rt := range groups {
		order = append(order, rt)
	}
	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })

	return groups, order
}
