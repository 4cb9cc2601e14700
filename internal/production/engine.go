package production

import (
	"fmt"

	"github.com/osse101/CityProduction_Go/internal/domain"
)

// PolicyLookup resolves resource type policies; *rules.Registry implements it
type PolicyLookup interface {
	Lookup(id domain.ResourceTypeID) (domain.ResourceTypePolicy, error)
}

// Engine provides pure production accumulation logic (no I/O, no shared mutable state)
type Engine struct {
	rules PolicyLookup
}

// NewEngine creates an engine bound to a rule set
func NewEngine(rules PolicyLookup) *Engine {
	return &Engine{rules: rules}
}

// AddProductionAmount adds one doubled contribution to the breakdown and returns the
// bucket it landed in. On error the breakdown is left exactly as it was.
func (e *Engine) AddProductionAmount(b *Breakdown, doubledAmount int, override domain.BucketOverride) (domain.Bucket, error) {
	return e.AddSourcedAmount(b, doubledAmount, override, "")
}

// AddSourcedAmount is AddProductionAmount with a source label kept in the ledger
func (e *Engine) AddSourcedAmount(b *Breakdown, doubledAmount int, override domain.BucketOverride, source string) (domain.Bucket, error) {
	bucket, err := e.resolveBucket(b.resourceType, override)
	if err != nil {
		return bucket, err
	}

	next, ok := addChecked(b.totals[bucket], doubledAmount)
	if !ok {
		return bucket, fmt.Errorf("%w: %s %s total %d plus %d",
			domain.ErrProductionOverflow, b.resourceType, bucket, b.totals[bucket], doubledAmount)
	}

	// The terminal bucket is never halved or rounded, so it must stay whole
	if bucket == domain.FlatAfterBonus && isOdd(next) {
		return bucket, fmt.Errorf("%w: %s would total %d half units",
			domain.ErrFractionalUnitInTerminalBucket, b.resourceType, next)
	}

	b.record(bucket, doubledAmount, source)
	return bucket, nil
}

func (e *Engine) resolveBucket(rt domain.ResourceTypeID, override domain.BucketOverride) (domain.Bucket, error) {
	if override.Set {
		if !override.Bucket.Valid() {
			return override.Bucket, fmt.Errorf("%w: %d", domain.ErrInvalidBucket, int(override.Bucket))
		}
		return override.Bucket, nil
	}

	policy, err := e.rules.Lookup(rt)
	if err != nil {
		return domain.FlatBeforeBonus, err
	}
	return policy.DefaultBucket, nil
}

func isOdd(n int) bool {
	return n%2 != 0
}
