package production

import (
	"github.com/osse101/CityProduction_Go/internal/domain"
)

// Breakdown is the per-city, per-resource-type ledger of doubled amounts.
// It is owned by a single recomputation and is not safe for concurrent use.
type Breakdown struct {
	resourceType domain.ResourceTypeID
	totals       [domain.BucketCount]int
	entries      []domain.ProductionEntry
}

// NewBreakdown creates an empty ledger for one resource type
func NewBreakdown(resourceType domain.ResourceTypeID) *Breakdown {
	return &Breakdown{resourceType: resourceType}
}

// ResourceType returns the resource type fixed at construction
func (b *Breakdown) ResourceType() domain.ResourceTypeID {
	return b.resourceType
}

// Total returns the doubled total of one bucket
func (b *Breakdown) Total(bucket domain.Bucket) int {
	if !bucket.Valid() {
		return 0
	}
	return b.totals[bucket]
}

// Totals returns a copy of all bucket totals, indexed by bucket
func (b *Breakdown) Totals() [domain.BucketCount]int {
	return b.totals
}

// Entries returns the accepted contributions in the order they were added
func (b *Breakdown) Entries() []domain.ProductionEntry {
	out := make([]domain.ProductionEntry, len(b.entries))
	copy(out, b.entries)
	return out
}

// isEmpty reports whether nothing has been accumulated yet
func (b *Breakdown) isEmpty() bool {
	return len(b.entries) == 0
}

// Line snapshots the ledger together with its finalized total
func (b *Breakdown) Line(total int, rounding domain.RoundingDirection) domain.ProductionLine {
	return domain.ProductionLine{
		ResourceType:    b.resourceType,
		FlatBeforeBonus: b.totals[domain.FlatBeforeBonus],
		PercentageBonus: b.totals[domain.PercentageBonus],
		FlatAfterBonus:  b.totals[domain.FlatAfterBonus],
		Total:           total,
		Rounding:        rounding,
		Entries:         b.Entries(),
	}
}

func (b *Breakdown) record(bucket domain.Bucket, amount int, source string) {
	b.totals[bucket] += amount
	b.entries = append(b.entries, domain.ProductionEntry{
		Source:        source,
		DoubledAmount: amount,
		Bucket:        bucket,
	})
}
