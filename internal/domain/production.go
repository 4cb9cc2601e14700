package domain

import (
	"fmt"
	"strings"
	"time"
)

// ResourceTypeID names a resource tracked per city (gold, food, research, ...).
// Values are defined by the rule database.
type ResourceTypeID string

// Bucket is the accumulation stage a contribution is added into.
// The numeric order is the aggregation order.
type Bucket int

const (
	FlatBeforeBonus Bucket = iota
	PercentageBonus
	FlatAfterBonus
)

// BucketCount is the number of accumulation stages
const BucketCount = 3

// Buckets returns all buckets in aggregation order
func Buckets() []Bucket {
	return []Bucket{FlatBeforeBonus, PercentageBonus, FlatAfterBonus}
}

// String returns the rule-database spelling of the bucket
func (b Bucket) String() string {
	switch b {
	case FlatBeforeBonus:
		return BucketNameFlatBefore
	case PercentageBonus:
		return BucketNamePercentage
	case FlatAfterBonus:
		return BucketNameFlatAfter
	default:
		return fmt.Sprintf("bucket(%d)", int(b))
	}
}

// Valid reports whether b is one of the three known buckets
func (b Bucket) Valid() bool {
	return b >= FlatBeforeBonus && b <= FlatAfterBonus
}

// ParseBucket converts a rule-database bucket name into a Bucket
func ParseBucket(s string) (Bucket, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case BucketNameFlatBefore:
		return FlatBeforeBonus, nil
	case BucketNamePercentage:
		return PercentageBonus, nil
	case BucketNameFlatAfter:
		return FlatAfterBonus, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidBucket, s)
}

// MarshalText implements encoding.TextMarshaler
func (b Bucket) MarshalText() ([]byte, error) {
	if !b.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBucket, int(b))
	}
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (b *Bucket) UnmarshalText(text []byte) error {
	parsed, err := ParseBucket(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// BucketOverride is an optional bucket supplied with a contribution.
// The zero value means "use the resource type's default bucket".
type BucketOverride struct {
	Bucket Bucket
	Set    bool
}

// NoOverride returns an empty override
func NoOverride() BucketOverride {
	return BucketOverride{}
}

// OverrideTo returns an override forcing the given bucket
func OverrideTo(b Bucket) BucketOverride {
	return BucketOverride{Bucket: b, Set: true}
}

// RoundingDirection resolves half units left over after percentage application and halving
type RoundingDirection int

const (
	RoundDown RoundingDirection = iota
	RoundUp
)

// String returns the rule-database spelling of the rounding direction
func (r RoundingDirection) String() string {
	switch r {
	case RoundDown:
		return RoundingNameDown
	case RoundUp:
		return RoundingNameUp
	default:
		return fmt.Sprintf("rounding(%d)", int(r))
	}
}

// ParseRoundingDirection converts a rule-database rounding name
func ParseRoundingDirection(s string) (RoundingDirection, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case RoundingNameDown:
		return RoundDown, nil
	case RoundingNameUp:
		return RoundUp, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidRounding, s)
}

// MarshalText implements encoding.TextMarshaler
func (r RoundingDirection) MarshalText() ([]byte, error) {
	if r != RoundDown && r != RoundUp {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRounding, int(r))
	}
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (r *RoundingDirection) UnmarshalText(text []byte) error {
	parsed, err := ParseRoundingDirection(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// ResourceTypePolicy is the accumulation policy the rule database defines per resource type
type ResourceTypePolicy struct {
	ResourceType  ResourceTypeID    `json:"resource_type"`
	Description   string            `json:"description,omitempty"`
	DefaultBucket Bucket            `json:"default_bucket"`
	Rounding      RoundingDirection `json:"rounding"`
}

// Contribution is one doubled amount supplied by the city economy simulation
type Contribution struct {
	ResourceType ResourceTypeID `json:"resource_type" validate:"required,max=64,resourceid"`
	// DoubledAmount is in half units: 1 == 0.5 of the displayed resource
	DoubledAmount int     `json:"doubled_amount" validate:"min=-1000000000,max=1000000000"`
	Bucket        *Bucket `json:"bucket,omitempty"`
	Source        string  `json:"source,omitempty" validate:"max=128"`
}

// Override converts the optional JSON bucket into a BucketOverride
func (c Contribution) Override() BucketOverride {
	if c.Bucket == nil {
		return NoOverride()
	}
	return OverrideTo(*c.Bucket)
}

// CityContributions is the feed for one city recomputation
type CityContributions struct {
	CityID        string           `json:"city_id" validate:"required,max=64"`
	Turn          int              `json:"turn" validate:"min=0"`
	Contributions []Contribution   `json:"contributions" validate:"dive"`
	Track         []ResourceTypeID `json:"track,omitempty" validate:"dive,max=64,resourceid"`
}

// ProductionEntry records where a single accepted contribution landed
type ProductionEntry struct {
	Source        string `json:"source,omitempty"`
	DoubledAmount int    `json:"doubled_amount"`
	Bucket        Bucket `json:"bucket"`
}

// ProductionLine is the finalized result for one (city, resource type) pair
type ProductionLine struct {
	ResourceType    ResourceTypeID    `json:"resource_type"`
	FlatBeforeBonus int               `json:"flat_before_doubled"`
	PercentageBonus int               `json:"percentage_bonus"`
	FlatAfterBonus  int               `json:"flat_after_doubled"`
	Total           int               `json:"total"`
	Rounding        RoundingDirection `json:"rounding"`
	Entries         []ProductionEntry `json:"entries,omitempty"`
	RejectedEntries int               `json:"rejected_entries,omitempty"`
}

// ResourceFailure describes a resource type whose recomputation could not be trusted
type ResourceFailure struct {
	ResourceType ResourceTypeID `json:"resource_type"`
	Reason       string         `json:"reason"`
	Error        string         `json:"error"`
}

// CityProductionReport is the outcome of recomputing one city
type CityProductionReport struct {
	ID          string            `json:"id"`
	CityID      string            `json:"city_id"`
	Turn        int               `json:"turn"`
	RulesDigest string            `json:"rules_digest"`
	Lines       []ProductionLine  `json:"lines"`
	Failures    []ResourceFailure `json:"failures,omitempty"`
	ComputedAt  time.Time         `json:"computed_at"`
}

// Total returns the finalized total for a resource type
func (r *CityProductionReport) Total(rt ResourceTypeID) (int, bool) {
	for _, line := range r.Lines {
		if line.ResourceType == rt {
			return line.Total, true
		}
	}
	return 0, false
}

// CityFailure describes a city that could not be recomputed at all
type CityFailure struct {
	CityID string `json:"city_id"`
	Error  string `json:"error"`
}

// TurnReport aggregates one turn-processing pass over many cities
type TurnReport struct {
	PassID   string                  `json:"pass_id"`
	Turn     int                     `json:"turn"`
	Cities   []*CityProductionReport `json:"cities"`
	Failures []CityFailure           `json:"failures,omitempty"`
}
