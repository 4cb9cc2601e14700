package domain

// Bucket names as spelled in the rule database and in API payloads
const (
	BucketNameFlatBefore = "flat_before"
	BucketNamePercentage = "percentage"
	BucketNameFlatAfter  = "flat_after"
)

// Rounding direction names as spelled in the rule database
const (
	RoundingNameDown = "round_down"
	RoundingNameUp   = "round_up"
)

// MaxDoubledAmount bounds a single contribution accepted from a feed, in either
// direction. Matches the Contribution validate tag and the feed schema.
const MaxDoubledAmount = 1_000_000_000

// Failure reasons recorded on reports and used as metric labels
const (
	FailureReasonUnknownResourceType = "unknown_resource_type"
	FailureReasonFractionalUnit      = "fractional_unit"
	FailureReasonInvalidBucket       = "invalid_bucket"
	FailureReasonOverflow            = "overflow"
	FailureReasonInternal            = "internal"
)

// Well-known resource type IDs shipped in configs/resource_types.xml
const (
	ResourceGold        ResourceTypeID = "RE01"
	ResourceFood        ResourceTypeID = "RE02"
	ResourceProduction  ResourceTypeID = "RE03"
	ResourceResearch    ResourceTypeID = "RE04"
	ResourceMagicPower  ResourceTypeID = "RE05"
	ResourceRations     ResourceTypeID = "RE06"
	ResourceMana        ResourceTypeID = "RE07"
	ResourceSpellSkill  ResourceTypeID = "RE08"
	ResourceFame        ResourceTypeID = "RE09"
	ResourceUnrest      ResourceTypeID = "RE10"
	ResourceGrowthBonus ResourceTypeID = "RE11"
)
