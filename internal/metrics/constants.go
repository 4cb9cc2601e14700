package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Production metric names
const (
	MetricNameRecomputations        = "production_recomputations_total"
	MetricNameContributions         = "production_contributions_total"
	MetricNameContributionsRejected = "production_contributions_rejected_total"
	MetricNameRecomputeDuration     = "production_recompute_duration_seconds"
	MetricNameReportsPersisted      = "production_reports_persisted_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

const (
	HelpTextRecomputations        = "Resource type recomputations by outcome"
	HelpTextContributions         = "Accepted contributions by bucket"
	HelpTextContributionsRejected = "Rejected contributions by reason"
	HelpTextRecomputeDuration     = "Time to recompute all resource types of one city"
	HelpTextReportsPersisted      = "City reports written to the repository by outcome"
)

// ============================================================================
// Metric Label Names and Values
// ============================================================================

const (
	LabelMethod       = "method"
	LabelPath         = "path"
	LabelStatus       = "status"
	LabelResourceType = "resource_type"
	LabelOutcome      = "outcome"
	LabelBucket       = "bucket"
	LabelReason       = "reason"
)

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// unmatchedRoute labels requests chi could not route, keeping label cardinality bounded
const unmatchedRoute = "unmatched"

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets range from 1ms to 10s
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// RecomputeLatencyBuckets range from 10us to 250ms; a city recompute is pure arithmetic
var RecomputeLatencyBuckets = []float64{.00001, .00005, .0001, .0005, .001, .005, .01, .05, .25}
