package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Production Metrics
var (
	Recomputations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRecomputations,
			Help: HelpTextRecomputations,
		},
		[]string{LabelResourceType, LabelOutcome},
	)

	Contributions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameContributions,
			Help: HelpTextContributions,
		},
		[]string{LabelBucket},
	)

	ContributionsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameContributionsRejected,
			Help: HelpTextContributionsRejected,
		},
		[]string{LabelReason},
	)

	RecomputeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameRecomputeDuration,
			Help:    HelpTextRecomputeDuration,
			Buckets: RecomputeLatencyBuckets,
		},
	)

	ReportsPersisted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameReportsPersisted,
			Help: HelpTextReportsPersisted,
		},
		[]string{LabelOutcome},
	)
)

// Outcome maps an error to the outcome label value
func Outcome(err error) string {
	if err != nil {
		return OutcomeFailure
	}
	return OutcomeSuccess
}
