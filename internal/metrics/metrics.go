package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	jobhunt = "jobhunt"

	advisorCallsTotal     = "advisor_calls_total"
	allocationRetryTotal  = "allocation_retries_total"
	requestsTotal         = "http_requests_total"
	requestDurationMillis = "http_request_duration_milliseconds"

	// Labels
	kindLabel    = "kind"
	outcomeLabel = "outcome"
	codeLabel    = "code"
	methodLabel  = "method"
	pathLabel    = "path"
)

const (
	AdvisorKindStatus  = "status"
	AdvisorKindPrep    = "prep"
	AdvisorKindExtract = "extract"

	AdvisorOutcomeSuggestion = "suggestion"
	AdvisorOutcomeFallback   = "fallback"
	AdvisorOutcomeError      = "error"
)

var bucketsConfig = []float64{10, 50, 100, 300, 500, 1000, 5000}

/**
* Metrics definition
**/
var advisorCallsMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: jobhunt,
		Name:      advisorCallsTotal,
		Help:      "number of generative-text calls partitioned by kind and outcome",
	},
	[]string{kindLabel, outcomeLabel},
)

var allocationRetryMetric = prometheus.NewCounter(
	prometheus.CounterOpts{
		Subsystem: jobhunt,
		Name:      allocationRetryTotal,
		Help:      "number of job id allocations retried after a uniqueness conflict",
	},
)

var requestsMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: jobhunt,
		Name:      requestsTotal,
		Help:      "Number of HTTP requests partitioned by status code, method and HTTP path.",
	},
	[]string{codeLabel, methodLabel, pathLabel},
)

var latencyMetric = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Subsystem: jobhunt,
		Name:      requestDurationMillis,
		Help:      "Time spent on the request partitioned by status code, method and HTTP path.",
		Buckets:   bucketsConfig,
	},
	[]string{codeLabel, methodLabel, pathLabel},
)

func IncreaseAdvisorCallsMetric(kind, outcome string) {
	advisorCallsMetric.With(prometheus.Labels{
		kindLabel:    kind,
		outcomeLabel: outcome,
	}).Inc()
}

func IncreaseAllocationRetryMetric() {
	allocationRetryMetric.Inc()
}

func init() {
	registerMetrics()
}

func registerMetrics() {
	prometheus.MustRegister(advisorCallsMetric)
	prometheus.MustRegister(allocationRetryMetric)
	prometheus.MustRegister(requestsMetric)
	prometheus.MustRegister(latencyMetric)
}
