// Package metrics holds the Prometheus instruments of the directory API. All
// collectors are registered with the global registry and exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	SubmissionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tool_directory_submissions_total",
			Help: "Tool submissions handled by the API, by outcome.",
		}, []string{"outcome"})

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tool_directory_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "status"})
)

// Submission outcome labels.
const (
	OutcomeAccepted   = "accepted"
	OutcomeDuplicate  = "duplicate"
	OutcomeValidation = "validation"
	OutcomeError      = "error"
)

func init() {
	prometheus.MustRegister(
		SubmissionsTotal,
		RequestDuration,
	)
}
