// Package metrics provides Prometheus metrics for the purchasing pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PipelineRunsTotal tracks pipeline runs by the stage they ended in
	PipelineRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pei_compras",
			Subsystem: "pipeline",
			Name:      "runs_total",
			Help:      "Total number of pipeline runs by final stage and outcome",
		},
		[]string{"stage", "outcome"},
	)

	// PipelineDuration tracks end to end pipeline duration in seconds
	PipelineDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "pei_compras",
			Subsystem: "pipeline",
			Name:      "run_duration_seconds",
			Help:      "Duration of pipeline runs in seconds",
			Buckets:   []float64{1, 2, 5, 10, 20, 30, 60, 120, 300},
		},
		[]string{"outcome"},
	)

	// RFQsTotal tracks RFQ lifecycle events
	RFQsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pei_compras",
			Subsystem: "rfq",
			Name:      "events_total",
			Help:      "Total number of RFQ drafts, sends and send failures",
		},
		[]string{"event"},
	)

	// ExternalCallDuration tracks calls to the LLM, search and email collaborators
	ExternalCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "pei_compras",
			Subsystem: "external",
			Name:      "call_duration_seconds",
			Help:      "Duration of external collaborator calls in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"collaborator", "outcome"},
	)

	// SearchCacheTotal tracks search cache lookups
	SearchCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pei_compras",
			Subsystem: "search",
			Name:      "cache_lookups_total",
			Help:      "Total number of search cache lookups by result",
		},
		[]string{"provider", "result"},
	)

	// HTTPRequestsTotal tracks inbound HTTP requests
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pei_compras",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of inbound HTTP requests",
		},
		[]string{"method", "route", "status_code"},
	)

	// HTTPRequestDuration tracks inbound HTTP request duration
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "pei_compras",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of inbound HTTP requests in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60, 120},
		},
		[]string{"method", "route"},
	)
)

// Outcome labels shared by the histograms above.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// OutcomeOf maps a boolean result to an outcome label.
func OutcomeOf(ok bool) string {
	if ok {
		return OutcomeSuccess
	}
	return OutcomeFailure
}
