// ABOUTME: Prometheus metrics for the gateway's HTTP surface and workflow runs
// ABOUTME: Exposed on /metrics via promhttp
package server

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rag_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"route", "status"},
	)

	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rag_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	workflowRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rag_workflow_runs_total",
			Help: "Workflow runs by terminal step",
		},
		[]string{"terminal_step"},
	)
)

func init() {
	prometheus.MustRegister(requestsTotal)
	prometheus.MustRegister(requestDuration)
	prometheus.MustRegister(workflowRunsTotal)
}
