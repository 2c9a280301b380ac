// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

var (
	PricingQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pricing_queries_total",
			Help: "Total number of pricing intelligence queries by category and outcome",
		},
		[]string{"query_type", "status"},
	)

	PricingQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pricing_query_duration_seconds",
			Help:    "End to end duration of a pricing intelligence query in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"query_type"},
	)

	WarehouseBytesProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pricing_warehouse_bytes_processed_total",
			Help: "Estimated bytes scanned by warehouse queries",
		},
		[]string{"query_type"},
	)

	WarehouseBytesBilled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pricing_warehouse_bytes_billed_total",
			Help: "Bytes billed for warehouse queries",
		},
		[]string{"query_type"},
	)

	DegradedOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pricing_degraded_outcomes_total",
			Help: "Insight or summary computations that completed with faults",
		},
		[]string{"component", "query_type"},
	)

	AlertsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pricing_alerts_published_total",
			Help: "Alerts fanned out to the notification topic",
		},
		[]string{"query_type", "status"},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pricing_http_requests_total",
			Help: "HTTP requests by route and status code",
		},
		[]string{"route", "code"},
	)

	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)
)

// ObserveQuery records one finished query.
func ObserveQuery(queryType, status string, seconds float64, processed, billed int64) {
	PricingQueriesTotal.WithLabelValues(queryType, status).Inc()
	PricingQueryDuration.WithLabelValues(queryType).Observe(seconds)
	if processed > 0 {
		WarehouseBytesProcessed.WithLabelValues(queryType).Add(float64(processed))
	}
	if billed > 0 {
		WarehouseBytesBilled.WithLabelValues(queryType).Add(float64(billed))
	}
}
