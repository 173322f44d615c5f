// internal/common/metrics/metrics.go
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
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

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "worker_job_duration_seconds",
			Help:    "Duration of job processing in seconds",
			Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5},
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	FinderEvaluations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "finder_evaluations_total",
			Help: "Finder evaluations by outcome (no_input, no_match, matched)",
		},
		[]string{"outcome"},
	)

	FinderMatchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "finder_matches_total",
			Help: "Scholarship matches returned by the finder, by slug and tier",
		},
		[]string{"slug", "tier"},
	)

	WhatIfSimulations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "finder_whatif_simulations_total",
			Help: "What-if simulations by result (changed, unchanged)",
		},
		[]string{"result"},
	)

	CompareOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "compare_list_operations_total",
			Help: "Compare list operations by action and status",
		},
		[]string{"action", "status"},
	)

	LeadsCaptured = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leads_captured_total",
			Help: "Captured leads by status",
		},
		[]string{"status"},
	)

	NotificationsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lead_notifications_total",
			Help: "Lead notifications by channel and status",
		},
		[]string{"channel", "status"},
	)
)

// ObserveJob records the duration and result of one job. errorCode is empty
// on success.
func ObserveJob(taskType string, start time.Time, errorCode string) {
	WorkerJobDuration.WithLabelValues(taskType).Observe(time.Since(start).Seconds())
	if errorCode == "" {
		WorkerJobsCompleted.WithLabelValues(taskType).Inc()
		return
	}
	WorkerJobsFailed.WithLabelValues(taskType, errorCode).Inc()
}
