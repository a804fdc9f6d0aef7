package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	EventsConsumed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notification_events_consumed_total",
			Help: "Total number of broker records consumed",
		},
		[]string{"topic"},
	)

	RecordsDiscarded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notification_records_discarded_total",
			Help: "Total number of broker records discarded before enqueue",
		},
		[]string{"reason"},
	)

	JobsEnqueued = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notification_jobs_enqueued_total",
			Help: "Total number of email jobs enqueued",
		},
		[]string{"type"},
	)

	DeliveryAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notification_delivery_attempts_total",
			Help: "Total number of per-recipient delivery attempts",
		},
		[]string{"status"},
	)

	JobRetries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "notification_job_retries_total",
			Help: "Total number of job-level retries scheduled",
		},
	)

	JobsFailed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "notification_jobs_failed_total",
			Help: "Total number of jobs moved to the terminal failed state",
		},
	)

	FailedJobsDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "notification_failed_jobs_depth",
			Help: "Current depth of the terminal failed job list",
		},
	)

	ReconnectAttempts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "notification_broker_reconnect_attempts_total",
			Help: "Total number of broker reconnect attempts",
		},
	)

	PanicsRecovered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "notification_http_panics_total",
			Help: "Total number of HTTP panics recovered",
		},
	)
)

func RecordPanic() {
	PanicsRecovered.Inc()
}
