package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SyncsTotal counts processed sync jobs by outcome.
	SyncsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sherlocksync_syncs_total",
			Help: "Total number of processed sync jobs",
		},
		[]string{"status"},
	)

	// SyncDuration tracks the end-to-end duration of a sync job in seconds.
	SyncDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sherlocksync_sync_duration_seconds",
			Help:    "Duration of sync jobs in seconds",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 12), // 100ms to ~3.5min
		},
	)

	// WorkersActive tracks the number of currently busy worker goroutines.
	WorkersActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sherlocksync_workers_active",
			Help: "Number of currently active worker goroutines",
		},
	)

	// HTTPRetriesTotal counts retried HTTP attempts per client.
	HTTPRetriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sherlocksync_http_retries_total",
			Help: "Total number of retried HTTP attempts",
		},
		[]string{"client"},
	)

	// NotificationFailures counts notification sends that failed.
	NotificationFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sherlocksync_notification_failures_total",
			Help: "Total number of failed outcome notifications",
		},
	)
)
