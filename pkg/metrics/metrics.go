package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RecordsCreated counts stored QR records by origin (upload|generated).
	RecordsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qrstash_records_created_total",
			Help: "Total number of QR records stored",
		},
		[]string{"origin"},
	)

	// StoreReconnects counts on-demand MongoDB reconnect attempts and their
	// outcome (success|failure).
	StoreReconnects = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qrstash_store_reconnects_total",
			Help: "Total number of on-demand MongoDB reconnect attempts",
		},
		[]string{"result"},
	)

	// APILatency measures HTTP request latencies.
	APILatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "qrstash_api_latency_seconds",
			Help:    "API endpoint latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)
