package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "transfer_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "transfer_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// Transfer engine metrics
	TransfersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "transfer_attempts_total",
			Help: "Total number of transfer attempts",
		},
		[]string{"status"}, // success, business_fault, technical_fault
	)

	TransferProcessingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "transfer_processing_duration_seconds",
			Help:    "Time to process a transfer inside the engine lock",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
	)

	TransferLockWaitDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "transfer_lock_wait_duration_seconds",
			Help:    "Time a transfer waited for the engine serialization lock",
			Buckets: []float64{0.0001, 0.001, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
	)

	// Rate cache metrics
	RateCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "transfer_rate_cache_hits_total",
			Help: "Total number of exchange-rate cache hits",
		},
	)

	RateCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "transfer_rate_cache_misses_total",
			Help: "Total number of exchange-rate cache misses",
		},
	)

	RateCacheEvictions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "transfer_rate_cache_evictions_total",
			Help: "Total number of exchange-rate cache evictions (size bound)",
		},
	)

	RateProviderCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "transfer_rate_provider_calls_total",
			Help: "Total number of calls to the external rate provider",
		},
		[]string{"outcome"}, // success, unsupported_code, malformed_request, error
	)
)
