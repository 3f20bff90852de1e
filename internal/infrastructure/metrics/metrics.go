package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ChangesTotal tracks change requests by action and outcome
	ChangesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dnsgate_changes_total",
		Help: "Total number of DNS change requests processed",
	}, []string{"action", "outcome"})

	// ProviderCallDuration tracks upstream provider latency
	ProviderCallDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "dnsgate_provider_call_duration_seconds",
		Help:    "Histogram of DNS provider change call duration",
		Buckets: prometheus.DefBuckets,
	}, []string{"action"})

	// CacheOperations tracks record-listing cache hits and misses
	CacheOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dnsgate_cache_operations_total",
		Help: "Total number of record cache hits and misses",
	}, []string{"result"})

	// StoreErrors tracks record store failures surfaced to callers
	StoreErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dnsgate_store_errors_total",
		Help: "Total number of record store failures",
	})
)
