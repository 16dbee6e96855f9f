package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const metricPrefix = "inventory_"

var (
	registerOnce sync.Once

	batchesTotal      *prometheus.CounterVec
	batchItemsCreated prometheus.Counter
	batchItemsFailed  prometheus.Counter
	allocatorRetries  prometheus.Counter

	httpRequests *prometheus.CounterVec
	httpLatency  *prometheus.HistogramVec
)

// Init registers the business and HTTP metrics exactly once.
func Init() {
	registerOnce.Do(func() {
		batchesTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "batches_total",
				Help: "Batch runs by source (template, import, preview)",
			},
			[]string{"source"},
		)
		batchItemsCreated = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "batch_items_created_total",
				Help: "Assets created through the batch pipeline",
			},
		)
		batchItemsFailed = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "batch_items_failed_total",
				Help: "Batch items that failed validation or creation",
			},
		)
		allocatorRetries = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "allocator_retries_total",
				Help: "Code allocations retried after a lost race",
			},
		)

		httpRequests = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "http_requests_total",
				Help: "HTTP requests by method, path and status",
			},
			[]string{"method", "path", "status"},
		)
		httpLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		)

		prometheus.MustRegister(
			batchesTotal,
			batchItemsCreated,
			batchItemsFailed,
			allocatorRetries,
			httpRequests,
			httpLatency,
		)
	})
}

func ObserveBatch(source string, created, failed int) {
	if batchesTotal == nil {
		return
	}
	batchesTotal.WithLabelValues(source).Inc()
	batchItemsCreated.Add(float64(created))
	batchItemsFailed.Add(float64(failed))
}

func ObserveAllocatorRetry() {
	if allocatorRetries == nil {
		return
	}
	allocatorRetries.Inc()
}

func ObserveHTTPRequest(method, path, status string, seconds float64) {
	if httpRequests == nil {
		return
	}
	httpRequests.WithLabelValues(method, path, status).Inc()
	httpLatency.WithLabelValues(method, path).Observe(seconds)
}
