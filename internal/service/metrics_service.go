package service

import (
	"net/http"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dib-tools/perjadin-api/internal/models"
)

const metricsNamespace = "perjadin"

// counters aggregated outside Prometheus so Snapshot can serve the
// monitoring endpoint without scraping the registry.
type metricTotals struct {
	cacheHits      uint64
	cacheMisses    uint64
	requests       uint64
	requestNanos   uint64
	dbQueries      uint64
	dbQueryNanos   uint64
	receiptsStored uint64
	documents      uint64
}

// MetricsService owns the Prometheus registry and the running totals behind
// the system stats endpoint. A nil receiver is a no-op on every method, so
// instrumentation can be left unwired in tests.
type MetricsService struct {
	registry *prometheus.Registry
	handler  http.Handler

	httpDuration *prometheus.HistogramVec
	httpRequests *prometheus.CounterVec
	cacheLookup  prometheus.Histogram
	cacheWrite   prometheus.Histogram
	cacheRatio   prometheus.Gauge
	cacheHits    prometheus.Counter
	cacheMisses  prometheus.Counter
	dbDuration   *prometheus.HistogramVec
	receipts     *prometheus.CounterVec
	documents    *prometheus.CounterVec

	totals metricTotals
}

// NewMetricsService builds a service with its own registry, so multiple
// instances can coexist in one process.
func NewMetricsService() *MetricsService {
	m := &MetricsService{
		registry: prometheus.NewRegistry(),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status.",
		}, []string{"method", "path", "status"}),
		cacheLookup: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "cache_lookup_seconds",
			Help:      "Monitoring cache lookup latency.",
			Buckets:   prometheus.DefBuckets,
		}),
		cacheWrite: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "cache_write_seconds",
			Help:      "Monitoring cache write latency.",
			Buckets:   prometheus.DefBuckets,
		}),
		cacheRatio: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "cache_hit_ratio",
			Help:      "Hits over total cache lookups.",
		}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "cache_hits_total",
			Help:      "Monitoring cache hits.",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "cache_misses_total",
			Help:      "Monitoring cache misses.",
		}),
		dbDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "db_query_duration_seconds",
			Help:      "Latency of labelled database queries.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"query"}),
		receipts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "receipts_uploaded_total",
			Help:      "Receipt uploads by outcome.",
		}, []string{"outcome"}),
		documents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "documents_generated_total",
			Help:      "Generated documents by kind.",
		}, []string{"kind"}),
	}

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Name:      "goroutines",
		Help:      "Current goroutine count.",
	}, func() float64 { return float64(runtime.NumGoroutine()) })

	m.registry.MustRegister(
		m.httpDuration, m.httpRequests,
		m.cacheLookup, m.cacheWrite, m.cacheRatio, m.cacheHits, m.cacheMisses,
		m.dbDuration, m.receipts, m.documents, goroutines,
	)
	m.handler = promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return m
}

// Handler serves the scrape endpoint.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records one finished request.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	code := strconv.Itoa(status)
	m.httpDuration.WithLabelValues(method, path, code).Observe(duration.Seconds())
	m.httpRequests.WithLabelValues(method, path, code).Inc()
	atomic.AddUint64(&m.totals.requests, 1)
	atomic.AddUint64(&m.totals.requestNanos, uint64(duration.Nanoseconds()))
}

// RecordCacheOperation records a cache lookup and refreshes the hit ratio.
func (m *MetricsService) RecordCacheOperation(hit bool, duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheLookup.Observe(duration.Seconds())
	if hit {
		m.cacheHits.Inc()
		atomic.AddUint64(&m.totals.cacheHits, 1)
	} else {
		m.cacheMisses.Inc()
		atomic.AddUint64(&m.totals.cacheMisses, 1)
	}
	hits := atomic.LoadUint64(&m.totals.cacheHits)
	if total := hits + atomic.LoadUint64(&m.totals.cacheMisses); total > 0 {
		m.cacheRatio.Set(float64(hits) / float64(total))
	}
}

// ObserveCacheWrite records a cache set.
func (m *MetricsService) ObserveCacheWrite(duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheWrite.Observe(duration.Seconds())
}

// ObserveDBQuery records a labelled query's latency.
func (m *MetricsService) ObserveDBQuery(label string, duration time.Duration) {
	if m == nil {
		return
	}
	m.dbDuration.WithLabelValues(label).Observe(duration.Seconds())
	atomic.AddUint64(&m.totals.dbQueries, 1)
	atomic.AddUint64(&m.totals.dbQueryNanos, uint64(duration.Nanoseconds()))
}

// RecordReceiptUpload counts an upload outcome ("accepted" or "rejected").
func (m *MetricsService) RecordReceiptUpload(outcome string) {
	if m == nil {
		return
	}
	m.receipts.WithLabelValues(outcome).Inc()
	if outcome == "accepted" {
		atomic.AddUint64(&m.totals.receiptsStored, 1)
	}
}

// RecordDocumentGenerated counts a rendered document by kind.
func (m *MetricsService) RecordDocumentGenerated(kind string) {
	if m == nil {
		return
	}
	m.documents.WithLabelValues(kind).Inc()
	atomic.AddUint64(&m.totals.documents, 1)
}

func avgMillis(totalNanos, count uint64) float64 {
	if count == 0 {
		return 0
	}
	return float64(totalNanos) / float64(count) / float64(time.Millisecond)
}

// Snapshot returns the running totals for the system stats endpoint.
func (m *MetricsService) Snapshot() models.SystemMetrics {
	if m == nil {
		return models.SystemMetrics{}
	}
	hits := atomic.LoadUint64(&m.totals.cacheHits)
	misses := atomic.LoadUint64(&m.totals.cacheMisses)
	requests := atomic.LoadUint64(&m.totals.requests)
	dbQueries := atomic.LoadUint64(&m.totals.dbQueries)

	var ratio float64
	if lookups := hits + misses; lookups > 0 {
		ratio = float64(hits) / float64(lookups)
	}

	return models.SystemMetrics{
		CacheHitRatio:            ratio,
		CacheHits:                hits,
		CacheMisses:              misses,
		RequestsTotal:            requests,
		AverageRequestDurationMs: avgMillis(atomic.LoadUint64(&m.totals.requestNanos), requests),
		DBQueryCount:             dbQueries,
		AverageDBQueryDurationMs: avgMillis(atomic.LoadUint64(&m.totals.dbQueryNanos), dbQueries),
		ReceiptsUploaded:         atomic.LoadUint64(&m.totals.receiptsStored),
		DocumentsGenerated:       atomic.LoadUint64(&m.totals.documents),
		Goroutines:               runtime.NumGoroutine(),
		GeneratedAt:              time.Now().UTC(),
	}
}
