package service

import (
	"fmt"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/schoolsuite/reportcard-api/internal/models"
)

// MetricsService encapsulates Prometheus instrumentation and provides
// lightweight snapshots for API consumption.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	cacheLatency    prometheus.Observer
	cacheWrite      prometheus.Observer
	cacheHitRatio   prometheus.Gauge
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter

	uploadsTotal        prometheus.Counter
	rowsIngested        prometheus.Counter
	rowsSkipped         prometheus.Counter
	parseFailures       prometheus.Counter
	duplicateSubjects   prometheus.Counter
	configStoreDegraded prometheus.Counter
	reportsRendered     prometheus.Counter

	cacheHitCount        uint64
	cacheMissCount       uint64
	requestCount         uint64
	requestDurationTotal uint64
	uploadCount          uint64
	rowsIngestedCount    uint64
	rowsSkippedCount     uint64
	parseFailureCount    uint64
	reportsRenderedCount uint64
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	cacheLatency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cache_latency_seconds",
		Help:    "Latency for cache operations",
		Buckets: prometheus.DefBuckets,
	})

	cacheWrite := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cache_write_seconds",
		Help:    "Latency for cache set operations",
		Buckets: prometheus.DefBuckets,
	})

	cacheHitRatio := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "cache_hit_ratio",
		Help: "Ratio of cache hits to total cache lookups",
	})

	cacheHits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cache_hits_total",
		Help: "Total cache hits",
	})

	cacheMisses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cache_misses_total",
		Help: "Total cache misses",
	})

	uploadsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "result_uploads_total",
		Help: "Total result spreadsheet uploads processed",
	})

	rowsIngested := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "result_rows_ingested_total",
		Help: "Total spreadsheet rows normalized into student records",
	})

	rowsSkipped := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "result_rows_skipped_total",
		Help: "Total spreadsheet rows skipped for missing student names",
	})

	parseFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "result_numeric_parse_failures_total",
		Help: "Total numeric cells that failed to parse and defaulted to zero",
	})

	duplicateSubjects := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "result_duplicate_subject_rows_total",
		Help: "Total rows appended onto an already-seen student record",
	})

	configStoreDegraded := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "subject_config_store_degraded_total",
		Help: "Total ingestion runs that proceeded without subject configurations",
	})

	reportsRendered := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "report_cards_rendered_total",
		Help: "Total report card PDFs rendered and archived",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, cacheLatency, cacheWrite, cacheHitRatio,
		cacheHits, cacheMisses, uploadsTotal, rowsIngested, rowsSkipped, parseFailures,
		duplicateSubjects, configStoreDegraded, reportsRendered, goroutines)

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	return &MetricsService{
		registry:            registry,
		handler:             handler,
		requestDuration:     requestDuration,
		requestTotal:        requestTotal,
		cacheLatency:        cacheLatency,
		cacheWrite:          cacheWrite,
		cacheHitRatio:       cacheHitRatio,
		cacheHits:           cacheHits,
		cacheMisses:         cacheMisses,
		uploadsTotal:        uploadsTotal,
		rowsIngested:        rowsIngested,
		rowsSkipped:         rowsSkipped,
		parseFailures:       parseFailures,
		duplicateSubjects:   duplicateSubjects,
		configStoreDegraded: configStoreDegraded,
		reportsRendered:     reportsRendered,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics and aggregates simple stats for snapshots.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
	atomic.AddUint64(&m.requestCount, 1)
	atomic.AddUint64(&m.requestDurationTotal, uint64(duration.Nanoseconds()))
}

// RecordCacheOperation records cache hit/miss metrics and updates hit ratio.
func (m *MetricsService) RecordCacheOperation(hit bool, duration time.Duration) {
	if m == nil {
		return
	}
	if m.cacheLatency != nil {
		m.cacheLatency.Observe(duration.Seconds())
	}
	if hit {
		m.cacheHits.Inc()
		atomic.AddUint64(&m.cacheHitCount, 1)
	} else {
		m.cacheMisses.Inc()
		atomic.AddUint64(&m.cacheMissCount, 1)
	}
	hits := atomic.LoadUint64(&m.cacheHitCount)
	misses := atomic.LoadUint64(&m.cacheMissCount)
	total := hits + misses
	if total > 0 {
		m.cacheHitRatio.Set(float64(hits) / float64(total))
	}
}

// ObserveCacheWrite tracks the duration for cache write operations.
func (m *MetricsService) ObserveCacheWrite(duration time.Duration) {
	if m == nil || m.cacheWrite == nil {
		return
	}
	m.cacheWrite.Observe(duration.Seconds())
}

// RecordUpload accumulates per-upload ingestion statistics.
func (m *MetricsService) RecordUpload(rowsIngested, rowsSkipped, parseFailures, duplicateSubjects int) {
	if m == nil {
		return
	}
	m.uploadsTotal.Inc()
	m.rowsIngested.Add(float64(rowsIngested))
	m.rowsSkipped.Add(float64(rowsSkipped))
	m.parseFailures.Add(float64(parseFailures))
	m.duplicateSubjects.Add(float64(duplicateSubjects))
	atomic.AddUint64(&m.uploadCount, 1)
	atomic.AddUint64(&m.rowsIngestedCount, uint64(rowsIngested))
	atomic.AddUint64(&m.rowsSkippedCount, uint64(rowsSkipped))
	atomic.AddUint64(&m.parseFailureCount, uint64(parseFailures))
}

// RecordConfigStoreDegraded counts ingestion runs that fell back to
// candidate-name display names.
func (m *MetricsService) RecordConfigStoreDegraded() {
	if m == nil {
		return
	}
	m.configStoreDegraded.Inc()
}

// RecordReportRendered counts archived report card PDFs.
func (m *MetricsService) RecordReportRendered() {
	if m == nil {
		return
	}
	m.reportsRendered.Inc()
	atomic.AddUint64(&m.reportsRenderedCount, 1)
}

// Snapshot returns aggregated metrics suitable for status endpoints.
func (m *MetricsService) Snapshot() models.SystemMetrics {
	if m == nil {
		return models.SystemMetrics{}
	}
	hits := atomic.LoadUint64(&m.cacheHitCount)
	misses := atomic.LoadUint64(&m.cacheMissCount)
	requests := atomic.LoadUint64(&m.requestCount)
	reqDuration := atomic.LoadUint64(&m.requestDurationTotal)

	var cacheRatio float64
	totalLookups := hits + misses
	if totalLookups > 0 {
		cacheRatio = float64(hits) / float64(totalLookups)
	}

	var avgRequestMs float64
	if requests > 0 {
		avgRequestMs = float64(reqDuration) / float64(requests) / float64(time.Millisecond)
	}

	return models.SystemMetrics{
		CacheHitRatio:            cacheRatio,
		CacheHits:                hits,
		CacheMisses:              misses,
		RequestsTotal:            requests,
		AverageRequestDurationMs: avgRequestMs,
		UploadsTotal:             atomic.LoadUint64(&m.uploadCount),
		RowsIngestedTotal:        atomic.LoadUint64(&m.rowsIngestedCount),
		RowsSkippedTotal:         atomic.LoadUint64(&m.rowsSkippedCount),
		ParseFailuresTotal:       atomic.LoadUint64(&m.parseFailureCount),
		ReportsRenderedTotal:     atomic.LoadUint64(&m.reportsRenderedCount),
		Goroutines:               runtime.NumGoroutine(),
		GeneratedAt:              time.Now().UTC(),
	}
}
