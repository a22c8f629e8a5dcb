// Package metrics provides Prometheus metrics for the vendor analytics service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// Manager manages all Prometheus metrics for the vendorboard service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	customLabels     map[string]string
	metricPrefix     string
	registry         prometheus.Registerer

	// Core Business Metrics - What really matters for an analytics service
	datasetsGenerated  prometheus.Counter
	filterLatency      prometheus.Histogram
	aggregationLatency prometheus.Histogram
	leaderboardBuilds  prometheus.Counter

	// Export Metrics
	exportRequests prometheus.Counter
	exportRows     prometheus.Counter

	// Snapshot Cache Metrics
	snapshotCacheHits   prometheus.Counter
	snapshotCacheMisses prometheus.Counter
	snapshotCacheSize   prometheus.Gauge

	// Operational Health Metrics
	sessionCount   prometheus.Gauge
	datasetRecords prometheus.Gauge
	vendorCount    prometheus.Gauge

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Enhanced Error Metrics - Detailed error tracking
	errorRateByComponent *prometheus.CounterVec
	errorRateByType      *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec
	errorLatency         *prometheus.HistogramVec

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "vendorboard",
		subsystem:        "analytics",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		customLabels:     make(map[string]string),
		metricPrefix:     "",
		registry:         prometheus.DefaultRegisterer,
	}

	// Apply all options
	for _, opt := range opts {
		opt(m)
	}

	// Initialize metrics
	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	// Ensure metrics are registered on the configured registry (custom by default)
	auto := promauto.With(m.registry)

	// Core Business Metrics - Focus on what drives business value
	m.datasetsGenerated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "datasets_generated_total",
		Help:      "Total number of sample datasets generated",
	})

	m.filterLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "filter_latency_milliseconds",
		Help:      "Histogram of record filtering latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.aggregationLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "aggregation_latency_milliseconds",
		Help:      "Histogram of KPI aggregation latency in milliseconds (core performance metric)",
		Buckets:   m.histogramBuckets,
	})

	m.leaderboardBuilds = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "leaderboard_builds_total",
		Help:      "Total number of leaderboard computations",
	})

	// Export Metrics
	m.exportRequests = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "export_requests_total",
		Help:      "Total number of CSV export requests",
	})

	m.exportRows = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "export_rows_total",
		Help:      "Total number of rows written to CSV exports",
	})

	// Snapshot Cache Metrics
	m.snapshotCacheHits = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_cache_hits_total",
		Help:      "Total number of snapshot cache hits",
	})

	m.snapshotCacheMisses = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_cache_misses_total",
		Help:      "Total number of snapshot cache misses (full recomputations)",
	})

	m.snapshotCacheSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_cache_size",
		Help:      "Current number of cached snapshots",
	})

	// Operational Health Metrics
	m.sessionCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "session_count",
		Help:      "Current number of live dataset sessions",
	})

	m.datasetRecords = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "dataset_records",
		Help:      "Number of records in the default dataset",
	})

	m.vendorCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "vendor_count",
		Help:      "Number of vendors in the default dataset roster",
	})

	// HTTP Performance Metrics
	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests by endpoint, method, and status",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "Histogram of HTTP request durations in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})

	// Enhanced Error Metrics
	m.errorRateByComponent = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "errors_by_component_total",
		Help:      "Total errors by component and error type",
	}, []string{"component", "error_type"})

	m.errorRateByType = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "errors_by_type_total",
		Help:      "Total errors by type and severity",
	}, []string{"error_type", "severity"})

	m.errorRateByEndpoint = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "errors_by_endpoint_total",
		Help:      "Total errors by endpoint, method, and error type",
	}, []string{"endpoint", "method", "error_type"})

	m.errorLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "error_latency_milliseconds",
		Help:      "Histogram of latencies for requests that ended in an error",
		Buckets:   m.histogramBuckets,
	}, []string{"component", "error_type"})

	// System Performance Metrics
	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_usage_bytes",
		Help:      "System memory usage in bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutine_count",
		Help:      "Number of goroutines",
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_gc_pause_time_milliseconds",
		Help:      "GC pause time in milliseconds",
		Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
	})
}

// RecordDatasetGenerated increments the generated datasets counter.
func RecordDatasetGenerated() {
	globalManager.datasetsGenerated.Inc()
}

// RecordFilterLatency records filtering latency in milliseconds.
func RecordFilterLatency(latencyMs float64) {
	globalManager.filterLatency.Observe(latencyMs)
}

// RecordAggregationLatency records KPI aggregation latency in milliseconds.
func RecordAggregationLatency(latencyMs float64) {
	globalManager.aggregationLatency.Observe(latencyMs)
}

// RecordLeaderboardBuild increments the leaderboard builds counter.
func RecordLeaderboardBuild() {
	globalManager.leaderboardBuilds.Inc()
}

// RecordExportRequest increments the export requests counter.
func RecordExportRequest() {
	globalManager.exportRequests.Inc()
}

// RecordExportRows adds to the exported rows counter.
func RecordExportRows(rows int) {
	globalManager.exportRows.Add(float64(rows))
}

// RecordSnapshotCacheHit increments the snapshot cache hit counter.
func RecordSnapshotCacheHit() {
	globalManager.snapshotCacheHits.Inc()
}

// RecordSnapshotCacheMiss increments the snapshot cache miss counter.
func RecordSnapshotCacheMiss() {
	globalManager.snapshotCacheMisses.Inc()
}

// UpdateSnapshotCacheSize sets the current snapshot cache size.
func UpdateSnapshotCacheSize(size int) {
	globalManager.snapshotCacheSize.Set(float64(size))
}

// UpdateSessionCount sets the current number of live sessions.
func UpdateSessionCount(count int) {
	globalManager.sessionCount.Set(float64(count))
}

// UpdateDatasetRecords sets the record count of the default dataset.
func UpdateDatasetRecords(count int) {
	globalManager.datasetRecords.Set(float64(count))
}

// UpdateVendorCount sets the roster size of the default dataset.
func UpdateVendorCount(count int) {
	globalManager.vendorCount.Set(float64(count))
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// Enhanced Error Metrics Functions.

// RecordErrorByComponent records an error by component and type.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByType records an error by type and severity.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint records an error by endpoint, method, and type.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorLatency records the latency of a failed operation.
func RecordErrorLatency(component, errorType string, latencyMs float64) {
	globalManager.errorLatency.WithLabelValues(component, errorType).Observe(latencyMs)
}

// System Metrics Functions.

// UpdateSystemMemoryUsage sets the current memory usage.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the current goroutine count.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records a GC pause time observation.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used for scraping.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
