// Package metrics provides Prometheus metrics for the podium dashboard.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// latencyBuckets spans 0.5ms to about 4s; every latency here is recorded in milliseconds.
var latencyBuckets = prometheus.ExponentialBuckets(0.5, 2, 14) //nolint:gochecknoglobals // shared default buckets

// Manager manages all Prometheus metrics for the podium service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	customLabels     map[string]string
	metricPrefix     string
	registry         prometheus.Registerer

	// Dataset Metrics - what the data accessor delivered
	datasetFetches      prometheus.Counter
	datasetFetchErrors  prometheus.Counter
	datasetFetchLatency prometheus.Histogram
	datasetCountries    prometheus.Gauge

	// Chart Lifecycle Metrics
	chartRenders       *prometheus.CounterVec
	chartRenderErrors  *prometheus.CounterVec
	chartRenderLatency prometheus.Histogram
	surfaceNotFound    *prometheus.CounterVec
	chartDestroys      prometheus.Counter
	liveHandles        prometheus.Gauge

	// Interaction Metrics
	selections        *prometheus.CounterVec
	invalidSelections *prometheus.CounterVec
	navigationIntents *prometheus.CounterVec
	staleResults      *prometheus.CounterVec

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error Metrics
	errorRateByComponent *prometheus.CounterVec
	errorRateByType      *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec

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

// Init rebuilds the global manager with opts on a fresh registry, which
// GetRegistry then serves. Call it at startup before anything records.
func Init(opts ...Option) {
	registry := prometheus.NewRegistry()
	globalManager = NewManager(append([]Option{WithPrometheusRegistry(registry)}, opts...)...)
	customRegistry = registry
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "podium",
		subsystem:        "dashboard",
		histogramBuckets: latencyBuckets,
		customLabels:     make(map[string]string),
		metricPrefix:     "",
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) name(n string) string {
	if m.metricPrefix == "" {
		return n
	}
	return m.metricPrefix + "_" + n
}

func (m *Manager) counter(name, help string) prometheus.Counter {
	return promauto.With(m.registry).NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name(name),
		Help:        help,
		ConstLabels: m.customLabels,
	})
}

func (m *Manager) counterVec(name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.With(m.registry).NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name(name),
		Help:        help,
		ConstLabels: m.customLabels,
	}, labels)
}

func (m *Manager) gauge(name, help string) prometheus.Gauge {
	return promauto.With(m.registry).NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name(name),
		Help:        help,
		ConstLabels: m.customLabels,
	})
}

func (m *Manager) histogram(name, help string, buckets []float64) prometheus.Histogram {
	return promauto.With(m.registry).NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name(name),
		Help:        help,
		Buckets:     buckets,
		ConstLabels: m.customLabels,
	})
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	m.datasetFetches = m.counter("dataset_fetches_total", "Total number of dataset fetches")
	m.datasetFetchErrors = m.counter("dataset_fetch_errors_total", "Total number of failed dataset fetches")
	m.datasetFetchLatency = m.histogram("dataset_fetch_latency_milliseconds", "Dataset fetch latency in milliseconds", m.histogramBuckets)
	m.datasetCountries = m.gauge("dataset_countries", "Number of countries in the last fetched dataset")

	m.chartRenders = m.counterVec("chart_renders_total", "Total number of charts rendered by kind", "kind")
	m.chartRenderErrors = m.counterVec("chart_render_errors_total", "Total number of failed chart renders by kind", "kind")
	m.chartRenderLatency = m.histogram("chart_render_latency_milliseconds", "Chart render latency in milliseconds", m.histogramBuckets)
	m.surfaceNotFound = m.counterVec("surface_not_found_total", "Renders skipped because the surface was missing", "surface")
	m.chartDestroys = m.counter("chart_destroys_total", "Total number of render handles destroyed")
	m.liveHandles = m.gauge("live_handles", "Number of live render handles")

	m.selections = m.counterVec("selections_total", "Chart selections resolved to a label", "surface")
	m.invalidSelections = m.counterVec("invalid_selections_total", "Chart selections ignored as out of range", "surface")
	m.navigationIntents = m.counterVec("navigation_intents_total", "Navigation intents handed to the router", "route")
	m.staleResults = m.counterVec("stale_results_total", "Fetch results discarded after view teardown", "view")

	m.httpRequests = m.counterVec("http_requests_total", "Total number of HTTP requests by endpoint and method", "endpoint", "method", "status_code")
	m.httpRequestDuration = promauto.With(m.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        m.name("http_request_duration_milliseconds"),
			Help:        "HTTP request duration in milliseconds",
			Buckets:     m.histogramBuckets,
			ConstLabels: m.customLabels,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorRateByComponent = m.counterVec("errors_by_component_total", "Total number of errors by component", "component", "error_type")
	m.errorRateByType = m.counterVec("errors_by_type_total", "Total number of errors by type and severity", "error_type", "severity")
	m.errorRateByEndpoint = m.counterVec("errors_by_endpoint_total", "Total number of errors by endpoint", "endpoint", "method", "error_type")

	m.systemMemoryUsage = m.gauge("system_memory_usage_bytes", "System memory usage in bytes")
	m.systemGoroutineCount = m.gauge("system_goroutine_count", "Number of goroutines")
	m.systemGCPauseTime = m.histogram("system_gc_pause_time_milliseconds", "GC pause time in milliseconds",
		[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000})
}

// Dataset Metrics Functions.

// RecordDatasetFetch increments the dataset fetch counter.
func RecordDatasetFetch() {
	globalManager.datasetFetches.Inc()
}

// RecordDatasetFetchError increments the failed fetch counter.
func RecordDatasetFetchError() {
	globalManager.datasetFetchErrors.Inc()
}

// RecordDatasetFetchLatency records fetch latency in milliseconds.
func RecordDatasetFetchLatency(latencyMs float64) {
	globalManager.datasetFetchLatency.Observe(latencyMs)
}

// UpdateDatasetCountries sets the number of countries last fetched.
func UpdateDatasetCountries(count int) {
	globalManager.datasetCountries.Set(float64(count))
}

// Chart Lifecycle Metrics Functions.

// RecordChartRender increments the render counter for a chart kind.
func RecordChartRender(kind string) {
	globalManager.chartRenders.WithLabelValues(kind).Inc()
}

// RecordChartRenderError increments the render error counter for a chart kind.
func RecordChartRenderError(kind string) {
	globalManager.chartRenderErrors.WithLabelValues(kind).Inc()
}

// RecordChartRenderLatency records render latency in milliseconds.
func RecordChartRenderLatency(latencyMs float64) {
	globalManager.chartRenderLatency.Observe(latencyMs)
}

// RecordSurfaceNotFound counts a render skipped for a missing surface.
func RecordSurfaceNotFound(surface string) {
	globalManager.surfaceNotFound.WithLabelValues(surface).Inc()
}

// RecordChartDestroy increments the destroy counter.
func RecordChartDestroy() {
	globalManager.chartDestroys.Inc()
}

// UpdateLiveHandles sets the number of live render handles.
func UpdateLiveHandles(count int) {
	globalManager.liveHandles.Set(float64(count))
}

// Interaction Metrics Functions.

// RecordSelection counts a selection resolved on a surface.
func RecordSelection(surface string) {
	globalManager.selections.WithLabelValues(surface).Inc()
}

// RecordInvalidSelection counts an ignored selection on a surface.
func RecordInvalidSelection(surface string) {
	globalManager.invalidSelections.WithLabelValues(surface).Inc()
}

// RecordNavigationIntent counts an intent handed to the router.
func RecordNavigationIntent(route string) {
	globalManager.navigationIntents.WithLabelValues(route).Inc()
}

// RecordStaleResult counts a fetch result discarded after teardown.
func RecordStaleResult(view string) {
	globalManager.staleResults.WithLabelValues(view).Inc()
}

// HTTP Metrics Functions.

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// Error Metrics Functions.

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByType records an error with type and severity labels.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// System Performance Metrics Functions.

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
