// Package metrics provides Prometheus metrics for the podium leaderboard service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const defaultRefreshInterval = 10 * time.Second

// Manager owns every Prometheus collector of the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	refreshInterval  time.Duration
	registry         prometheus.Registerer

	// Ranking
	rankRecomputes       *prometheus.CounterVec
	rankRecomputeLatency prometheus.Histogram
	rosterSize           prometheus.Gauge

	// Presentation
	modeTransitions *prometheus.CounterVec
	activeMode      *prometheus.GaugeVec
	tickLatency     prometheus.Histogram
	slideDuration   prometheus.Gauge

	// Persistence
	storeLatency *prometheus.HistogramVec
	storeErrors  *prometheus.CounterVec

	// Import
	importsTotal   *prometheus.CounterVec
	importStudents prometheus.Counter
	importWarnings prometheus.Counter

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Errors
	errorRateByComponent *prometheus.CounterVec
	errorRateByType      *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec
	errorLatency         *prometheus.HistogramVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

var globalManager *Manager //nolint:gochecknoglobals // process-wide metrics manager

var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // keeps default Go collectors out

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// Init replaces the global manager with one built from opts on a fresh custom
// registry. Call it once at startup, before handlers read GetRegistry.
func Init(opts ...Option) {
	reg := prometheus.NewRegistry()
	globalManager = NewManager(append(opts, WithPrometheusRegistry(reg))...)
	customRegistry = reg
}

// NewManager creates a metrics manager and registers its collectors on the
// configured registry.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "podium",
		subsystem:        "leaderboard",
		histogramBuckets: prometheus.DefBuckets,
		refreshInterval:  defaultRefreshInterval,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every collector
	auto := promauto.With(m.registry)

	m.rankRecomputes = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "rank_recomputes_total",
		Help: "Total number of rank recomputations by tie-break policy",
	}, []string{"policy"})

	m.rankRecomputeLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "rank_recompute_latency_milliseconds",
		Help:    "Rank recomputation latency in milliseconds",
		Buckets: m.histogramBuckets,
	})

	m.rosterSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "roster_size",
		Help: "Number of students in the active roster",
	})

	m.modeTransitions = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "mode_transitions_total",
		Help: "Display mode transitions by destination mode",
	}, []string{"mode"})

	m.activeMode = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "active_mode",
		Help: "1 for the display mode currently shown, 0 otherwise",
	}, []string{"mode"})

	m.tickLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "tick_latency_milliseconds",
		Help:    "Time spent handling one display frame in milliseconds",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 25},
	})

	m.slideDuration = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "slide_duration_seconds",
		Help: "Effective slide duration used by the scheduler",
	})

	m.storeLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "store_latency_milliseconds",
		Help:    "Persistence operation latency in milliseconds",
		Buckets: m.histogramBuckets,
	}, []string{"backend", "op"})

	m.storeErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "store_errors_total",
		Help: "Persistence failures by backend and operation",
	}, []string{"backend", "op"})

	m.importsTotal = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "imports_total",
		Help: "Roster import requests by parser",
	}, []string{"parser"})

	m.importStudents = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "import_students_total",
		Help: "Students extracted by roster imports",
	})

	m.importWarnings = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "import_warnings_total",
		Help: "Warnings emitted by roster imports",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "http_requests_total",
		Help: "Total number of HTTP requests by endpoint and method",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "http_request_duration_milliseconds",
		Help:    "HTTP request duration in milliseconds",
		Buckets: m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})

	m.errorRateByComponent = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "errors_by_component_total",
		Help: "Total number of errors by component",
	}, []string{"component", "error_type"})

	m.errorRateByType = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "errors_by_type_total",
		Help: "Total number of errors by type",
	}, []string{"error_type", "severity"})

	m.errorRateByEndpoint = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "errors_by_endpoint_total",
		Help: "Total number of errors by endpoint",
	}, []string{"endpoint", "method", "error_type"})

	m.errorLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "error_latency_milliseconds",
		Help:    "Latency of operations that resulted in errors",
		Buckets: m.histogramBuckets,
	}, []string{"component", "error_type"})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "system_memory_usage_bytes",
		Help: "System memory usage in bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "system_goroutine_count",
		Help: "Number of goroutines",
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "system_gc_pause_time_milliseconds",
		Help:    "GC pause time in milliseconds",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
	})
}

// RecordRankRecompute counts one rank recomputation and its latency.
func RecordRankRecompute(policy string, latencyMs float64) {
	globalManager.rankRecomputes.WithLabelValues(policy).Inc()
	globalManager.rankRecomputeLatency.Observe(latencyMs)
}

// UpdateRosterSize sets the active roster size.
func UpdateRosterSize(n int) {
	globalManager.rosterSize.Set(float64(n))
}

// RecordModeTransition counts a transition into mode and marks it active.
func RecordModeTransition(mode string, allModes []string) {
	globalManager.modeTransitions.WithLabelValues(mode).Inc()
	UpdateActiveMode(mode, allModes)
}

// UpdateActiveMode sets the active-mode gauge to 1 for mode and 0 for the rest.
func UpdateActiveMode(mode string, allModes []string) {
	for _, m := range allModes {
		v := 0.0
		if m == mode {
			v = 1
		}
		globalManager.activeMode.WithLabelValues(m).Set(v)
	}
}

// RecordTickLatency records the time spent on one display frame.
func RecordTickLatency(latencyMs float64) {
	globalManager.tickLatency.Observe(latencyMs)
}

// UpdateSlideDuration sets the effective slide duration gauge.
func UpdateSlideDuration(d time.Duration) {
	globalManager.slideDuration.Set(d.Seconds())
}

// RecordStoreLatency records the latency of a persistence operation.
func RecordStoreLatency(backend, op string, latencyMs float64) {
	globalManager.storeLatency.WithLabelValues(backend, op).Observe(latencyMs)
}

// RecordStoreError counts a persistence failure.
func RecordStoreError(backend, op string) {
	globalManager.storeErrors.WithLabelValues(backend, op).Inc()
	globalManager.errorRateByComponent.WithLabelValues("repository", op+"_failed").Inc()
}

// RecordImport counts an import and what it produced.
func RecordImport(parser string, students, warnings int) {
	globalManager.importsTotal.WithLabelValues(parser).Inc()
	globalManager.importStudents.Add(float64(students))
	globalManager.importWarnings.Add(float64(warnings))
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

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

// RecordErrorLatency records the latency of an operation that resulted in an error.
func RecordErrorLatency(component, errorType string, latencyMs float64) {
	globalManager.errorLatency.WithLabelValues(component, errorType).Observe(latencyMs)
}

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

// RefreshInterval reports how often gauge metrics should be refreshed.
func RefreshInterval() time.Duration {
	return globalManager.refreshInterval
}
