package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Run outcomes recorded by RecordRun.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Manager owns the metrics of a chart run.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	customLabels     map[string]string
	registry         *prometheus.Registry

	// Source Metrics
	entriesFetched prometheus.Counter
	fetchDuration  prometheus.Histogram

	// Data Quality Metrics
	invalidIntervals *prometheus.CounterVec

	// Chart Metrics
	employees      prometheus.Gauge
	totalHours     prometheus.Gauge
	renderDuration prometheus.Histogram

	// Run Metrics
	runs        *prometheus.CounterVec
	lastRunUnix prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace: "workhours",
		subsystem: "chart",
		// Milliseconds; fetches and renders are usually well under a few seconds.
		histogramBuckets: []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
		customLabels:     make(map[string]string),
		registry:         prometheus.NewRegistry(),
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)
	labels := prometheus.Labels(m.customLabels)

	m.entriesFetched = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "entries_fetched_total",
		Help:        "Total number of time entries decoded from the source",
		ConstLabels: labels,
	})

	m.fetchDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "fetch_duration_milliseconds",
		Help:        "Histogram of time entry fetch duration in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	})

	m.invalidIntervals = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "invalid_intervals_total",
			Help:        "Time entries whose end precedes their start, by policy applied",
			ConstLabels: labels,
		},
		[]string{"policy"},
	)

	m.employees = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "employees",
		Help:        "Number of employees charted in the last run",
		ConstLabels: labels,
	})

	m.totalHours = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "total_hours",
		Help:        "Sum of worked hours charted in the last run",
		ConstLabels: labels,
	})

	m.renderDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "render_duration_milliseconds",
		Help:        "Histogram of chart render and write duration in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	})

	m.runs = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "runs_total",
			Help:        "Chart runs by outcome",
			ConstLabels: labels,
		},
		[]string{"outcome"},
	)

	m.lastRunUnix = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "last_run_timestamp_seconds",
		Help:        "Unix time of the last completed run",
		ConstLabels: labels,
	})
}

// Registry returns the registry the manager's metrics live on.
func (m *Manager) Registry() *prometheus.Registry { return m.registry }

// RecordEntriesFetched adds n decoded entries.
func (m *Manager) RecordEntriesFetched(n int) { m.entriesFetched.Add(float64(n)) }

// RecordFetchDuration records fetch latency.
func (m *Manager) RecordFetchDuration(ms float64) { m.fetchDuration.Observe(ms) }

// RecordInvalidIntervals adds n invalid intervals handled by policy.
func (m *Manager) RecordInvalidIntervals(policy string, n int) {
	m.invalidIntervals.WithLabelValues(policy).Add(float64(n))
}

// UpdateChart sets the employee count and hour total of the charted data.
func (m *Manager) UpdateChart(employees int, totalHours float64) {
	m.employees.Set(float64(employees))
	m.totalHours.Set(totalHours)
}

// RecordRenderDuration records render latency.
func (m *Manager) RecordRenderDuration(ms float64) { m.renderDuration.Observe(ms) }

// RecordRun counts a finished run and stamps its completion time.
func (m *Manager) RecordRun(outcome string) {
	m.runs.WithLabelValues(outcome).Inc()
	m.lastRunUnix.SetToCurrentTime()
}

// WriteTextfile writes every metric in the registry to path in the text
// exposition format, for the node_exporter textfile collector.
func (m *Manager) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteTextfile, err)
	}
	return nil
}

// Package-level helpers operating on the global manager.

// RecordEntriesFetched adds n decoded entries.
func RecordEntriesFetched(n int) { globalManager.RecordEntriesFetched(n) }

// RecordFetchDuration records fetch latency in milliseconds.
func RecordFetchDuration(ms float64) { globalManager.RecordFetchDuration(ms) }

// RecordInvalidIntervals adds n invalid intervals handled by policy.
func RecordInvalidIntervals(policy string, n int) { globalManager.RecordInvalidIntervals(policy, n) }

// UpdateChart sets the charted employee count and hour total.
func UpdateChart(employees int, totalHours float64) { globalManager.UpdateChart(employees, totalHours) }

// RecordRenderDuration records render latency in milliseconds.
func RecordRenderDuration(ms float64) { globalManager.RecordRenderDuration(ms) }

// RecordRun counts a finished run.
func RecordRun(outcome string) { globalManager.RecordRun(outcome) }

// WriteTextfile writes the global registry to path.
func WriteTextfile(path string) error { return globalManager.WriteTextfile(path) }

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
