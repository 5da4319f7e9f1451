// Package metrics provides Prometheus metrics for league generation.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the generator.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Generation output
	leaguesGenerated   prometheus.Counter
	teamsGenerated     prometheus.Counter
	playersGenerated   prometheus.Counter
	entityFailures     *prometheus.CounterVec
	validationIssues   *prometheus.CounterVec
	configErrors       prometheus.Counter
	generationDuration prometheus.Histogram

	// Batch jobs
	jobsProcessed prometheus.Counter
	jobsDuplicate prometheus.Counter
	jobErrors     prometheus.Counter
	jobLatency    prometheus.Histogram

	// Queue
	queueSize          prometheus.Gauge
	queueCapacity      prometheus.Gauge
	queueUtilization   prometheus.Gauge
	queueEnqueueRate   prometheus.Counter
	queueDequeueRate   prometheus.Counter
	queueEnqueueErrors prometheus.Counter

	// Workers
	workerCount prometheus.Gauge

	errorsByComponent *prometheus.CounterVec
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
		namespace:        "leaguegen",
		subsystem:        "generator",
		histogramBuckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 25, 50, 100, 250, 500, 1000},
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // one block per metric
	auto := promauto.With(m.registry)
	counter := func(name, help string) prometheus.Counter {
		return auto.NewCounter(prometheus.CounterOpts{
			Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
		})
	}
	gauge := func(name, help string) prometheus.Gauge {
		return auto.NewGauge(prometheus.GaugeOpts{
			Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
		})
	}
	histogram := func(name, help string) prometheus.Histogram {
		return auto.NewHistogram(prometheus.HistogramOpts{
			Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
			Buckets: m.histogramBuckets,
		})
	}

	m.leaguesGenerated = counter("leagues_generated_total", "Total number of leagues generated")
	m.teamsGenerated = counter("teams_generated_total", "Total number of teams built")
	m.playersGenerated = counter("players_generated_total", "Total number of players built")
	m.entityFailures = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "entity_failures_total",
			Help:        "Teams dropped for breaking a hard domain floor, by kind",
			ConstLabels: m.constLabels,
		},
		[]string{"kind"},
	)
	m.validationIssues = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "validation_issues_total",
			Help:        "Validator findings by kind and severity",
			ConstLabels: m.constLabels,
		},
		[]string{"kind", "severity"},
	)
	m.configErrors = counter("config_errors_total", "Generation configs rejected at construction")
	m.generationDuration = histogram("generation_duration_milliseconds", "Time to generate one league in milliseconds")

	m.jobsProcessed = counter("jobs_processed_total", "Batch jobs generated successfully")
	m.jobsDuplicate = counter("jobs_duplicate_total", "Batch jobs skipped because an identical job was already accepted")
	m.jobErrors = counter("job_errors_total", "Batch jobs that failed")
	m.jobLatency = histogram("job_latency_milliseconds", "Time from dequeue to stored result in milliseconds")

	m.queueSize = gauge("queue_size", "Current number of queued jobs")
	m.queueCapacity = gauge("queue_capacity", "Maximum number of queued jobs")
	m.queueUtilization = gauge("queue_utilization_ratio", "Queue size divided by capacity")
	m.queueEnqueueRate = counter("queue_enqueue_total", "Jobs enqueued")
	m.queueDequeueRate = counter("queue_dequeue_total", "Jobs dequeued")
	m.queueEnqueueErrors = counter("queue_enqueue_errors_total", "Jobs rejected by the queue")

	m.workerCount = gauge("worker_count", "Number of generation workers")

	m.errorsByComponent = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "errors_by_component_total",
			Help:        "Errors by component and type",
			ConstLabels: m.constLabels,
		},
		[]string{"component", "error_type"},
	)
}

// RecordLeagueGenerated counts one league with its built teams and players.
func RecordLeagueGenerated(teams, players int) {
	globalManager.leaguesGenerated.Inc()
	globalManager.teamsGenerated.Add(float64(teams))
	globalManager.playersGenerated.Add(float64(players))
}

// RecordEntityFailure counts a dropped team.
func RecordEntityFailure(kind string) {
	globalManager.entityFailures.WithLabelValues(kind).Inc()
}

// RecordValidationIssue counts one validator finding.
func RecordValidationIssue(kind, severity string) {
	globalManager.validationIssues.WithLabelValues(kind, severity).Inc()
}

// RecordConfigError counts a rejected generation config.
func RecordConfigError() {
	globalManager.configErrors.Inc()
}

// RecordGenerationDuration records league generation time in milliseconds.
func RecordGenerationDuration(ms float64) {
	globalManager.generationDuration.Observe(ms)
}

// RecordJobProcessed increments the processed jobs counter.
func RecordJobProcessed() {
	globalManager.jobsProcessed.Inc()
}

// RecordJobDuplicate increments the duplicate jobs counter.
func RecordJobDuplicate() {
	globalManager.jobsDuplicate.Inc()
}

// RecordJobError increments the failed jobs counter.
func RecordJobError() {
	globalManager.jobErrors.Inc()
}

// RecordJobLatency records job latency in milliseconds.
func RecordJobLatency(ms float64) {
	globalManager.jobLatency.Observe(ms)
}

// UpdateQueueSize sets the current queue size.
func UpdateQueueSize(size int) {
	globalManager.queueSize.Set(float64(size))
}

// UpdateQueueCapacity sets the queue capacity.
func UpdateQueueCapacity(capacity int) {
	globalManager.queueCapacity.Set(float64(capacity))
}

// UpdateQueueUtilization sets the queue utilization ratio.
func UpdateQueueUtilization(utilization float64) {
	globalManager.queueUtilization.Set(utilization)
}

// RecordQueueEnqueue increments the enqueue counter.
func RecordQueueEnqueue() {
	globalManager.queueEnqueueRate.Inc()
}

// RecordQueueDequeue increments the dequeue counter.
func RecordQueueDequeue() {
	globalManager.queueDequeueRate.Inc()
}

// RecordQueueEnqueueError increments the enqueue error counter.
func RecordQueueEnqueueError() {
	globalManager.queueEnqueueErrors.Inc()
}

// UpdateWorkerCount sets the current worker count.
func UpdateWorkerCount(count int) {
	globalManager.workerCount.Set(float64(count))
}

// RecordErrorByComponent records an error for a component.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorsByComponent.WithLabelValues(component, errorType).Inc()
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// WriteTextfile writes the custom registry to path in the text exposition
// format, for node_exporter's textfile collector or plain inspection.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, customRegistry); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	return nil
}
