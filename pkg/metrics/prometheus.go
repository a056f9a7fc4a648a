// Package metrics provides Prometheus metrics for the cleaning pipeline.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Run outcomes recorded by RecordRun.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Manager manages all Prometheus metrics for the cleaning job.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	customLabels     map[string]string
	registry         *prometheus.Registry

	// Table volume
	rowsLoaded            prometheus.Counter
	duplicateObservations prometheus.Counter

	// Imputation outcome
	cellsImputed   *prometheus.CounterVec
	parseFailures  *prometheus.CounterVec
	remainingNulls *prometheus.GaugeVec

	// Stage execution
	stageDuration *prometheus.HistogramVec
	stageFailures *prometheus.CounterVec

	// Run bookkeeping
	runs          *prometheus.CounterVec
	lastRunUnixTS prometheus.Gauge
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
		namespace:        "fifaclean",
		subsystem:        "pipeline",
		histogramBuckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
		customLabels:     make(map[string]string),
		registry:         prometheus.NewRegistry(),
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// Registry returns the registry the manager's metrics are registered on.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)
	labels := prometheus.Labels(m.customLabels)

	m.rowsLoaded = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "rows_loaded_total",
		Help:        "Total number of player observations loaded",
		ConstLabels: labels,
	})

	m.duplicateObservations = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "duplicate_observations_total",
		Help:        "Loaded rows repeating an earlier player and year",
		ConstLabels: labels,
	})

	m.cellsImputed = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "cells_imputed_total",
			Help:        "Cells given a value by a pipeline stage",
			ConstLabels: labels,
		},
		[]string{"stage", "column"},
	)

	m.parseFailures = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "parse_failures_total",
			Help:        "Present cells that failed to parse and became absent",
			ConstLabels: labels,
		},
		[]string{"column"},
	)

	m.remainingNulls = auto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "remaining_nulls",
			Help:        "Absent cells left in the cleaned output, per column",
			ConstLabels: labels,
		},
		[]string{"column"},
	)

	m.stageDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "stage_duration_milliseconds",
			Help:        "Duration of each pipeline stage in milliseconds",
			Buckets:     m.histogramBuckets,
			ConstLabels: labels,
		},
		[]string{"stage"},
	)

	m.stageFailures = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "stage_failures_total",
			Help:        "Pipeline stages that aborted the run",
			ConstLabels: labels,
		},
		[]string{"stage"},
	)

	m.runs = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "runs_total",
			Help:        "Pipeline runs by outcome",
			ConstLabels: labels,
		},
		[]string{"outcome"},
	)

	m.lastRunUnixTS = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "last_run_timestamp_seconds",
		Help:        "Unix time the last run finished",
		ConstLabels: labels,
	})
}

// RecordRowsLoaded adds n loaded observations.
func (m *Manager) RecordRowsLoaded(n int) {
	m.rowsLoaded.Add(float64(n))
}

// RecordDuplicateObservations adds n rows that repeat a player-year key.
func (m *Manager) RecordDuplicateObservations(n int) {
	if n > 0 {
		m.duplicateObservations.Add(float64(n))
	}
}

// RecordCellsImputed adds n cells filled by stage in column.
func (m *Manager) RecordCellsImputed(stage, column string, n int) {
	if n > 0 {
		m.cellsImputed.WithLabelValues(stage, column).Add(float64(n))
	}
}

// RecordParseFailures adds n unparseable cells in column.
func (m *Manager) RecordParseFailures(column string, n int) {
	if n > 0 {
		m.parseFailures.WithLabelValues(column).Add(float64(n))
	}
}

// UpdateRemainingNulls sets the absent-cell count of column.
func (m *Manager) UpdateRemainingNulls(column string, n int) {
	m.remainingNulls.WithLabelValues(column).Set(float64(n))
}

// RecordStageDuration observes a stage duration.
func (m *Manager) RecordStageDuration(stage string, d time.Duration) {
	m.stageDuration.WithLabelValues(stage).Observe(float64(d) / float64(time.Millisecond))
}

// RecordStageFailure counts a stage that aborted the run.
func (m *Manager) RecordStageFailure(stage string) {
	m.stageFailures.WithLabelValues(stage).Inc()
}

// RecordRun counts a finished run and stamps its completion time.
func (m *Manager) RecordRun(outcome string, at time.Time) {
	m.runs.WithLabelValues(outcome).Inc()
	m.lastRunUnixTS.Set(float64(at.Unix()))
}

// WriteTextfile writes every metric of the manager's registry to path in
// the Prometheus text exposition format.
func (m *Manager) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWriteMetrics, path, err)
	}
	return nil
}

// Default returns the process-wide manager backed by the custom registry.
func Default() *Manager {
	return globalManager
}

// RecordRowsLoaded adds n loaded observations on the global manager.
func RecordRowsLoaded(n int) { globalManager.RecordRowsLoaded(n) }

// RecordDuplicateObservations adds repeated rows on the global manager.
func RecordDuplicateObservations(n int) { globalManager.RecordDuplicateObservations(n) }

// RecordCellsImputed adds n filled cells on the global manager.
func RecordCellsImputed(stage, column string, n int) {
	globalManager.RecordCellsImputed(stage, column, n)
}

// RecordParseFailures adds n unparseable cells on the global manager.
func RecordParseFailures(column string, n int) { globalManager.RecordParseFailures(column, n) }

// UpdateRemainingNulls sets a column's absent-cell count on the global manager.
func UpdateRemainingNulls(column string, n int) { globalManager.UpdateRemainingNulls(column, n) }

// RecordStageDuration observes a stage duration on the global manager.
func RecordStageDuration(stage string, d time.Duration) { globalManager.RecordStageDuration(stage, d) }

// RecordStageFailure counts a failed stage on the global manager.
func RecordStageFailure(stage string) { globalManager.RecordStageFailure(stage) }

// RecordRun counts a finished run on the global manager.
func RecordRun(outcome string, at time.Time) { globalManager.RecordRun(outcome, at) }

// WriteTextfile dumps the global registry to path.
func WriteTextfile(path string) error { return globalManager.WriteTextfile(path) }

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
