package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "plant_reconcile_"

	resultSuccess = "success"
	resultError   = "error"
)

// Metrics bundles pipeline run metrics in a private registry.
type Metrics struct {
	registry *prometheus.Registry

	RunsTotal      *prometheus.CounterVec
	RunDuration    prometheus.Histogram
	StageDuration  *prometheus.HistogramVec
	TablesWritten  *prometheus.CounterVec
	InputWarnings  prometheus.Counter
	InputsMissing  prometheus.Counter
	ReportRows     *prometheus.GaugeVec
	QualityScore   prometheus.Gauge
	Recommendation prometheus.Gauge
}

// New constructs and registers metrics.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		RunsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "runs_total",
				Help: "Total pipeline runs by result",
			},
			[]string{"result"},
		),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    metricPrefix + "run_duration_seconds",
			Help:    "Pipeline run duration in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		StageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "stage_duration_seconds",
				Help:    "Pipeline stage duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"stage"},
		),
		TablesWritten: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "tables_written_total",
				Help: "Tables written by tier",
			},
			[]string{"tier"},
		),
		InputWarnings: prometheus.NewCounter(prometheus.CounterOpts{
			Name: metricPrefix + "input_warnings_total",
			Help: "Inputs excluded because they could not be parsed",
		}),
		InputsMissing: prometheus.NewCounter(prometheus.CounterOpts{
			Name: metricPrefix + "inputs_missing_total",
			Help: "Inputs that were not present",
		}),
		ReportRows: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: metricPrefix + "report_rows",
				Help: "Reconciliation report rows by status",
			},
			[]string{"status"},
		),
		QualityScore: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: metricPrefix + "quality_score",
			Help: "Data quality score of the last run",
		}),
		Recommendation: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: metricPrefix + "recommendations",
			Help: "Recommendations emitted by the last run",
		}),
	}
	m.registry.MustRegister(
		m.RunsTotal,
		m.RunDuration,
		m.StageDuration,
		m.TablesWritten,
		m.InputWarnings,
		m.InputsMissing,
		m.ReportRows,
		m.QualityScore,
		m.Recommendation,
	)
	return m
}

// ObserveStage records how long a pipeline stage took.
func (m *Metrics) ObserveStage(stage string, started time.Time) {
	if m == nil {
		return
	}
	m.StageDuration.WithLabelValues(stage).Observe(time.Since(started).Seconds())
}

// ObserveRun records a finished run.
func (m *Metrics) ObserveRun(started time.Time, err error) {
	if m == nil {
		return
	}
	result := resultSuccess
	if err != nil {
		result = resultError
	}
	m.RunsTotal.WithLabelValues(result).Inc()
	m.RunDuration.Observe(time.Since(started).Seconds())
}

// WriteTextfile writes the registry in the text exposition format, for node exporter's
// textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.registry)
}
