package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the converter.
type Metrics struct {
	ObservationsExtracted  prometheus.Counter
	ObservationsNormalized prometheus.Counter
	ObservationsFiltered   prometheus.Counter
	TransformErrors        prometheus.Counter
	PipelineRunning        prometheus.Gauge

	RowsWritten        *prometheus.CounterVec // label: sink={sqlite,csv,kafka}
	ConversionDuration prometheus.Histogram
}

// NewMetrics creates and registers all converter metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		ObservationsExtracted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hurdat2_etl",
			Name:      "observations_extracted_total",
			Help:      "Total detail lines read from the source files.",
		}),
		ObservationsNormalized: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hurdat2_etl",
			Name:      "observations_normalized_total",
			Help:      "Total detail lines normalized into observation rows.",
		}),
		ObservationsFiltered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hurdat2_etl",
			Name:      "observations_filtered_total",
			Help:      "Total rows dropped by the row filter expression.",
		}),
		TransformErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hurdat2_etl",
			Name:      "transform_errors_total",
			Help:      "Total normalization failures (always fatal).",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "hurdat2_etl",
			Name:      "pipeline_running",
			Help:      "1 while a conversion is active, 0 otherwise.",
		}),
		RowsWritten: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hurdat2_etl",
			Name:      "rows_written_total",
			Help:      "Rows written per sink.",
		}, []string{"sink"}),
		ConversionDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "hurdat2_etl",
			Name:      "conversion_duration_seconds",
			Help:      "Duration of a complete extract-transform-load run.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
	}

	prometheus.MustRegister(
		m.ObservationsExtracted,
		m.ObservationsNormalized,
		m.ObservationsFiltered,
		m.TransformErrors,
		m.PipelineRunning,
		m.RowsWritten,
		m.ConversionDuration,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		ObservationsExtracted:  prometheus.NewCounter(prometheus.CounterOpts{Namespace: "hurdat2_etl", Name: "observations_extracted_total"}),
		ObservationsNormalized: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "hurdat2_etl", Name: "observations_normalized_total"}),
		ObservationsFiltered:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "hurdat2_etl", Name: "observations_filtered_total"}),
		TransformErrors:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: "hurdat2_etl", Name: "transform_errors_total"}),
		PipelineRunning:        prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "hurdat2_etl", Name: "pipeline_running"}),
		RowsWritten:            prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "hurdat2_etl", Name: "rows_written_total"}, []string{"sink"}),
		ConversionDuration:     prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "hurdat2_etl", Name: "conversion_duration_seconds"}),
	}
}
