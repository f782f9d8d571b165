package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder exposes Prometheus metrics for dataset loading and analysis.
type Recorder struct {
	datasetRows      *prometheus.GaugeVec
	reloadsTotal     *prometheus.CounterVec
	errorsTotal      *prometheus.CounterVec
	gaugeStatus      *prometheus.GaugeVec
	snapshotDuration *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		datasetRows: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "macrogauge_dataset_rows",
				Help: "Number of rows currently loaded per dataset",
			},
			[]string{"dataset"},
		),
		reloadsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "macrogauge_reloads_total",
				Help: "Total number of dataset reloads by result",
			},
			[]string{"result"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "macrogauge_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		gaugeStatus: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "macrogauge_indicator_status",
				Help: "Current traffic light per indicator (0 green, 1 amber, 2 red)",
			},
			[]string{"indicator"},
		),
		snapshotDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "macrogauge_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordDatasetRows records the row count of a loaded dataset.
func (r *Recorder) RecordDatasetRows(dataset string, rows int) {
	r.datasetRows.WithLabelValues(dataset).Set(float64(rows))
}

// RecordReload records the outcome of a dataset reload.
func (r *Recorder) RecordReload(result string) {
	r.reloadsTotal.WithLabelValues(result).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordIndicatorStatus records the traffic light level of an indicator.
func (r *Recorder) RecordIndicatorStatus(indicator string, level int) {
	r.gaugeStatus.WithLabelValues(indicator).Set(float64(level))
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.snapshotDuration.WithLabelValues(op).Observe(seconds)
}
