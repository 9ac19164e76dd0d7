package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	chartsComputed *prometheus.CounterVec
	cacheLookups   *prometheus.CounterVec
	errorsTotal    *prometheus.CounterVec
	bodyFailures   *prometheus.CounterVec
	snapshots      *prometheus.CounterVec
	latency        *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		chartsComputed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "starchart_charts_computed_total",
				Help: "Total number of charts computed",
			},
			[]string{"zodiac"},
		),
		cacheLookups: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "starchart_cache_lookups_total",
				Help: "Chart cache lookups by result",
			},
			[]string{"result"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "starchart_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		bodyFailures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "starchart_body_failures_total",
				Help: "Per-body ephemeris failures during chart computation",
			},
			[]string{"body"},
		),
		snapshots: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "starchart_snapshots_total",
				Help: "Daily snapshots written to the archive",
			},
			[]string{"backend", "result"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "starchart_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordChartComputed records a completed chart computation.
func (r *Recorder) RecordChartComputed(zodiac string) {
	r.chartsComputed.WithLabelValues(zodiac).Inc()
}

// RecordCacheLookup records a cache hit or miss.
func (r *Recorder) RecordCacheLookup(result string) {
	r.cacheLookups.WithLabelValues(result).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordBodyFailure records a per-body computation failure.
func (r *Recorder) RecordBodyFailure(body string) {
	r.bodyFailures.WithLabelValues(body).Inc()
}

// RecordSnapshot records an archive write attempt.
func (r *Recorder) RecordSnapshot(backend, result string) {
	r.snapshots.WithLabelValues(backend, result).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
