package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain/repository.Metrics using Prometheus.
type Recorder struct {
	queryDuration *prometheus.HistogramVec
	queryRows     *prometheus.HistogramVec
	errorsTotal   *prometheus.CounterVec
	cacheLookups  *prometheus.CounterVec
	broadcasts    prometheus.Counter
	streamClients prometheus.Gauge
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		queryDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "eo_store_query_duration_seconds",
				Help:    "Duration of time-series store queries in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"store", "op"},
		),
		queryRows: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "eo_store_query_rows",
				Help:    "Rows returned per store query",
				Buckets: []float64{0, 1, 48, 96, 336, 1488, 4464, 17520},
			},
			[]string{"store", "op"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "eo_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		cacheLookups: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "eo_cache_lookups_total",
				Help: "Response cache lookups by outcome",
			},
			[]string{"endpoint", "outcome"},
		),
		broadcasts: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "eo_stream_broadcasts_total",
				Help: "Price ticks broadcast to stream subscribers",
			},
		),
		streamClients: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "eo_stream_clients",
				Help: "Currently connected stream subscribers",
			},
		),
	}
}

// RecordQuery records a store query with its duration and row count.
func (r *Recorder) RecordQuery(store, op string, seconds float64, rows int) {
	r.queryDuration.WithLabelValues(store, op).Observe(seconds)
	r.queryRows.WithLabelValues(store, op).Observe(float64(rows))
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordCacheHit records a cache lookup outcome for an endpoint.
func (r *Recorder) RecordCacheHit(endpoint string, hit bool) {
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	r.cacheLookups.WithLabelValues(endpoint, outcome).Inc()
}

// RecordBroadcast records one tick fan-out to the given client count.
func (r *Recorder) RecordBroadcast(clients int) {
	r.broadcasts.Inc()
	r.streamClients.Set(float64(clients))
}

// SetStreamClients records the current subscriber count.
func (r *Recorder) SetStreamClients(n int) {
	r.streamClients.Set(float64(n))
}
