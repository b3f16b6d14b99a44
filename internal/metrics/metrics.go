package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder exposes simulator metrics to Prometheus
type Recorder struct {
	recomputes  *prometheus.CounterVec
	errorsTotal *prometheus.CounterVec
	latency     prometheus.Histogram
	dieselPrice prometheus.Gauge
}

// New registers the simulator metrics on reg
func New(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		recomputes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "solarsim_recomputes_total",
				Help: "Total number of dashboard recomputes",
			},
			[]string{"horizon_days"},
		),
		errorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "solarsim_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		latency: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "solarsim_recompute_duration_seconds",
				Help:    "Duration of dashboard recomputes in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		dieselPrice: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "solarsim_diesel_price",
				Help: "Current default diesel price per liter",
			},
		),
	}
}

// RecordRecompute records a finished recompute and its duration
func (r *Recorder) RecordRecompute(horizonDays string, seconds float64) {
	r.recomputes.WithLabelValues(horizonDays).Inc()
	r.latency.Observe(seconds)
}

// RecordError records an error occurrence
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordDieselPrice records the latest feed price
func (r *Recorder) RecordDieselPrice(price float64) {
	r.dieselPrice.Set(price)
}
