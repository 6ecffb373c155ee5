package metrics

import (
	"net/http"

	"cloud-connectivity-check/internal/core/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder implements ports.ResultRecorder with Prometheus collectors on a
// private registry.
type Recorder struct {
	registry *prometheus.Registry
	total    *prometheus.CounterVec
	duration *prometheus.HistogramVec
	up       *prometheus.GaugeVec
}

// NewRecorder creates a recorder and registers its collectors.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		total: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "conncheck_check_total",
				Help: "Total number of connectivity checks by outcome",
			},
			[]string{"check", "outcome", "kind"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "conncheck_check_duration_seconds",
				Help:    "Duration of connectivity checks in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"check"},
		),
		up: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "conncheck_check_up",
				Help: "1 if the last run of the check succeeded, 0 otherwise",
			},
			[]string{"check"},
		),
	}
	r.registry.MustRegister(r.total, r.duration, r.up)
	return r
}

// Record updates the collectors for one result.
func (r *Recorder) Record(res domain.Result) {
	check := string(res.Check)
	r.total.WithLabelValues(check, string(res.Outcome()), string(res.ErrorKind())).Inc()
	r.duration.WithLabelValues(check).Observe(res.Duration.Seconds())
	if res.OK {
		r.up.WithLabelValues(check).Set(1)
	} else {
		r.up.WithLabelValues(check).Set(0)
	}
}

// Handler exposes the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
