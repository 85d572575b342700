// Package metrics exposes Prometheus collectors for the composition
// pipeline. All methods are nil-safe so the library works without a
// metrics sink configured.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles the pipeline collectors. Construct with [New] and
// register on a prometheus.Registerer, or leave nil to disable.
type Metrics struct {
	compositions   *prometheus.CounterVec
	renderAttempts *prometheus.CounterVec
	duration       prometheus.Histogram
}

// New creates and registers the collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		compositions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storyreel_compositions_total",
			Help: "Completed composition requests by final status.",
		}, []string{"status"}),
		renderAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storyreel_render_attempts_total",
			Help: "Encoder attempts by tier and outcome.",
		}, []string{"tier", "outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "storyreel_composition_seconds",
			Help:    "Wall time of one composition request.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		}),
	}
	reg.MustRegister(m.compositions, m.renderAttempts, m.duration)
	return m
}

// Composition records a finished request with its final status.
func (m *Metrics) Composition(status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.compositions.WithLabelValues(status).Inc()
	m.duration.Observe(elapsed.Seconds())
}

// RenderAttempt records one encoder attempt.
func (m *Metrics) RenderAttempt(tier, outcome string) {
	if m == nil {
		return
	}
	m.renderAttempts.WithLabelValues(tier, outcome).Inc()
}
