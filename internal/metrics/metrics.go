// Package metrics exports controller phase timings to Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/BeatGlow/ssd1680"
)

const namespace = "epd"

// Metrics collects controller phase timings and failures.
type Metrics struct {
	registry *prometheus.Registry
	phase    *prometheus.HistogramVec
	errors   *prometheus.CounterVec
	flushes  prometheus.Counter
}

// New returns Metrics registered on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		phase: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "phase_duration_seconds",
			Help:      "Time spent in each controller phase, busy waits included.",
			Buckets:   []float64{.001, .005, .01, .05, .1, .5, 1, 2, 5, 10, 20},
		}, []string{"phase"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "phase_errors_total",
			Help:      "Number of failed controller phases.",
		}, []string{"phase"}),
		flushes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "refreshes_total",
			Help:      "Number of completed panel updates.",
		}),
	}
	m.registry.MustRegister(m.phase, m.errors, m.flushes)
	return m
}

// Observer returns a controller observer feeding m.
func (m *Metrics) Observer() ssd1680.Observer {
	return func(phase ssd1680.State, took time.Duration, err error) {
		label := phase.String()
		m.phase.WithLabelValues(label).Observe(took.Seconds())
		if err != nil {
			m.errors.WithLabelValues(label).Inc()
			return
		}
		if phase == ssd1680.StateActivating {
			m.flushes.Inc()
		}
	}
}

// Registry is the registry the collectors are registered on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the collected metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
