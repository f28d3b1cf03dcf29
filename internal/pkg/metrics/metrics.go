package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "unidb"

// Metrics holds the registry counters. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry   *prometheus.Registry
	operations *prometheus.CounterVec
	rejected   *prometheus.CounterVec
	sessions   prometheus.Gauge
}

// New creates the collectors on a private registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "registry_operations_total",
			Help:      "Registry transitions applied, by module and operation.",
		}, []string{"module", "operation"}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submissions_rejected_total",
			Help:      "Submissions refused because a required field was empty.",
		}, []string{"module"}),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_sessions",
			Help:      "Session workspaces currently held in memory.",
		}),
	}

	m.registry.MustRegister(
		m.operations,
		m.rejected,
		m.sessions,
		collectors.NewGoCollector(),
	)
	return m
}

// ObserveOperation counts one applied transition
func (m *Metrics) ObserveOperation(module, operation string) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(module, operation).Inc()
}

// ObserveRejected counts one refused submission
func (m *Metrics) ObserveRejected(module string) {
	if m == nil {
		return
	}
	m.rejected.WithLabelValues(module).Inc()
}

// SetSessions records the live workspace count
func (m *Metrics) SetSessions(n int) {
	if m == nil {
		return
	}
	m.sessions.Set(float64(n))
}

// Registry exposes the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
