// Package metrics exposes prometheus counters for the dispatcher. A nil
// *Metrics is valid and records nothing.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the dispatcher's collectors
type Metrics struct {
	registrations *prometheus.CounterVec
	subscriptions *prometheus.CounterVec
	dispatches    *prometheus.CounterVec
	callbacks     prometheus.Counter
	faults        *prometheus.CounterVec
	published     *prometheus.CounterVec
}

// New registers the collectors with reg. A nil reg uses a private registry,
// which keeps independent dispatchers from colliding.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)

	return &Metrics{
		registrations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hookhub_registrations_total",
				Help: "Callbacks registered during the registration broadcast",
			},
			[]string{"mode"},
		),
		subscriptions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hookhub_subscriptions_total",
				Help: "Aggregated host subscriptions installed",
			},
			[]string{"mode"},
		),
		dispatches: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hookhub_dispatches_total",
				Help: "Aggregated handler invocations by phase",
			},
			[]string{"phase", "mode"},
		),
		callbacks: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "hookhub_callbacks_started_total",
				Help: "Plugin callbacks started by aggregated handlers",
			},
		),
		faults: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hookhub_faults_total",
				Help: "Isolated callback and listener failures",
			},
			[]string{"source"},
		),
		published: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hookhub_capabilities_published_total",
				Help: "Capabilities written to the namespace by owner",
			},
			[]string{"owner"},
		),
	}
}

// Registration counts one registered callback
func (m *Metrics) Registration(mode string) {
	if m == nil {
		return
	}
	m.registrations.WithLabelValues(mode).Inc()
}

// Subscription counts one installed aggregated subscription
func (m *Metrics) Subscription(mode string) {
	if m == nil {
		return
	}
	m.subscriptions.WithLabelValues(mode).Inc()
}

// Dispatch counts one aggregated handler run that started n callbacks
func (m *Metrics) Dispatch(phase, mode string, n int) {
	if m == nil {
		return
	}
	m.dispatches.WithLabelValues(phase, mode).Inc()
	m.callbacks.Add(float64(n))
}

// Fault counts one isolated failure
func (m *Metrics) Fault(source string) {
	if m == nil {
		return
	}
	m.faults.WithLabelValues(source).Inc()
}

// Published counts n capabilities written by owner
func (m *Metrics) Published(owner string, n int) {
	if m == nil {
		return
	}
	m.published.WithLabelValues(owner).Add(float64(n))
}
