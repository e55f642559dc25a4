package dispatcher

import (
	"github.com/rs/zerolog"

	"github.com/arthur-debert/hookhub/pkg/exchange"
	"github.com/arthur-debert/hookhub/pkg/hooks"
	"github.com/arthur-debert/hookhub/pkg/metrics"
	"github.com/arthur-debert/hookhub/pkg/settings"
)

// Option configures a Dispatcher
type Option func(*Dispatcher)

// WithBootstrapPhase overrides the reserved phase that drives registration
func WithBootstrapPhase(phase string) Option {
	return func(d *Dispatcher) {
		if phase != "" {
			d.bootstrapPhase = phase
		}
	}
}

// WithAPIPhase overrides the phase that drives capability publishing
func WithAPIPhase(phase string) Option {
	return func(d *Dispatcher) {
		if phase != "" {
			d.apiPhase = phase
		}
	}
}

// WithVersionInfo sets the release info passed with the registration broadcast
func WithVersionInfo(info hooks.VersionInfo) Option {
	return func(d *Dispatcher) {
		d.version = info
	}
}

// WithPatcher exposes an opaque method-wrapping helper as the core's
// Patcher capability
func WithPatcher(patcher any) Option {
	return func(d *Dispatcher) {
		d.patcher = patcher
	}
}

// WithSettings exposes a settings store as the core's Settings capability
func WithSettings(store settings.Store) Option {
	return func(d *Dispatcher) {
		d.settings = store
	}
}

// WithCapability publishes an extra core capability during bootstrap
func WithCapability(c exchange.Capability) Option {
	return func(d *Dispatcher) {
		d.extra = append(d.extra, c)
	}
}

// WithFaultHandler receives every isolated fault in addition to the log
func WithFaultHandler(h hooks.FaultHandler) Option {
	return func(d *Dispatcher) {
		d.onFault = h
	}
}

// WithMetrics records dispatch counters
func WithMetrics(m *metrics.Metrics) Option {
	return func(d *Dispatcher) {
		d.metrics = m
	}
}

// WithLogger replaces the component logger
func WithLogger(logger zerolog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}
