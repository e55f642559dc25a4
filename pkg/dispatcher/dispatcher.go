package dispatcher

import (
	stderrors "errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/hookhub/pkg/errors"
	"github.com/arthur-debert/hookhub/pkg/exchange"
	"github.com/arthur-debert/hookhub/pkg/hooks"
	"github.com/arthur-debert/hookhub/pkg/logging"
	"github.com/arthur-debert/hookhub/pkg/metrics"
	"github.com/arthur-debert/hookhub/pkg/record"
	"github.com/arthur-debert/hookhub/pkg/settings"
)

// Names of the capabilities the core publishes under hooks.CoreID
const (
	CapEvents   = "Events"
	CapPhases   = "Phases"
	CapRegister = "Register"
	CapPublish  = "Publish"
	CapLookup   = "Lookup"
	CapPatcher  = "Patcher"
	CapSettings = "Settings"
)

// Host is the application whose lifecycle plugins attach to
type Host interface {
	// SubscribeOnce delivers the next firing of phase, then unsubscribes
	SubscribeOnce(phase string, h hooks.Handler) string
	// SubscribeRecurring delivers every firing of phase
	SubscribeRecurring(phase string, h hooks.Handler) string
	// Broadcast runs every listener of event before returning
	Broadcast(event string, args ...any) []error
}

// Dispatcher is the composition root of one plugin session
type Dispatcher struct {
	mu            sync.RWMutex
	host          Host
	state         State
	built         bool
	subscriptions int

	registry *hooks.Registry
	ns       *exchange.Namespace

	bootstrapPhase string
	apiPhase       string
	version        hooks.VersionInfo
	patcher        any
	settings       settings.Store
	extra          []exchange.Capability

	onFault hooks.FaultHandler
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

// New creates an unbuilt dispatcher for host
func New(host Host, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		host:           host,
		ns:             exchange.NewNamespace(),
		bootstrapPhase: hooks.DefaultBootstrapPhase,
		apiPhase:       hooks.DefaultAPIPhase,
		logger:         logging.GetLogger("dispatcher"),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.registry = hooks.NewRegistry(d.bootstrapPhase)
	return d
}

// Build subscribes the registration and capability collectors on the host
func (d *Dispatcher) Build() error {
	if d.host == nil {
		return errors.New(errors.ErrInvalidInput, "dispatcher has no host")
	}
	if d.bootstrapPhase == d.apiPhase {
		return errors.Newf(errors.ErrInvalidInput, "bootstrap and capability phases must differ, both are %q", d.apiPhase)
	}

	d.mu.Lock()
	if d.built {
		d.mu.Unlock()
		return errors.New(errors.ErrAlreadyBuilt, "dispatcher is already built")
	}
	d.built = true
	d.mu.Unlock()

	d.host.SubscribeOnce(d.bootstrapPhase, d.collectRegistrations)
	d.host.SubscribeOnce(d.apiPhase, d.collectCapabilities)

	d.logger.Debug().
		Str("bootstrapPhase", d.bootstrapPhase).
		Str("apiPhase", d.apiPhase).
		Msg("Dispatcher built")
	return nil
}

// State returns the current protocol state
func (d *Dispatcher) State() State {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.state
}

// Namespace returns the capability namespace
func (d *Dispatcher) Namespace() *exchange.Namespace {
	return d.ns
}

// Registry returns the registration registry
func (d *Dispatcher) Registry() *hooks.Registry {
	return d.registry
}

// Subscriptions returns how many aggregated subscriptions were installed
func (d *Dispatcher) Subscriptions() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.subscriptions
}

// Registrar returns the registration function bound to this dispatcher
func (d *Dispatcher) Registrar() hooks.Registrar {
	return hooks.RegistrarFunc(d.register)
}

// Publisher returns the publishing handle bound to this dispatcher
func (d *Dispatcher) Publisher() exchange.Publisher {
	return publisher{d: d}
}

func (d *Dispatcher) transition(from, to State) bool {
	d.mu.Lock()
	if d.state != from {
		current := d.state
		d.mu.Unlock()
		d.logger.Warn().
			Str("expected", from.String()).
			Str("current", current.String()).
			Str("target", to.String()).
			Msg("Ignoring out-of-order lifecycle phase")
		return false
	}
	d.state = to
	d.mu.Unlock()

	logging.LogTransition(d.logger, from.String(), to.String())
	return true
}

func (d *Dispatcher) register(phase string, fn hooks.Callback, mode hooks.Mode) error {
	if phase != d.bootstrapPhase && d.State() != Registering {
		return errors.Newf(errors.ErrLateRegistration, "registration for %q outside the registration window", phase).
			WithDetail("phase", phase).
			WithDetail("state", d.State().String())
	}
	if err := d.registry.Register(phase, fn, mode); err != nil {
		return err
	}
	d.metrics.Registration(mode.String())
	d.logger.Trace().
		Str("phase", phase).
		Str("mode", mode.String()).
		Msg("Callback registered")
	return nil
}

func (d *Dispatcher) collectRegistrations(args ...any) {
	if !d.transition(Unbuilt, Registering) {
		return
	}
	done := logging.LogOperationStart(d.logger, "collect-registrations")
	defer done()

	d.ns.Reset()
	d.publishCore(d.bootstrapCapabilities()...)

	faults := d.host.Broadcast(hooks.EventRegister, d.Registrar(), d.version)
	d.reportAll(hooks.EventRegister, faults)

	d.registry.Seal()
	d.install()

	d.transition(Registering, Dispatched)
}

func (d *Dispatcher) bootstrapCapabilities() []exchange.Capability {
	caps := []exchange.Capability{
		exchange.Named(CapEvents, record.MustNew(map[string]any{
			"REGISTER": hooks.EventRegister,
			"ADD_API":  hooks.EventAddAPI,
		}, "Events")),
		exchange.Named(CapPhases, record.MustNew(map[string]any{
			"BOOTSTRAP": d.bootstrapPhase,
			"API":       d.apiPhase,
		}, "Phases")),
		exchange.Named(CapRegister, d.Registrar()),
	}
	if d.patcher != nil {
		caps = append(caps, exchange.Named(CapPatcher, d.patcher))
	}
	if d.settings != nil {
		caps = append(caps, exchange.Named(CapSettings, d.settings))
	}
	return append(caps, d.extra...)
}

func (d *Dispatcher) publishCore(caps ...exchange.Capability) {
	if err := d.ns.Publish(hooks.CoreID, caps...); err != nil {
		d.logger.Error().Err(err).Msg("Failed to publish core capabilities")
		return
	}
	d.metrics.Published(hooks.CoreID, len(caps))
}

// install creates one host subscription per distinct PhaseKey
func (d *Dispatcher) install() {
	keys := d.registry.Keys()
	for _, key := range keys {
		handler := d.aggregate(key, d.registry.Callbacks(key))
		switch key.Mode {
		case hooks.Once:
			d.host.SubscribeOnce(key.Phase, handler)
		default:
			d.host.SubscribeRecurring(key.Phase, handler)
		}
		d.metrics.Subscription(key.Mode.String())
	}

	d.mu.Lock()
	d.subscriptions += len(keys)
	d.mu.Unlock()

	d.logger.Debug().
		Int("subscriptions", len(keys)).
		Int("callbacks", d.registry.Count()).
		Msg("Aggregated subscriptions installed")
}

// aggregate builds the handler that starts every callback of key in
// registration order, forwarding the host's arguments unchanged
func (d *Dispatcher) aggregate(key hooks.PhaseKey, list []hooks.Callback) hooks.Handler {
	return func(args ...any) {
		d.metrics.Dispatch(key.Phase, key.Mode.String(), len(list))
		for i, fn := range list {
			if err := hooks.Invoke(fn, args...); err != nil {
				d.report(hooks.Fault{
					Source: hooks.SourceDispatch,
					Phase:  key.Phase,
					Mode:   key.Mode,
					Index:  i,
					Err:    err,
				})
			}
		}
	}
}

func (d *Dispatcher) collectCapabilities(args ...any) {
	if !d.transition(Dispatched, APIPublishing) {
		return
	}
	done := logging.LogOperationStart(d.logger, "collect-capabilities")
	defer done()

	d.publishCore(
		exchange.Named(CapPublish, d.Publisher()),
		exchange.Named(CapLookup, d.ns.Lookup),
	)

	faults := d.host.Broadcast(hooks.EventAddAPI, d.Publisher())
	d.reportAll(hooks.EventAddAPI, faults)

	d.transition(APIPublishing, Steady)
}

func (d *Dispatcher) reportAll(event string, faults []error) {
	for i, err := range faults {
		var f hooks.Fault
		if !stderrors.As(err, &f) {
			f = hooks.Fault{Source: hooks.SourceBroadcast, Phase: event, Index: i, Err: err}
		}
		d.report(f)
	}
}

func (d *Dispatcher) report(f hooks.Fault) {
	d.logger.Error().
		Err(f.Err).
		Str("source", f.Source).
		Str("phase", f.Phase).
		Int("index", f.Index).
		Msg("Callback failed")
	d.metrics.Fault(f.Source)

	if d.onFault == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error().Err(errors.FromPanic(r)).Msg("Fault handler panicked")
		}
	}()
	d.onFault(f)
}

// publisher is the Publisher handed out during the capability broadcast
type publisher struct {
	d *Dispatcher
}

func (p publisher) Publish(owner string, caps ...exchange.Capability) error {
	if state := p.d.State(); state != APIPublishing {
		return errors.Newf(errors.ErrLatePublish, "publish by %q outside the capability window", owner).
			WithDetail("owner", owner).
			WithDetail("state", state.String())
	}
	if err := p.d.ns.Publish(owner, caps...); err != nil {
		return err
	}
	p.d.metrics.Published(owner, len(caps))
	return nil
}

func (p publisher) Lookup(owner, name string) (any, bool) {
	return p.d.ns.Lookup(owner, name)
}
