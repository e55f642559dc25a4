// Package dispatcher turns plugin registrations into host subscriptions.
//
// Build subscribes two once-handlers on the host. When the bootstrap phase
// fires, the dispatcher publishes its own capabilities, broadcasts
// hooks.EventRegister with a bound Registrar, then installs exactly one
// aggregated subscription per distinct (phase, mode). When the capability
// phase fires it broadcasts hooks.EventAddAPI with a bound Publisher. After
// that the dispatcher is Steady and only its aggregated handlers run.
//
// A callback or listener that fails is reported as a hooks.Fault and never
// stops its siblings.
package dispatcher
