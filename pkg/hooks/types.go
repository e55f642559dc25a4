package hooks

import "fmt"

// Mode selects how often an aggregated subscription is delivered
type Mode int

const (
	// Persistent subscriptions fire on every delivery of their phase
	Persistent Mode = iota
	// Once subscriptions fire on the first delivery and are then removed
	Once
)

// String returns the mode name
func (m Mode) String() string {
	switch m {
	case Once:
		return "once"
	case Persistent:
		return "persistent"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ModeOf converts the boolean "once" flag plugins historically pass
func ModeOf(once bool) Mode {
	if once {
		return Once
	}
	return Persistent
}

// PhaseKey identifies one aggregated subscription. It is compared by value.
type PhaseKey struct {
	Phase string
	Mode  Mode
}

// String returns phase/mode
func (k PhaseKey) String() string {
	return k.Phase + "/" + k.Mode.String()
}

// Callback is a plugin function attached to a phase. Arguments given by the
// host are forwarded unchanged.
type Callback func(args ...any) error

// Handler is what the host invokes when it delivers a phase
type Handler func(args ...any)

// Listener receives a broadcast event
type Listener func(args ...any) error

// VersionInfo describes the host release, passed along with the
// registration broadcast
type VersionInfo struct {
	Generation int    `json:"generation" yaml:"generation"`
	Build      int    `json:"build" yaml:"build"`
	System     string `json:"system" yaml:"system"`
}

// Registrar is handed to plugins during the registration broadcast
type Registrar interface {
	Register(phase string, fn Callback, mode Mode) error
}

// RegistrarFunc adapts a function to Registrar
type RegistrarFunc func(phase string, fn Callback, mode Mode) error

// Register calls f
func (f RegistrarFunc) Register(phase string, fn Callback, mode Mode) error {
	return f(phase, fn, mode)
}

// EventSource is the part of the host plugins attach listeners to
type EventSource interface {
	On(event string, l Listener) string
}

// Plugin is an independently loaded extension bundle
type Plugin interface {
	Name() string
	// Attach subscribes the plugin's handshake listeners
	Attach(events EventSource) error
}

// EventBus is an EventSource that can also detach listeners
type EventBus interface {
	EventSource
	Off(id string) bool
}
