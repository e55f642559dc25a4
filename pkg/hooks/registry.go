package hooks

import (
	"sync"

	"github.com/arthur-debert/hookhub/pkg/errors"
)

// Registry accumulates callbacks per PhaseKey during the registration window.
// Keys are kept in first-registration order and each list keeps insertion
// order, duplicates included.
type Registry struct {
	mu       sync.RWMutex
	reserved string
	keys     []PhaseKey
	lists    map[PhaseKey][]Callback
	sealed   bool
}

// NewRegistry creates an empty registry that refuses the reserved phase
func NewRegistry(reserved string) *Registry {
	return &Registry{
		reserved: reserved,
		lists:    make(map[PhaseKey][]Callback),
	}
}

// Reserved returns the phase that cannot be registered against
func (r *Registry) Reserved() string {
	return r.reserved
}

// Register appends fn to the list for (phase, mode)
func (r *Registry) Register(phase string, fn Callback, mode Mode) error {
	if phase == r.reserved {
		return errors.Newf(errors.ErrInvalidPhase, "invalid registration stage %q used", phase).
			WithDetail("phase", phase)
	}
	if fn == nil {
		return errors.Newf(errors.ErrInvalidInput, "nil callback for phase %q", phase).
			WithDetail("phase", phase)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		return errors.Newf(errors.ErrLateRegistration, "registration for %q after subscriptions were installed", phase).
			WithDetail("phase", phase)
	}

	key := PhaseKey{Phase: phase, Mode: mode}
	if _, exists := r.lists[key]; !exists {
		r.keys = append(r.keys, key)
	}
	r.lists[key] = append(r.lists[key], fn)
	return nil
}

// Seal closes the registry; later registrations fail
func (r *Registry) Seal() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sealed = true
}

// Sealed reports whether Seal was called
func (r *Registry) Sealed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sealed
}

// Keys returns the distinct keys in first-registration order
func (r *Registry) Keys() []PhaseKey {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]PhaseKey, len(r.keys))
	copy(out, r.keys)
	return out
}

// Callbacks returns a copy of the list registered for key
func (r *Registry) Callbacks(key PhaseKey) []Callback {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := r.lists[key]
	out := make([]Callback, len(list))
	copy(out, list)
	return out
}

// Len returns the number of distinct keys
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.keys)
}

// Count returns the number of registered callbacks across all keys
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, list := range r.lists {
		n += len(list)
	}
	return n
}
