package bus

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/arthur-debert/hookhub/pkg/errors"
	"github.com/arthur-debert/hookhub/pkg/hooks"
	"github.com/arthur-debert/hookhub/pkg/logging"
)

type subscription struct {
	id      string
	phase   string
	once    bool
	handler hooks.Handler
}

type listener struct {
	id string
	fn hooks.Listener
}

// Bus delivers phases and events synchronously, in subscription order
type Bus struct {
	mu        sync.Mutex
	subs      map[string][]*subscription
	listeners map[string][]listener
	logger    zerolog.Logger
}

// New creates an empty bus
func New() *Bus {
	return &Bus{
		subs:      make(map[string][]*subscription),
		listeners: make(map[string][]listener),
		logger:    logging.GetLogger("bus"),
	}
}

// SubscribeOnce delivers the next firing of phase to h, then unsubscribes
func (b *Bus) SubscribeOnce(phase string, h hooks.Handler) string {
	return b.subscribe(phase, h, true)
}

// SubscribeRecurring delivers every firing of phase to h
func (b *Bus) SubscribeRecurring(phase string, h hooks.Handler) string {
	return b.subscribe(phase, h, false)
}

func (b *Bus) subscribe(phase string, h hooks.Handler, once bool) string {
	sub := &subscription{id: uuid.NewString(), phase: phase, once: once, handler: h}

	b.mu.Lock()
	b.subs[phase] = append(b.subs[phase], sub)
	b.mu.Unlock()

	b.logger.Trace().
		Str("phase", phase).
		Bool("once", once).
		Str("id", sub.id).
		Msg("Subscribed")
	return sub.id
}

// Unsubscribe removes the subscription with the given id
func (b *Bus) Unsubscribe(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for phase, list := range b.subs {
		for i, sub := range list {
			if sub.id == id {
				b.subs[phase] = append(list[:i:i], list[i+1:]...)
				return true
			}
		}
	}
	return false
}

// Subscriptions returns how many subscriptions phase currently has
func (b *Bus) Subscriptions(phase string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs[phase])
}

// Fire delivers phase to its subscribers and returns how many were called.
// Once subscriptions are removed before any handler runs, so a handler that
// fires the same phase again does not see them.
func (b *Bus) Fire(phase string, args ...any) int {
	b.mu.Lock()
	list := b.subs[phase]
	targets := make([]*subscription, len(list))
	copy(targets, list)
	kept := list[:0:0]
	for _, sub := range list {
		if !sub.once {
			kept = append(kept, sub)
		}
	}
	b.subs[phase] = kept
	b.mu.Unlock()

	b.logger.Debug().
		Str("phase", phase).
		Int("subscribers", len(targets)).
		Msg("Firing phase")

	for _, sub := range targets {
		b.deliver(sub, args)
	}
	return len(targets)
}

func (b *Bus) deliver(sub *subscription, args []any) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error().
				Err(errors.FromPanic(r)).
				Str("phase", sub.phase).
				Str("id", sub.id).
				Msg("Phase handler panicked")
		}
	}()
	sub.handler(args...)
}

// On attaches a listener to event
func (b *Bus) On(event string, l hooks.Listener) string {
	id := uuid.NewString()
	b.mu.Lock()
	b.listeners[event] = append(b.listeners[event], listener{id: id, fn: l})
	b.mu.Unlock()
	return id
}

// Off detaches the listener with the given id
func (b *Bus) Off(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for event, list := range b.listeners {
		for i, l := range list {
			if l.id == id {
				b.listeners[event] = append(list[:i:i], list[i+1:]...)
				return true
			}
		}
	}
	return false
}

// Listeners returns how many listeners event has
func (b *Bus) Listeners(event string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.listeners[event])
}

// Broadcast calls every listener of event in order before returning. A
// failing listener does not stop the others; each failure is returned as a
// hooks.Fault.
func (b *Bus) Broadcast(event string, args ...any) []error {
	b.mu.Lock()
	targets := make([]listener, len(b.listeners[event]))
	copy(targets, b.listeners[event])
	b.mu.Unlock()

	b.logger.Debug().
		Str("event", event).
		Int("listeners", len(targets)).
		Msg("Broadcasting")

	var faults []error
	for i, l := range targets {
		if err := hooks.Invoke(hooks.Callback(l.fn), args...); err != nil {
			faults = append(faults, hooks.Fault{
				Source: hooks.SourceBroadcast,
				Phase:  event,
				Index:  i,
				Err:    err,
			})
		}
	}
	return faults
}
