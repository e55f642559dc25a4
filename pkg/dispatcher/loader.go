package dispatcher

import (
	"github.com/rs/zerolog"

	"github.com/arthur-debert/hookhub/pkg/errors"
	"github.com/arthur-debert/hookhub/pkg/hooks"
	"github.com/arthur-debert/hookhub/pkg/logging"
	"github.com/arthur-debert/hookhub/pkg/registry"
)

// Loader attaches plugins to an event source in load order
type Loader struct {
	plugins registry.Registry[hooks.Plugin]
	order   []string
	logger  zerolog.Logger
}

// NewLoader creates an empty loader
func NewLoader() *Loader {
	return &Loader{
		plugins: registry.New[hooks.Plugin](),
		logger:  logging.GetLogger("loader"),
	}
}

// Add queues a plugin. Plugin names must be unique.
func (l *Loader) Add(plugins ...hooks.Plugin) error {
	for _, p := range plugins {
		if p == nil {
			return errors.New(errors.ErrInvalidInput, "nil plugin")
		}
		if err := l.plugins.Register(p.Name(), p); err != nil {
			return errors.Wrapf(err, errors.GetErrorCode(err), "cannot load plugin %q", p.Name())
		}
		l.order = append(l.order, p.Name())
	}
	return nil
}

// Names returns plugin names in load order
func (l *Loader) Names() []string {
	out := make([]string, len(l.order))
	copy(out, l.order)
	return out
}

// Attach calls Attach on every plugin in load order. A plugin that fails to
// attach is dropped from the loader and its error is returned; the others
// still attach. When events can detach listeners, the ones the failed plugin
// added before failing are removed.
func (l *Loader) Attach(events hooks.EventSource) []error {
	if events == nil {
		return []error{errors.New(errors.ErrInvalidInput, "plugins need an event source")}
	}
	var failed []error
	for _, name := range l.Names() {
		p, err := l.plugins.Get(name)
		if err != nil {
			failed = append(failed, err)
			continue
		}
		rec := &recorder{events: events}
		if err := attach(p, rec); err != nil {
			l.logger.Error().
				Err(err).
				Str("plugin", name).
				Int("listeners", len(rec.ids)).
				Msg("Plugin failed to attach, skipping")
			l.drop(name, events, rec.ids)
			failed = append(failed, err)
			continue
		}
		l.logger.Debug().Str("plugin", name).Msg("Plugin attached")
	}
	return failed
}

// drop removes a plugin and detaches the listeners it added
func (l *Loader) drop(name string, events hooks.EventSource, ids []string) {
	if err := l.plugins.Remove(name); err != nil {
		l.logger.Warn().Err(err).Str("plugin", name).Msg("Plugin already removed")
	}
	for i, n := range l.order {
		if n == name {
			l.order = append(l.order[:i:i], l.order[i+1:]...)
			break
		}
	}

	bus, ok := events.(hooks.EventBus)
	if !ok {
		return
	}
	for _, id := range ids {
		bus.Off(id)
	}
}

// recorder remembers the listener ids a plugin registers
type recorder struct {
	events hooks.EventSource
	ids    []string
}

func (r *recorder) On(event string, fn hooks.Listener) string {
	id := r.events.On(event, fn)
	r.ids = append(r.ids, id)
	return id
}

func attach(p hooks.Plugin, events hooks.EventSource) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.FromPanic(r).WithDetail("plugin", p.Name())
		}
	}()
	return p.Attach(events)
}
