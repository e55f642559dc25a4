// Package trace is a reference plugin that records every firing of the
// phases it is configured with.
package trace

import (
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/hookhub/pkg/dispatcher"
	"github.com/arthur-debert/hookhub/pkg/errors"
	"github.com/arthur-debert/hookhub/pkg/exchange"
	"github.com/arthur-debert/hookhub/pkg/hooks"
	"github.com/arthur-debert/hookhub/pkg/logging"
	"github.com/arthur-debert/hookhub/pkg/settings"
)

// Name is the plugin name and its capability owner
const Name = "trace"

// Capabilities published under Name
const (
	CapLines = "Lines"
	CapReset = "Reset"
)

// Line styles for the style setting
const (
	StylePlain = "plain"
	StyleArrow = "arrow"
)

// StyleKey is the settings key holding the line style
const StyleKey = "style"

// Plugin records "phase(args)" lines
type Plugin struct {
	mu       sync.Mutex
	phases   []string
	mode     hooks.Mode
	lines    []string
	settings settings.Store
	logger   zerolog.Logger
}

// Option configures a Plugin
type Option func(*Plugin)

// WithMode sets the mode the phase callbacks are registered with
func WithMode(mode hooks.Mode) Option {
	return func(p *Plugin) {
		p.mode = mode
	}
}

// New creates a trace plugin for phases
func New(phases []string, opts ...Option) *Plugin {
	p := &Plugin{
		phases: append([]string(nil), phases...),
		mode:   hooks.Persistent,
		logger: logging.GetLogger("trace"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name implements hooks.Plugin
func (p *Plugin) Name() string {
	return Name
}

// Attach implements hooks.Plugin
func (p *Plugin) Attach(events hooks.EventSource) error {
	if events == nil {
		return errors.New(errors.ErrInvalidInput, "trace plugin needs an event source")
	}
	hooks.OnRegister(events, p.register)
	hooks.OnAddAPI(events, p.publish)
	return nil
}

func (p *Plugin) register(reg hooks.Registrar, info hooks.VersionInfo) error {
	p.logger.Debug().
		Int("generation", info.Generation).
		Int("build", info.Build).
		Strs("phases", p.phases).
		Msg("Registering trace callbacks")

	var first error
	for _, phase := range p.phases {
		if err := reg.Register(phase, p.recorder(phase), p.mode); err != nil {
			p.logger.Warn().Err(err).Str("phase", phase).Msg("Cannot trace phase")
			if first == nil {
				first = err
			}
		}
	}
	return first
}

func (p *Plugin) publish(pub exchange.Publisher) error {
	store, err := exchange.RequireAs[settings.Store](pub, hooks.CoreID, dispatcher.CapSettings)
	switch {
	case err != nil:
		p.logger.Warn().Err(err).Msg("Settings unavailable, using the default line style")
	default:
		if err := registerStyle(store); err != nil {
			return err
		}
		p.mu.Lock()
		p.settings = store
		p.mu.Unlock()
	}

	return pub.Publish(Name,
		exchange.Named(CapLines, p.Lines),
		exchange.Named(CapReset, p.Reset),
	)
}

func registerStyle(store settings.Store) error {
	err := store.RegisterDescriptor(Name, StyleKey, settings.Descriptor{
		Name:   "Trace line style",
		Hint:   "How recorded phase lines are prefixed",
		Scope:  settings.ScopeClient,
		Config: true,
		Type:   settings.TypeString,
		Choices: map[string]string{
			StylePlain: "No prefix",
			StyleArrow: "Arrow prefix",
		},
		Default: StyleArrow,
	})
	if errors.IsErrorCode(err, errors.ErrAlreadyExists) {
		return nil
	}
	return err
}

func (p *Plugin) recorder(phase string) hooks.Callback {
	return func(args ...any) error {
		parts := make([]string, len(args))
		for i, arg := range args {
			parts[i] = fmt.Sprint(arg)
		}
		line := fmt.Sprintf("%s(%s)", phase, strings.Join(parts, ", "))

		p.mu.Lock()
		p.lines = append(p.lines, line)
		p.mu.Unlock()
		return nil
	}
}

// Lines returns the recorded lines in the configured style
func (p *Plugin) Lines() []string {
	style := p.style()

	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.lines))
	for i, line := range p.lines {
		if style == StyleArrow {
			line = "→ " + line
		}
		out[i] = line
	}
	return out
}

// Reset clears the recorded lines
func (p *Plugin) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lines = nil
}

func (p *Plugin) style() string {
	p.mu.Lock()
	store := p.settings
	p.mu.Unlock()

	if store == nil {
		return StyleArrow
	}
	v, err := store.Get(Name, StyleKey)
	if err != nil {
		return StyleArrow
	}
	if s, ok := v.(string); ok {
		return s
	}
	return StyleArrow
}
