package trace_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/hookhub/pkg/bus"
	"github.com/arthur-debert/hookhub/pkg/dispatcher"
	"github.com/arthur-debert/hookhub/pkg/errors"
	"github.com/arthur-debert/hookhub/pkg/exchange"
	"github.com/arthur-debert/hookhub/pkg/hooks"
	"github.com/arthur-debert/hookhub/pkg/plugins/trace"
	"github.com/arthur-debert/hookhub/pkg/settings"
)

type session struct {
	bus        *bus.Bus
	dispatcher *dispatcher.Dispatcher
	plugin     *trace.Plugin
	faults     []hooks.Fault
}

func start(t *testing.T, p *trace.Plugin, opts ...dispatcher.Option) *session {
	t.Helper()
	s := &session{bus: bus.New(), plugin: p}
	opts = append(opts, dispatcher.WithFaultHandler(func(f hooks.Fault) { s.faults = append(s.faults, f) }))
	s.dispatcher = dispatcher.New(s.bus, opts...)
	require.NoError(t, s.dispatcher.Build())
	require.NoError(t, p.Attach(s.bus))
	s.bus.Fire("init")
	s.bus.Fire("setup")
	return s
}

func TestRecordsPhases(t *testing.T) {
	s := start(t, trace.New([]string{"ready", "updateActor"}))

	s.bus.Fire("ready")
	s.bus.Fire("updateActor", "actor-1", 3)
	s.bus.Fire("ready")

	assert.Equal(t, []string{
		"→ ready()",
		"→ updateActor(actor-1, 3)",
		"→ ready()",
	}, s.plugin.Lines())
	assert.Empty(t, s.faults)
}

func TestOnceMode(t *testing.T) {
	s := start(t, trace.New([]string{"ready"}, trace.WithMode(hooks.Once)))

	s.bus.Fire("ready")
	s.bus.Fire("ready")

	assert.Len(t, s.plugin.Lines(), 1)
}

func TestPublishesCapabilities(t *testing.T) {
	s := start(t, trace.New([]string{"ready"}))
	ns := s.dispatcher.Namespace()

	s.bus.Fire("ready")

	lines, err := exchange.RequireAs[func() []string](ns, trace.Name, trace.CapLines)
	require.NoError(t, err)
	assert.Equal(t, []string{"→ ready()"}, lines())

	reset, err := exchange.RequireAs[func()](ns, trace.Name, trace.CapReset)
	require.NoError(t, err)
	reset()
	assert.Empty(t, lines())
}

func TestStyleSetting(t *testing.T) {
	store := settings.New()
	s := start(t, trace.New([]string{"ready"}), dispatcher.WithSettings(store))

	d, err := store.Descriptor(trace.Name, trace.StyleKey)
	require.NoError(t, err)
	assert.Equal(t, settings.ScopeClient, d.Scope)

	s.bus.Fire("ready")
	assert.Equal(t, []string{"→ ready()"}, s.plugin.Lines())

	require.NoError(t, store.Set(trace.Name, trace.StyleKey, trace.StylePlain))
	assert.Equal(t, []string{"ready()"}, s.plugin.Lines())

	err = store.Set(trace.Name, trace.StyleKey, "fancy")
	assert.True(t, errors.IsErrorCode(err, errors.ErrSettingsInvalid))
}

func TestSharedSettingsStore(t *testing.T) {
	store := settings.New()
	start(t, trace.New([]string{"ready"}), dispatcher.WithSettings(store))
	s := start(t, trace.New([]string{"ready"}), dispatcher.WithSettings(store))

	assert.Empty(t, s.faults, "second session reuses the registered descriptor")
}

func TestReservedPhaseIsReported(t *testing.T) {
	s := start(t, trace.New([]string{"init", "ready"}))

	require.Len(t, s.faults, 1)
	assert.Equal(t, hooks.SourceBroadcast, s.faults[0].Source)
	assert.True(t, errors.IsErrorCode(s.faults[0].Err, errors.ErrInvalidPhase))

	s.bus.Fire("ready")
	assert.Equal(t, []string{"→ ready()"}, s.plugin.Lines())
}

func TestAttachWithoutEvents(t *testing.T) {
	err := trace.New(nil).Attach(nil)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestName(t *testing.T) {
	var p hooks.Plugin = trace.New(nil)
	assert.Equal(t, "trace", p.Name())
}
