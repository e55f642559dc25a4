package hooks_test

import (
	"testing"

	"github.com/arthur-debert/hookhub/pkg/errors"
	"github.com/arthur-debert/hookhub/pkg/exchange"
	"github.com/arthur-debert/hookhub/pkg/hooks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEvents map[string][]hooks.Listener

func (f fakeEvents) On(event string, l hooks.Listener) string {
	f[event] = append(f[event], l)
	return event
}

func (f fakeEvents) emit(event string, args ...any) error {
	for _, l := range f[event] {
		if err := l(args...); err != nil {
			return err
		}
	}
	return nil
}

func TestOnRegister(t *testing.T) {
	events := fakeEvents{}
	var gotInfo hooks.VersionInfo
	var phases []string

	hooks.OnRegister(events, func(reg hooks.Registrar, info hooks.VersionInfo) error {
		gotInfo = info
		return reg.Register("ready", noop, hooks.Once)
	})

	registrar := hooks.RegistrarFunc(func(phase string, fn hooks.Callback, mode hooks.Mode) error {
		phases = append(phases, phase)
		return nil
	})
	info := hooks.VersionInfo{Generation: 11, Build: 315, System: "2.4.1"}

	require.NoError(t, events.emit(hooks.EventRegister, registrar, info))
	assert.Equal(t, info, gotInfo)
	assert.Equal(t, []string{"ready"}, phases)

	t.Run("missing registrar", func(t *testing.T) {
		err := events.emit(hooks.EventRegister)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	})

	t.Run("wrong argument type", func(t *testing.T) {
		err := events.emit(hooks.EventRegister, "not a registrar")
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	})
}

func TestOnAddAPI(t *testing.T) {
	events := fakeEvents{}
	hooks.OnAddAPI(events, func(pub exchange.Publisher) error {
		return pub.Publish("Owner", exchange.Named("doThing", 1))
	})

	ns := exchange.NewNamespace()
	require.NoError(t, events.emit(hooks.EventAddAPI, ns))

	v, ok := ns.Lookup("Owner", "doThing")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	err := events.emit(hooks.EventAddAPI, 42)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	err = events.emit(hooks.EventAddAPI)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}
