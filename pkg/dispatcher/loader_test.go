package dispatcher_test

import (
	stderrors "errors"
	"testing"

	"github.com/arthur-debert/hookhub/pkg/bus"
	"github.com/arthur-debert/hookhub/pkg/dispatcher"
	"github.com/arthur-debert/hookhub/pkg/errors"
	"github.com/arthur-debert/hookhub/pkg/hooks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPlugin struct {
	name   string
	attach func(hooks.EventSource) error
}

func (p stubPlugin) Name() string { return p.name }

func (p stubPlugin) Attach(events hooks.EventSource) error {
	if p.attach == nil {
		return nil
	}
	return p.attach(events)
}

func TestLoaderAdd(t *testing.T) {
	t.Run("keeps load order", func(t *testing.T) {
		l := dispatcher.NewLoader()
		require.NoError(t, l.Add(stubPlugin{name: "zeta"}, stubPlugin{name: "alpha"}))
		assert.Equal(t, []string{"zeta", "alpha"}, l.Names())
	})

	t.Run("duplicate name", func(t *testing.T) {
		l := dispatcher.NewLoader()
		require.NoError(t, l.Add(stubPlugin{name: "trace"}))
		err := l.Add(stubPlugin{name: "trace"})
		assert.True(t, errors.IsErrorCode(err, errors.ErrAlreadyExists))
		assert.Equal(t, []string{"trace"}, l.Names())
	})

	t.Run("nil plugin", func(t *testing.T) {
		err := dispatcher.NewLoader().Add(nil)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	})

	t.Run("empty name", func(t *testing.T) {
		err := dispatcher.NewLoader().Add(stubPlugin{})
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	})
}

func TestLoaderAttachSkipsFailures(t *testing.T) {
	b := bus.New()
	var attached []string
	record := func(name string) func(hooks.EventSource) error {
		return func(events hooks.EventSource) error {
			attached = append(attached, name)
			return nil
		}
	}

	l := dispatcher.NewLoader()
	require.NoError(t, l.Add(
		stubPlugin{name: "first", attach: record("first")},
		stubPlugin{name: "broken", attach: func(hooks.EventSource) error { return stderrors.New("no") }},
		stubPlugin{name: "panics", attach: func(hooks.EventSource) error { panic("boom") }},
		stubPlugin{name: "last", attach: record("last")},
	))

	errs := l.Attach(b)

	assert.Equal(t, []string{"first", "last"}, attached)
	require.Len(t, errs, 2)
	assert.True(t, errors.IsErrorCode(errs[1], errors.ErrCallbackFailed))
	assert.Equal(t, "panics", errors.GetErrorDetails(errs[1])["plugin"])
	assert.Equal(t, []string{"first", "last"}, l.Names())
}

func TestLoaderDetachesListenersOfFailedPlugin(t *testing.T) {
	b := bus.New()
	build(t, b)
	tr := &trace{}

	l := dispatcher.NewLoader()
	require.NoError(t, l.Add(
		stubPlugin{name: "half", attach: func(events hooks.EventSource) error {
			hooks.OnRegister(events, func(reg hooks.Registrar, info hooks.VersionInfo) error {
				return reg.Register("ready", tr.cb("half"), hooks.Persistent)
			})
			return stderrors.New("missing dependency")
		}},
		stubPlugin{name: "whole", attach: func(events hooks.EventSource) error {
			hooks.OnRegister(events, func(reg hooks.Registrar, info hooks.VersionInfo) error {
				return reg.Register("ready", tr.cb("whole"), hooks.Persistent)
			})
			return nil
		}},
	))

	errs := l.Attach(b)
	require.Len(t, errs, 1)
	assert.Equal(t, 1, b.Listeners(hooks.EventRegister))
	assert.Equal(t, []string{"whole"}, l.Names())

	b.Fire("init")
	b.Fire("ready")
	assert.Equal(t, []string{"whole"}, tr.get())
}

func TestLoaderAttachWithoutEvents(t *testing.T) {
	l := dispatcher.NewLoader()
	require.NoError(t, l.Add(stubPlugin{name: "p"}))

	errs := l.Attach(nil)
	require.Len(t, errs, 1)
	assert.True(t, errors.IsErrorCode(errs[0], errors.ErrInvalidInput))
}

func TestLoaderDrivesFullLifecycle(t *testing.T) {
	b := bus.New()
	d := build(t, b)
	tr := &trace{}

	l := dispatcher.NewLoader()
	require.NoError(t, l.Add(stubPlugin{name: "ready", attach: func(events hooks.EventSource) error {
		hooks.OnRegister(events, func(reg hooks.Registrar, info hooks.VersionInfo) error {
			return reg.Register("ready", tr.cb("ready"), hooks.Persistent)
		})
		return nil
	}}))
	require.Empty(t, l.Attach(b))

	b.Fire("init")
	b.Fire("setup")
	b.Fire("ready")

	assert.Equal(t, dispatcher.Steady, d.State())
	assert.Equal(t, []string{"ready"}, tr.get())
}
