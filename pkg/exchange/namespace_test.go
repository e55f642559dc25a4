package exchange_test

import (
	"reflect"
	"testing"

	"github.com/arthur-debert/hookhub/pkg/errors"
	"github.com/arthur-debert/hookhub/pkg/exchange"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type linker struct{ flag string }

func (l *linker) CapabilityName() string { return "Linker" }

func TestPublishAndLookup(t *testing.T) {
	ns := exchange.NewNamespace()
	doThing := func() string { return "done" }

	require.NoError(t, ns.Publish("Owner", exchange.Named("doThing", doThing)))

	got, ok := ns.Lookup("Owner", "doThing")
	require.True(t, ok)
	fn, ok := got.(func() string)
	require.True(t, ok)
	assert.Equal(t, reflect.ValueOf(doThing).Pointer(), reflect.ValueOf(fn).Pointer())
	assert.Equal(t, "done", fn())
}

func TestPublishOverwritesWithinOwner(t *testing.T) {
	ns := exchange.NewNamespace()

	require.NoError(t, ns.Publish("Owner", exchange.Named("limit", 1)))
	require.NoError(t, ns.Publish("Owner", exchange.Named("limit", 2), exchange.Named("other", "x")))

	v, ok := ns.Lookup("Owner", "limit")
	require.True(t, ok)
	assert.Equal(t, 2, v)
	assert.Equal(t, []string{"limit", "other"}, ns.Names("Owner"))
}

func TestOwnersAreIndependent(t *testing.T) {
	ns := exchange.NewNamespace()

	require.NoError(t, ns.Publish("A", exchange.Named("shared", "from A")))
	require.NoError(t, ns.Publish("B", exchange.Named("shared", "from B")))

	a, _ := ns.Lookup("A", "shared")
	b, _ := ns.Lookup("B", "shared")
	assert.Equal(t, "from A", a)
	assert.Equal(t, "from B", b)
	assert.Equal(t, []string{"A", "B"}, ns.Owners())
}

func TestPublishRejectsUnnamedCapability(t *testing.T) {
	ns := exchange.NewNamespace()

	err := ns.Publish("Owner", exchange.Named("ok", 1), exchange.Capability{Value: 2})

	assert.True(t, errors.IsErrorCode(err, errors.ErrDescriptorMissing))
	_, ok := ns.Lookup("Owner", "ok")
	assert.False(t, ok, "a rejected publish must not write anything")
	assert.Empty(t, ns.Owners())
}

func TestPublishRejectsEmptyOwner(t *testing.T) {
	ns := exchange.NewNamespace()
	err := ns.Publish("", exchange.Named("x", 1))
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestDescribe(t *testing.T) {
	ns := exchange.NewNamespace()
	l := &linker{flag: "ferolink"}

	require.NoError(t, ns.Publish("Beastheart", exchange.Describe(l)))

	got, ok := exchange.Get[*linker](ns, "Beastheart", "Linker")
	require.True(t, ok)
	assert.Same(t, l, got)

	assert.Equal(t, exchange.Capability{}, exchange.Describe(nil))
}

func TestLookupAbsent(t *testing.T) {
	ns := exchange.NewNamespace()
	require.NoError(t, ns.Publish("Owner", exchange.Named("present", 1)))

	_, ok := ns.Lookup("Nobody", "present")
	assert.False(t, ok)
	_, ok = ns.Lookup("Owner", "absent")
	assert.False(t, ok)
	assert.Nil(t, ns.Names("Nobody"))
}

func TestReset(t *testing.T) {
	ns := exchange.NewNamespace()
	require.NoError(t, ns.Publish("Owner", exchange.Named("present", 1)))

	ns.Reset()

	_, ok := ns.Lookup("Owner", "present")
	assert.False(t, ok)
	assert.Empty(t, ns.Owners())
}

func TestRequire(t *testing.T) {
	ns := exchange.NewNamespace()
	require.NoError(t, ns.Publish("hookhub", exchange.Named("Version", "1.2.0")))

	t.Run("present", func(t *testing.T) {
		v, err := exchange.Require(ns, "hookhub", "Version")
		require.NoError(t, err)
		assert.Equal(t, "1.2.0", v)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := exchange.Require(ns, "hookhub", "Util")
		assert.True(t, errors.IsErrorCode(err, errors.ErrMissingCollaborator))
		assert.Equal(t, "Util", errors.GetErrorDetails(err)["name"])
	})

	t.Run("typed", func(t *testing.T) {
		v, err := exchange.RequireAs[string](ns, "hookhub", "Version")
		require.NoError(t, err)
		assert.Equal(t, "1.2.0", v)

		_, err = exchange.RequireAs[int](ns, "hookhub", "Version")
		assert.True(t, errors.IsErrorCode(err, errors.ErrMissingCollaborator))

		_, ok := exchange.Get[int](ns, "hookhub", "Version")
		assert.False(t, ok)
	})
}
