package registry

import (
	"fmt"
	"sync"
	"testing"

	"github.com/arthur-debert/hookhub/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capability struct {
	Name  string
	Value int
}

func TestRegister(t *testing.T) {
	reg := New[capability]()

	t.Run("register valid item", func(t *testing.T) {
		require.NoError(t, reg.Register("doThing", capability{Name: "doThing", Value: 1}))
		assert.Equal(t, 1, reg.Count())
	})

	t.Run("register with empty name", func(t *testing.T) {
		err := reg.Register("", capability{})
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	})

	t.Run("register duplicate", func(t *testing.T) {
		err := reg.Register("doThing", capability{Name: "doThing", Value: 2})
		assert.True(t, errors.IsErrorCode(err, errors.ErrAlreadyExists))

		got, err := reg.Get("doThing")
		require.NoError(t, err)
		assert.Equal(t, 1, got.Value)
	})
}

func TestPut(t *testing.T) {
	reg := New[capability]()

	require.NoError(t, reg.Put("doThing", capability{Value: 1}))
	require.NoError(t, reg.Put("doThing", capability{Value: 2}))

	got, ok := reg.Lookup("doThing")
	assert.True(t, ok)
	assert.Equal(t, 2, got.Value)
	assert.Equal(t, 1, reg.Count())

	assert.True(t, errors.IsErrorCode(reg.Put("", capability{}), errors.ErrInvalidInput))
}

func TestGetAndLookup(t *testing.T) {
	reg := New[capability]()
	_ = reg.Register("present", capability{Value: 7})

	got, err := reg.Get("present")
	require.NoError(t, err)
	assert.Equal(t, 7, got.Value)

	_, err = reg.Get("absent")
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))

	_, ok := reg.Lookup("absent")
	assert.False(t, ok)
}

func TestRemoveList(t *testing.T) {
	reg := New[capability]()
	for _, name := range []string{"b", "c", "a"} {
		_ = reg.Register(name, capability{Name: name})
	}

	assert.Equal(t, []string{"a", "b", "c"}, reg.List())

	require.NoError(t, reg.Remove("b"))
	assert.False(t, reg.Has("b"))
	assert.True(t, errors.IsErrorCode(reg.Remove("b"), errors.ErrNotFound))
	assert.Equal(t, []string{"a", "c"}, reg.List())
	assert.Equal(t, 2, reg.Count())
}

func TestConcurrency(t *testing.T) {
	reg := New[capability]()
	const goroutines = 10
	const itemsPerGoroutine = 100

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for g := 0; g < goroutines; g++ {
		go func(id int) {
			defer wg.Done()
			for i := 0; i < itemsPerGoroutine; i++ {
				_ = reg.Put(fmt.Sprintf("g%d_item%d", id, i), capability{Value: i})
			}
		}(g)
	}
	wg.Wait()

	assert.Equal(t, goroutines*itemsPerGoroutine, reg.Count())
}

func TestMustRegister(t *testing.T) {
	reg := New[capability]()

	assert.NotPanics(t, func() { MustRegister(reg, "item1", capability{}) })
	assert.Panics(t, func() { MustRegister(reg, "item1", capability{}) })
}
