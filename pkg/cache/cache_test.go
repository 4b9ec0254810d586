package cache

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoGet(t *testing.T) {
	t.Run("repeated keys hit the cache", func(t *testing.T) {
		calls := 0
		m, err := New(func(s string) (string, error) {
			calls++
			return s + "!", nil
		}, 8)
		require.NoError(t, err)

		first, err := m.Get("a")
		require.NoError(t, err)
		second, err := m.Get("a")
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, 1, calls, "second call should not re-execute")

		stats := m.Stats()
		assert.Equal(t, 1, stats.Hits)
		assert.Equal(t, 1, stats.Misses)
		assert.Equal(t, 1, stats.Size)
	})

	t.Run("errors are never cached", func(t *testing.T) {
		calls := 0
		boom := errors.New("boom")
		m, err := New(func(string) (string, error) {
			calls++
			return "", boom
		}, 8)
		require.NoError(t, err)

		_, err1 := m.Get("x")
		_, err2 := m.Get("x")
		require.ErrorIs(t, err1, boom)
		require.ErrorIs(t, err2, boom)
		assert.Equal(t, 2, calls, "failing calls must re-execute")
		assert.Equal(t, 0, m.Stats().Size)
	})

	t.Run("capacity bounds the cache with LRU eviction", func(t *testing.T) {
		calls := 0
		m, err := New(func(s string) (string, error) {
			calls++
			return s, nil
		}, 2)
		require.NoError(t, err)

		for _, k := range []string{"a", "b", "c"} {
			_, err := m.Get(k)
			require.NoError(t, err)
		}
		assert.Equal(t, 2, m.Stats().Size)

		// "a" was evicted, so it recomputes.
		_, err = m.Get("a")
		require.NoError(t, err)
		assert.Equal(t, 4, calls)
	})
}

func TestMemoClear(t *testing.T) {
	m, err := New(func(s string) (string, error) { return s, nil }, 8)
	require.NoError(t, err)

	_, _ = m.Get("a")
	_, _ = m.Get("a")
	m.Clear()

	stats := m.Stats()
	assert.Equal(t, 0, stats.Hits)
	assert.Equal(t, 0, stats.Misses)
	assert.Equal(t, 0, stats.Size)
}

func TestDefaultMemos(t *testing.T) {
	t.Run("query memo sanitizes", func(t *testing.T) {
		m := NewQueryMemo()
		got, err := m.Get("  hello  ")
		require.NoError(t, err)
		assert.Equal(t, "hello", got)
		assert.Equal(t, MaxCacheSize, m.Stats().Capacity)
	})

	t.Run("simulation memo uppercases and fails on demand", func(t *testing.T) {
		m := NewSimulationMemo()
		got, err := m.Get("ok")
		require.NoError(t, err)
		assert.Equal(t, "OK", got)

		_, err = m.Get("please fail")
		require.Error(t, err)
	})

	t.Run("keys carry exact argument values", func(t *testing.T) {
		m := NewQueryMemo()
		for i := 0; i < 5; i++ {
			key := fmt.Sprintf("key-%d", i)
			got, err := m.Get(key)
			require.NoError(t, err)
			assert.Equal(t, key, got)
		}
		assert.Equal(t, 5, m.Stats().Size)
	})
}
