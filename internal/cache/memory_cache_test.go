package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	Name string `json:"name"`
}

func TestMemoryCache(t *testing.T) {
	ctx := t.Context()

	t.Run("Success - Set Then Get", func(t *testing.T) {
		// Arrange
		c := NewMemoryCache(time.Hour)

		// Act
		require.NoError(t, c.Set(ctx, "k", entry{Name: "Tent"}, 0))

		var got entry
		found, err := c.Get(ctx, "k", &got)

		// Assert
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "Tent", got.Name)
	})

	t.Run("Success - Miss", func(t *testing.T) {
		c := NewMemoryCache(time.Hour)

		var got entry
		found, err := c.Get(ctx, "missing", &got)

		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("Success - Entry Expires", func(t *testing.T) {
		// Arrange
		now := time.Date(2025, 1, 5, 12, 0, 0, 0, time.UTC)
		c := newMemoryCache(time.Hour, func() time.Time { return now })

		require.NoError(t, c.Set(ctx, "k", entry{Name: "Tent"}, 0))

		// Act
		now = now.Add(time.Hour)

		var got entry
		found, err := c.Get(ctx, "k", &got)

		// Assert
		require.NoError(t, err)
		assert.False(t, found)
		assert.Empty(t, c.entries)
	})

	t.Run("Success - Delete", func(t *testing.T) {
		c := NewMemoryCache(time.Hour)
		require.NoError(t, c.Set(ctx, "k", entry{Name: "Tent"}, time.Minute))

		require.NoError(t, c.Delete(ctx, "k"))

		var got entry
		found, err := c.Get(ctx, "k", &got)
		require.NoError(t, err)
		assert.False(t, found)
		assert.NoError(t, c.Close())
	})

	t.Run("Failure - Unmarshal Error", func(t *testing.T) {
		c := NewMemoryCache(time.Hour)
		require.NoError(t, c.Set(ctx, "k", []int{1, 2}, 0))

		var got entry
		found, err := c.Get(ctx, "k", &got)

		require.Error(t, err)
		assert.False(t, found)
		assert.Contains(t, err.Error(), "failed to unmarshal cache data for key k")
	})

	t.Run("Failure - Marshal Error", func(t *testing.T) {
		c := NewMemoryCache(time.Hour)

		err := c.Set(ctx, "k", make(chan int), 0)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to marshal value for key k")
	})
}
