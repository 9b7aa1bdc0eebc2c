package utils_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio/src/utils"
)

func TestKeyedCache(t *testing.T) {
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("should return a fresh value within the TTL", func(t *testing.T) {
		now := base
		cache := utils.NewKeyedCache[float64](5 * time.Minute).WithClock(func() time.Time { return now })

		cache.Set("AAPL", 150.25)
		now = now.Add(4 * time.Minute)

		value, fresh, found := cache.Get("AAPL")
		require.True(t, found)
		assert.True(t, fresh)
		assert.Equal(t, 150.25, value)
	})

	t.Run("should keep an expired value readable as stale", func(t *testing.T) {
		now := base
		cache := utils.NewKeyedCache[float64](5 * time.Minute).WithClock(func() time.Time { return now })

		cache.Set("AAPL", 150.25)
		now = now.Add(6 * time.Minute)

		value, fresh, found := cache.Get("AAPL")
		require.True(t, found)
		assert.False(t, fresh)
		assert.Equal(t, 150.25, value)
	})

	t.Run("should report a miss for an unknown key", func(t *testing.T) {
		cache := utils.NewKeyedCache[float64](5 * time.Minute)

		_, fresh, found := cache.Get("MSFT")
		assert.False(t, found)
		assert.False(t, fresh)
	})

	t.Run("should overwrite in place and restamp the entry", func(t *testing.T) {
		now := base
		cache := utils.NewKeyedCache[float64](5 * time.Minute).WithClock(func() time.Time { return now })

		cache.Set("AAPL", 150.25)
		now = now.Add(10 * time.Minute)
		cache.Set("AAPL", 160.50)

		value, fresh, found := cache.Get("AAPL")
		require.True(t, found)
		assert.True(t, fresh)
		assert.Equal(t, 160.50, value)
	})

	t.Run("should snapshot all entries with their timestamps", func(t *testing.T) {
		now := base
		cache := utils.NewKeyedCache[float64](5 * time.Minute).WithClock(func() time.Time { return now })

		cache.Set("AAPL", 150.25)
		now = now.Add(10 * time.Minute)
		cache.Set("MSFT", 320.10)

		snapshot := cache.Snapshot()
		require.Len(t, snapshot, 2)
		assert.Equal(t, 150.25, snapshot["AAPL"].Value)
		assert.Equal(t, 320.10, snapshot["MSFT"].Value)
		assert.False(t, cache.Fresh(snapshot["AAPL"].CachedAt))
		assert.True(t, cache.Fresh(snapshot["MSFT"].CachedAt))
	})
}
