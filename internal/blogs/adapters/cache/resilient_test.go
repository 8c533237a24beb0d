package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bloglist/internal/blogs/adapters/cache"
	"bloglist/internal/blogs/resilience"
)

func TestResilientCache(t *testing.T) {
	ctx := context.Background()

	t.Run("passes calls through", func(t *testing.T) {
		breaker := resilience.NewCircuitBreaker("cache", resilience.DefaultCircuitBreakerConfig())
		c := cache.NewResilientCache(cache.NewMemoryCache(0), breaker)

		require.NoError(t, c.Set(ctx, "key", "value", 0))
		value, err := c.Get(ctx, "key")
		require.NoError(t, err)
		assert.Equal(t, "value", value)

		n, err := c.Incr(ctx, "gen")
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		require.NoError(t, c.Delete(ctx, "key"))
		require.NoError(t, c.Close())
	})

	t.Run("opens after redis failures", func(t *testing.T) {
		s := mockRedisServer(t)
		inner, err := cache.NewRedisCache(ctx, redisConfig(t, s.Addr()))
		require.NoError(t, err)
		t.Cleanup(func() { _ = inner.Close() })

		breaker := resilience.NewCircuitBreaker("cache", resilience.CircuitBreakerConfig{
			ErrorThreshold:   2,
			Timeout:          time.Hour,
			SuccessThreshold: 1,
		})
		c := cache.NewResilientCache(inner, breaker)

		s.Close()

		for range 2 {
			_, err := c.Get(ctx, "key")
			require.Error(t, err)
		}

		_, err = c.Get(ctx, "key")
		require.ErrorIs(t, err, resilience.ErrCircuitOpen)
		assert.Equal(t, resilience.StateOpen, breaker.GetState())
	})
}
