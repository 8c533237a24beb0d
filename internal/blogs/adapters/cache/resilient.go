package cache

import (
	"context"
	"time"

	"bloglist/internal/blogs/ports/cache"
	"bloglist/internal/blogs/resilience"
)

// ResilientCache пропускает вызовы к кэшу через Circuit Breaker,
// чтобы недоступный кэш не тормозил каждый запрос.
type ResilientCache struct {
	inner   cache.Cache
	breaker *resilience.CircuitBreaker
}

// NewResilientCache оборачивает кэш Circuit Breaker'ом.
func NewResilientCache(inner cache.Cache, breaker *resilience.CircuitBreaker) cache.Cache {
	return &ResilientCache{inner: inner, breaker: breaker}
}

func (c *ResilientCache) Get(ctx context.Context, key string) (string, error) {
	return resilience.Call(ctx, c.breaker, func() (string, error) {
		return c.inner.Get(ctx, key)
	})
}

func (c *ResilientCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return c.breaker.Execute(ctx, func() error {
		return c.inner.Set(ctx, key, value, ttl)
	})
}

func (c *ResilientCache) Incr(ctx context.Context, key string) (int64, error) {
	return resilience.Call(ctx, c.breaker, func() (int64, error) {
		return c.inner.Incr(ctx, key)
	})
}

func (c *ResilientCache) Delete(ctx context.Context, key string) error {
	return c.breaker.Execute(ctx, func() error {
		return c.inner.Delete(ctx, key)
	})
}

func (c *ResilientCache) Close() error {
	return c.inner.Close()
}
