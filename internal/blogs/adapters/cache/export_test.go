package cache

import "time"

// NewMemoryCacheWithClock позволяет тестам управлять временем.
func NewMemoryCacheWithClock(defaultTTL time.Duration, now func() time.Time) *MemoryCache {
	return newMemoryCache(defaultTTL, now)
}
