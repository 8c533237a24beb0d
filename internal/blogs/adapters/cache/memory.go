package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"bloglist/internal/blogs/ports/cache"
)

// ErrNotInteger возвращается Incr для нечислового значения.
var ErrNotInteger = errors.New("value is not an integer")

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// MemoryCache - кэш в памяти процесса с ленивым удалением просроченных ключей.
type MemoryCache struct {
	mu         sync.Mutex
	entries    map[string]memoryEntry
	defaultTTL time.Duration
	now        func() time.Time
}

// NewMemoryCache создает кэш. Нулевой defaultTTL означает хранение без срока.
func NewMemoryCache(defaultTTL time.Duration) cache.Cache {
	return newMemoryCache(defaultTTL, time.Now)
}

func newMemoryCache(defaultTTL time.Duration, now func() time.Time) *MemoryCache {
	return &MemoryCache{
		entries:    make(map[string]memoryEntry),
		defaultTTL: defaultTTL,
		now:        now,
	}
}

// lookup вызывается под c.mu.
func (c *MemoryCache) lookup(key string) (memoryEntry, bool) {
	entry, ok := c.entries[key]
	if !ok {
		return memoryEntry{}, false
	}
	if entry.expired(c.now()) {
		delete(c.entries, key)
		return memoryEntry{}, false
	}
	return entry, true
}

// Get возвращает значение или пустую строку для отсутствующего ключа.
func (c *MemoryCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, _ := c.lookup(key)
	return entry.value, nil
}

// Set сохраняет значение. Нулевой ttl заменяется значением по умолчанию,
// отрицательный сохраняет ключ без срока жизни.
func (c *MemoryCache) Set(_ context.Context, key string, value string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ttl == 0 {
		ttl = c.defaultTTL
	}

	entry := memoryEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = c.now().Add(ttl)
	}
	c.entries[key] = entry
	return nil
}

// Incr увеличивает значение ключа, сохраняя его срок жизни.
func (c *MemoryCache) Incr(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, _ := c.lookup(key)

	var current int64
	if entry.value != "" {
		n, err := strconv.ParseInt(entry.value, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("incr %q: %w", key, ErrNotInteger)
		}
		current = n
	}

	current++
	entry.value = strconv.FormatInt(current, 10)
	c.entries[key] = entry
	return current, nil
}

// Delete удаляет ключ.
func (c *MemoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
	return nil
}

// Close очищает кэш.
func (c *MemoryCache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]memoryEntry)
	return nil
}
