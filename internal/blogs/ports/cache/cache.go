// Package cache определяет интерфейс кэша.
package cache

import (
	"context"
	"time"
)

// Cache - строковое хранилище ключ-значение с TTL.
// Get возвращает пустую строку без ошибки, если ключа нет.
// Нулевой ttl в Set означает срок по умолчанию, отрицательный - без срока.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)

	Set(ctx context.Context, key string, value string, ttl time.Duration) error

	Incr(ctx context.Context, key string) (int64, error)

	Delete(ctx context.Context, key string) error

	Close() error
}
