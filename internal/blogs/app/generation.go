package app

import (
	"context"
	"strconv"
	"sync/atomic"
	"time"

	"bloglist/internal/blogs/ports/cache"
)

var lastGenerationSeed atomic.Int64

// newGenerationSeed возвращает строго возрастающее в пределах процесса значение,
// основанное на времени. Счетчик, пересозданный после вытеснения ключа,
// начинается с него, а не с 1, и не совпадает с прежними поколениями.
func newGenerationSeed() int64 {
	for {
		last := lastGenerationSeed.Load()
		next := max(time.Now().UnixNano(), last+1)
		if lastGenerationSeed.CompareAndSwap(last, next) {
			return next
		}
	}
}

// seedGeneration записывает новое поколение без срока жизни и возвращает его.
func seedGeneration(ctx context.Context, c cache.Cache) (string, error) {
	generation := strconv.FormatInt(newGenerationSeed(), 10)
	if err := c.Set(ctx, orderedGenerationKey, generation, -1); err != nil {
		return "", err
	}
	return generation, nil
}

// bumpGeneration переводит упорядоченный список на следующее поколение.
// Incr, вернувший 1, значит, что ключа не было, и счетчик пересевается.
func bumpGeneration(ctx context.Context, c cache.Cache) error {
	n, err := c.Incr(ctx, orderedGenerationKey)
	if err != nil {
		return err
	}
	if n == 1 {
		_, err = seedGeneration(ctx, c)
	}
	return err
}
