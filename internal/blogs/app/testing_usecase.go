package app

import (
	"context"
	"fmt"

	"bloglist/internal/blogs/ports/api"
	"bloglist/internal/blogs/ports/cache"
	"bloglist/internal/blogs/ports/repositories"
	"bloglist/pkg/logger"
)

const msgStorageReset = "storage reset"

// TestingUseCaseImpl очищает хранилище между e2e сценариями.
type TestingUseCaseImpl struct {
	blogRepo repositories.BlogRepository
	userRepo repositories.UserRepository
	cache    cache.Cache
}

// NewTestingUseCase создает сервис сброса.
func NewTestingUseCase(
	blogRepo repositories.BlogRepository,
	userRepo repositories.UserRepository,
	cache cache.Cache,
) api.TestingUseCase {
	return &TestingUseCaseImpl{blogRepo: blogRepo, userRepo: userRepo, cache: cache}
}

// Reset удаляет все блоги, всех пользователей и сбрасывает кэш упорядоченного списка.
func (t *TestingUseCaseImpl) Reset(ctx context.Context) error {
	if err := t.blogRepo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("reset blogs: %w", err)
	}
	if err := t.userRepo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("reset users: %w", err)
	}
	if err := bumpGeneration(ctx, t.cache); err != nil {
		return fmt.Errorf("reset ordered list cache: %w", err)
	}

	logger.Log(ctx).Info(ctx, msgStorageReset)
	return nil
}
