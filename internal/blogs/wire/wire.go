// Package wire собирает зависимости сервиса блогов по конфигурации.
package wire

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	blogcache "bloglist/internal/blogs/adapters/cache"
	"bloglist/internal/blogs/adapters/memory"
	"bloglist/internal/blogs/adapters/postgres"
	"bloglist/internal/blogs/adapters/services"
	"bloglist/internal/blogs/app"
	"bloglist/internal/blogs/config"
	"bloglist/internal/blogs/db"
	"bloglist/internal/blogs/ports/api"
	"bloglist/internal/blogs/ports/cache"
	"bloglist/internal/blogs/ports/repositories"
	"bloglist/internal/blogs/resilience"
	"bloglist/pkg/logger"
	"bloglist/pkg/shutdown"
)

// Сообщения журнала.
const (
	LogInitStorage = "initializing storage"
	LogInitCache   = "initializing cache"
	LogClosing     = "closing resource"

	ErrInitStorage = "failed to initialize storage"
	ErrInitCache   = "failed to initialize cache"

	cacheBreakerName = "blogs-cache"
)

// Repositories - выбранные реализации хранилища.
type Repositories struct {
	Users repositories.UserRepository
	Blogs repositories.BlogRepository
}

// Components - собранный граф зависимостей.
type Components struct {
	Repos   Repositories
	Cache   cache.Cache
	Auth    api.AuthUseCase
	Users   api.UserUseCase
	Blogs   api.BlogUseCase
	Testing api.TestingUseCase

	closers []shutdown.Hook
}

// Close освобождает ресурсы в обратном порядке создания.
func (c *Components) Close(ctx context.Context) error {
	var firstErr error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// NewRepositories открывает хранилище, выбранное в cfg.Storage.Driver.
// Второе значение закрывает соединение, если оно было открыто.
func NewRepositories(ctx context.Context, cfg *config.Config) (Repositories, shutdown.Hook, error) {
	log := logger.Log(ctx)
	log.Info(ctx, LogInitStorage, zap.String("driver", cfg.Storage.Driver))

	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		database, err := db.New(ctx, &cfg.Postgres)
		if err != nil {
			log.Error(ctx, ErrInitStorage, zap.Error(err))
			return Repositories{}, nil, fmt.Errorf("%s: %w", ErrInitStorage, err)
		}
		factory := postgres.NewRepositoryFactory(database.Pool())
		return Repositories{
			Users: factory.UserRepository(),
			Blogs: factory.BlogRepository(),
		}, database.Close, nil
	case config.DriverMemory:
		return Repositories{
			Users: memory.NewUserRepository(),
			Blogs: memory.NewBlogRepository(),
		}, nil, nil
	default:
		return Repositories{}, nil, fmt.Errorf("%s: %w", ErrInitStorage, config.ErrUnknownDriver)
	}
}

// NewCache открывает кэш, выбранный в cfg.Storage.Cache, за автоматическим выключателем.
func NewCache(ctx context.Context, cfg *config.Config) (cache.Cache, error) {
	log := logger.Log(ctx)
	log.Info(ctx, LogInitCache, zap.String("driver", cfg.Storage.Cache))

	var inner cache.Cache
	switch cfg.Storage.Cache {
	case config.DriverRedis:
		redisCache, err := blogcache.NewRedisCache(ctx, &cfg.Redis)
		if err != nil {
			log.Error(ctx, ErrInitCache, zap.Error(err))
			return nil, fmt.Errorf("%s: %w", ErrInitCache, err)
		}
		inner = redisCache
	case config.DriverMemory:
		inner = blogcache.NewMemoryCache(cfg.Redis.ListTTL)
	default:
		return nil, fmt.Errorf("%s: %w", ErrInitCache, config.ErrUnknownDriver)
	}

	breaker := resilience.NewCircuitBreaker(cacheBreakerName, resilience.CircuitBreakerConfig{
		ErrorThreshold:   cfg.Redis.BreakerErrors,
		Timeout:          cfg.Redis.BreakerTimeout,
		SuccessThreshold: cfg.Redis.BreakerProbes,
	})
	return blogcache.NewResilientCache(inner, breaker), nil
}

// Build собирает хранилище, кэш и сценарии использования.
func Build(ctx context.Context, cfg *config.Config) (*Components, error) {
	repos, closeRepos, err := NewRepositories(ctx, cfg)
	if err != nil {
		return nil, err
	}

	c := &Components{Repos: repos}
	if closeRepos != nil {
		c.closers = append(c.closers, closeRepos)
	}

	listCache, err := NewCache(ctx, cfg)
	if err != nil {
		_ = c.Close(ctx)
		return nil, err
	}
	c.Cache = listCache
	c.closers = append(c.closers, func(ctx context.Context) error {
		logger.Log(ctx).Info(ctx, LogClosing, zap.String("resource", "cache"))
		return listCache.Close()
	})

	factory := services.NewServiceFactory(cfg.JWT.SecretKey, cfg.JWT.GetTokenTTL(), cfg.JWT.BCryptCost)

	c.Auth = app.NewAuthUseCase(repos.Users, factory.PasswordService(), factory.TokenService(), listCache)
	c.Users = app.NewUserUseCase(repos.Users)
	c.Blogs = app.NewBlogUseCase(repos.Blogs, repos.Users, listCache, cfg.Redis.ListTTL)
	if cfg.Testing.Enabled {
		c.Testing = app.NewTestingUseCase(repos.Blogs, repos.Users, listCache)
	}

	return c, nil
}
