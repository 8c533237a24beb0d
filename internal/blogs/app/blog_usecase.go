package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"bloglist/internal/blogs/domain/entities"
	"bloglist/internal/blogs/domain/services"
	"bloglist/internal/blogs/ports/api"
	"bloglist/internal/blogs/ports/cache"
	"bloglist/internal/blogs/ports/repositories"
	"bloglist/pkg/logger"
)

const (
	methodCreate      = "Create"
	methodDelete      = "Delete"
	methodLike        = "Like"
	methodOrderedList = "OrderedList"

	msgCreatingBlog     = "creating blog"
	msgBlogCreated      = "blog created"
	msgBlogDeleted      = "blog deleted"
	msgBlogLiked        = "blog liked"
	msgDeleteForbidden  = "delete attempt by non-creator"
	msgOrderedCacheHit  = "ordered list served from cache"
	msgGenerationSeeded = "ordered list generation seeded"
	msgSessionUserGone  = "session user no longer exists"
	msgErrCreateBlog    = "failed to create blog"
	msgErrDeleteBlog    = "failed to delete blog"
	msgErrListBlogs     = "failed to list blogs"
	msgErrLikeBlog      = "failed to like blog"
	msgErrFindBlog      = "failed to find blog"
	msgErrCacheRead     = "ordered list cache read failed"
	msgErrCacheWrite    = "ordered list cache write failed"
	msgErrCacheDecode   = "ordered list cache entry is corrupt"
	msgErrInvalidate    = "ordered list cache invalidation failed, bypassing cache"
	msgErrCheckingOwner = "failed to check session user"

	errCtxCreatingBlog  = "creating blog"
	errCtxDeletingBlog  = "deleting blog"
	errCtxLikingBlog    = "liking blog"
	errCtxFindingBlog   = "finding blog"
	errCtxListingBlogs  = "listing blogs"
	errCtxCheckingOwner = "checking session user"

	orderedGenerationKey = "blogs:ordered:gen"
	orderedListKeyPrefix = "blogs:ordered:v"

	defaultListTTL = 5 * time.Minute
)

// BlogUseCaseImpl реализует api.BlogUseCase.
//
// Упорядоченный список кэшируется под ключом текущего поколения.
// Каждая успешная мутация увеличивает поколение до возврата, поэтому
// последующее чтение того же клиента не видит устаревший список.
type BlogUseCaseImpl struct {
	blogRepo repositories.BlogRepository
	userRepo repositories.UserRepository
	cache    cache.Cache
	listTTL  time.Duration

	// bypassUntil - момент (UnixNano), до которого кэш не читается
	// после неудачной инвалидации.
	bypassUntil atomic.Int64
}

// NewBlogUseCase создает сервис блогов.
func NewBlogUseCase(
	blogRepo repositories.BlogRepository,
	userRepo repositories.UserRepository,
	cache cache.Cache,
	listTTL time.Duration,
) api.BlogUseCase {
	if listTTL <= 0 {
		listTTL = defaultListTTL
	}
	return &BlogUseCaseImpl{
		blogRepo: blogRepo,
		userRepo: userRepo,
		cache:    cache,
		listTTL:  listTTL,
	}
}

// Create создает блог от имени пользователя сессии.
func (b *BlogUseCaseImpl) Create(
	ctx context.Context,
	session *entities.Session,
	title, author, url, likes string,
) (*entities.Blog, error) {
	if session == nil {
		return nil, services.ErrUnauthenticated
	}

	log := logger.Log(ctx).With(zap.String("method", methodCreate), zap.String("userID", session.UserID))
	log.Debug(ctx, msgCreatingBlog)

	if _, err := b.userRepo.FindByID(ctx, session.UserID); err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			log.Debug(ctx, msgSessionUserGone)
			return nil, fmt.Errorf("%s: %w", errCtxCheckingOwner, services.ErrUnauthenticated)
		}
		log.Error(ctx, msgErrCheckingOwner, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCheckingOwner, err)
	}

	blog, err := entities.NewBlog(session.UserID, title, author, url, likes)
	if err != nil {
		return nil, err
	}

	created, err := b.blogRepo.Create(ctx, blog)
	if err != nil {
		log.Error(ctx, msgErrCreateBlog, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreatingBlog, err)
	}

	b.invalidate(ctx)

	log.Info(ctx, msgBlogCreated, zap.String("blogID", created.ID))
	return created, nil
}

// Get возвращает блог по ID.
func (b *BlogUseCaseImpl) Get(ctx context.Context, id string) (*entities.Blog, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, entities.ErrEmptyBlogID
	}

	blog, err := b.blogRepo.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, entities.ErrBlogNotFound) {
			logger.Log(ctx).Error(ctx, msgErrFindBlog, zap.Error(err), zap.String("blogID", id))
		}
		return nil, fmt.Errorf("%s: %w", errCtxFindingBlog, err)
	}
	return blog, nil
}

// List возвращает блоги в порядке вставки.
func (b *BlogUseCaseImpl) List(ctx context.Context) ([]*entities.Blog, error) {
	blogs, err := b.blogRepo.List(ctx)
	if err != nil {
		logger.Log(ctx).Error(ctx, msgErrListBlogs, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxListingBlogs, err)
	}
	return blogs, nil
}

// OrderedList возвращает блоги по убыванию лайков. Ошибки кэша не влияют на результат.
func (b *BlogUseCaseImpl) OrderedList(ctx context.Context) ([]*entities.Blog, error) {
	log := logger.Log(ctx).With(zap.String("method", methodOrderedList))

	if time.Now().UnixNano() < b.bypassUntil.Load() {
		return b.orderedFromRepository(ctx)
	}

	generation, err := b.cache.Get(ctx, orderedGenerationKey)
	if err != nil {
		log.Warn(ctx, msgErrCacheRead, zap.Error(err))
		return b.orderedFromRepository(ctx)
	}

	// Без ключа поколения старые записи списка не читаются: счетчик мог быть вытеснен.
	if generation == "" {
		generation, err = seedGeneration(ctx, b.cache)
		if err != nil {
			log.Warn(ctx, msgErrCacheWrite, zap.Error(err))
			return b.orderedFromRepository(ctx)
		}
		log.Debug(ctx, msgGenerationSeeded, zap.String("generation", generation))
		return b.orderedAndCache(ctx, orderedListKeyPrefix+generation)
	}
	key := orderedListKeyPrefix + generation

	raw, err := b.cache.Get(ctx, key)
	switch {
	case err != nil:
		log.Warn(ctx, msgErrCacheRead, zap.Error(err))
	case raw != "":
		var cached []*entities.Blog
		if err := json.Unmarshal([]byte(raw), &cached); err == nil {
			log.Debug(ctx, msgOrderedCacheHit, zap.String("key", key))
			return cached, nil
		}
		log.Warn(ctx, msgErrCacheDecode, zap.String("key", key))
	}

	return b.orderedAndCache(ctx, key)
}

// orderedAndCache читает список из репозитория и сохраняет его под key.
func (b *BlogUseCaseImpl) orderedAndCache(ctx context.Context, key string) ([]*entities.Blog, error) {
	log := logger.Log(ctx).With(zap.String("method", methodOrderedList))

	ordered, err := b.orderedFromRepository(ctx)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(ordered); err == nil {
		if err := b.cache.Set(ctx, key, string(payload), b.listTTL); err != nil {
			log.Warn(ctx, msgErrCacheWrite, zap.Error(err))
		}
	}

	return ordered, nil
}

func (b *BlogUseCaseImpl) orderedFromRepository(ctx context.Context) ([]*entities.Blog, error) {
	blogs, err := b.List(ctx)
	if err != nil {
		return nil, err
	}
	return OrderByLikes(blogs), nil
}

// Like увеличивает счетчик лайков блога.
func (b *BlogUseCaseImpl) Like(ctx context.Context, session *entities.Session, id string) (*entities.Blog, error) {
	if session == nil {
		return nil, services.ErrUnauthenticated
	}

	log := logger.Log(ctx).With(zap.String("method", methodLike), zap.String("blogID", id))

	blog, err := b.blogRepo.IncrementLikes(ctx, id)
	if err != nil {
		if !errors.Is(err, entities.ErrBlogNotFound) && !errors.Is(err, entities.ErrValidation) {
			log.Error(ctx, msgErrLikeBlog, zap.Error(err))
		}
		return nil, fmt.Errorf("%s: %w", errCtxLikingBlog, err)
	}

	b.invalidate(ctx)

	log.Debug(ctx, msgBlogLiked, zap.Int("likes", blog.Likes))
	return blog, nil
}

// Delete удаляет блог, если пользователь сессии является его создателем.
// Возвращает удаленный блог.
func (b *BlogUseCaseImpl) Delete(ctx context.Context, session *entities.Session, id string) (*entities.Blog, error) {
	if session == nil {
		return nil, services.ErrUnauthenticated
	}

	log := logger.Log(ctx).With(
		zap.String("method", methodDelete),
		zap.String("blogID", id),
		zap.String("userID", session.UserID),
	)

	blog, err := b.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !CanDelete(session, blog) {
		log.Info(ctx, msgDeleteForbidden, zap.String("creatorID", blog.CreatorID))
		return nil, entities.ErrForbidden
	}

	if err := b.blogRepo.Delete(ctx, blog.ID); err != nil {
		if !errors.Is(err, entities.ErrBlogNotFound) {
			log.Error(ctx, msgErrDeleteBlog, zap.Error(err))
		}
		return nil, fmt.Errorf("%s: %w", errCtxDeletingBlog, err)
	}

	b.invalidate(ctx)

	log.Info(ctx, msgBlogDeleted)
	return blog, nil
}

// invalidate переводит кэш упорядоченного списка на новое поколение.
// Если это не удалось, процесс читает список мимо кэша в течение listTTL.
func (b *BlogUseCaseImpl) invalidate(ctx context.Context) {
	if err := bumpGeneration(ctx, b.cache); err != nil {
		logger.Log(ctx).Warn(ctx, msgErrInvalidate, zap.Error(err))
		b.bypassUntil.Store(time.Now().Add(b.listTTL).UnixNano())
	}
}
