package repositories

import (
	"context"

	"bloglist/internal/blogs/domain/entities"
)

// BlogRepository хранит блоги. List возвращает записи в порядке вставки.
type BlogRepository interface {
	Create(ctx context.Context, blog *entities.Blog) (*entities.Blog, error)

	GetByID(ctx context.Context, id string) (*entities.Blog, error)

	List(ctx context.Context) ([]*entities.Blog, error)

	IncrementLikes(ctx context.Context, id string) (*entities.Blog, error)

	// Delete возвращает entities.ErrBlogNotFound, если запись уже удалена.
	Delete(ctx context.Context, id string) error

	DeleteAll(ctx context.Context) error
}
