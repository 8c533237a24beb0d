package api

import (
	"context"

	"bloglist/internal/blogs/domain/entities"
)

// BlogUseCase определяет операции с блогами. Изменяющие операции требуют сессию.
type BlogUseCase interface {
	Create(ctx context.Context, session *entities.Session, title, author, url, likes string) (*entities.Blog, error)

	Get(ctx context.Context, id string) (*entities.Blog, error)

	List(ctx context.Context) ([]*entities.Blog, error)

	OrderedList(ctx context.Context) ([]*entities.Blog, error)

	Like(ctx context.Context, session *entities.Session, id string) (*entities.Blog, error)

	Delete(ctx context.Context, session *entities.Session, id string) (*entities.Blog, error)
}

// TestingUseCase сбрасывает хранилище между e2e сценариями.
type TestingUseCase interface {
	Reset(ctx context.Context) error
}
