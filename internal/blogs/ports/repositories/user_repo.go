// Package repositories определяет порты хранилища.
package repositories

import (
	"context"

	"bloglist/internal/blogs/domain/entities"
)

// UserRepository хранит учетные данные пользователей.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) (*entities.User, error)

	FindByID(ctx context.Context, id string) (*entities.User, error)

	FindByUsername(ctx context.Context, username string) (*entities.User, error)

	DeleteAll(ctx context.Context) error
}
