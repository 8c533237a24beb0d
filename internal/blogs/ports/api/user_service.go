package api

import (
	"context"

	"bloglist/internal/blogs/domain/entities"
)

// UserUseCase определяет операции с профилем пользователя.
type UserUseCase interface {
	GetUserProfile(ctx context.Context, session *entities.Session) (*entities.User, error)
}
