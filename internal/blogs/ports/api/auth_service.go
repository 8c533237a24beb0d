// Package api определяет входные порты сервиса блогов.
package api

import (
	"context"

	"bloglist/internal/blogs/domain/entities"
)

// AuthUseCase определяет операции регистрации и управления сессиями.
type AuthUseCase interface {
	Register(ctx context.Context, name, username, password string) (*entities.User, error)

	Login(ctx context.Context, username, password string) (*entities.Session, error)

	Authenticate(ctx context.Context, token string) (*entities.Session, error)

	Logout(ctx context.Context, session *entities.Session) error
}
