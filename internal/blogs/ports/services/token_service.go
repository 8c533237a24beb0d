package services

import (
	"context"

	"bloglist/internal/blogs/domain/services"
)

// TokenService выпускает и проверяет сессионные JWT.
type TokenService interface {
	GenerateToken(ctx context.Context, userID, username, name string) (string, *services.JWTClaims, error)

	ValidateToken(ctx context.Context, token string) (*services.JWTClaims, error)
}
