package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"bloglist/internal/blogs/domain/entities"
	"bloglist/internal/blogs/domain/services"
	"bloglist/internal/blogs/ports/api"
	"bloglist/internal/blogs/ports/repositories"
	"bloglist/pkg/logger"
)

const (
	methodGetUserProfile = "GetUserProfile"

	msgProfileRetrieved   = "user profile retrieved"
	msgErrFindingUserByID = "failed to find user by ID"

	errCtxFetchingProfile = "fetching user profile"
)

// UserUseCaseImpl реализует api.UserUseCase.
type UserUseCaseImpl struct {
	userRepo repositories.UserRepository
}

// NewUserUseCase создает сервис профиля пользователя.
func NewUserUseCase(userRepo repositories.UserRepository) api.UserUseCase {
	return &UserUseCaseImpl{userRepo: userRepo}
}

// GetUserProfile возвращает пользователя текущей сессии.
// Если пользователь удален после выпуска токена, сессия считается недействительной.
func (u *UserUseCaseImpl) GetUserProfile(ctx context.Context, session *entities.Session) (*entities.User, error) {
	if session == nil {
		return nil, services.ErrUnauthenticated
	}

	log := logger.Log(ctx).With(zap.String("method", methodGetUserProfile), zap.String("userID", session.UserID))

	user, err := u.userRepo.FindByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			return nil, fmt.Errorf("%s: %w", errCtxFetchingProfile, services.ErrUnauthenticated)
		}
		log.Error(ctx, msgErrFindingUserByID, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFetchingProfile, err)
	}

	log.Debug(ctx, msgProfileRetrieved)
	return user, nil
}
