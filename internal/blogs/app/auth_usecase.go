// Package app содержит сценарии использования сервиса блогов.
package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"bloglist/internal/blogs/domain/entities"
	"bloglist/internal/blogs/domain/services"
	"bloglist/internal/blogs/ports/api"
	"bloglist/internal/blogs/ports/cache"
	"bloglist/internal/blogs/ports/repositories"
	svc "bloglist/internal/blogs/ports/services"
	"bloglist/pkg/logger"
)

const (
	methodRegister     = "Register"
	methodLogin        = "Login"
	methodAuthenticate = "Authenticate"
	methodLogout       = "Logout"

	msgStartRegistration   = "starting user registration"
	msgInvalidInput        = "invalid registration input"
	msgUsernameExists      = "username already taken"
	msgUserRegistered      = "user registered successfully"
	msgLoginAttempt        = "login attempt"
	msgLoginNonExistent    = "login attempt with non-existent username"
	msgInvalidPasswordAuth = "invalid password provided"
	msgUserLoggedIn        = "user logged in successfully"
	msgRevokedTokenAttempt = "attempt to use revoked token"
	msgUserLoggedOut       = "user logged out successfully"

	msgErrCheckExistingUser = "failed to check existing user"
	msgErrHashPassword      = "failed to hash password"
	msgErrCreateUser        = "failed to create user"
	msgErrFindingUser       = "error finding user by username"
	msgErrVerifyingPassword = "error verifying password"
	msgErrGenerateToken     = "failed to generate session token"
	msgErrCheckRevocation   = "revocation list unavailable, accepting token: logout is best-effort until the cache recovers"
	msgErrRevokingToken     = "failed to revoke token"
	msgErrPrepareDummyHash  = "failed to prepare dummy password hash"

	errCtxValidatingUsername = "validating username"
	errCtxValidatingPassword = "validating password"
	errCtxCheckingUser       = "checking existing user"
	errCtxUsernameRegistered = "username already registered"
	errCtxHashingPassword    = "hashing password"
	errCtxCreatingUser       = "creating user"
	errCtxFindingUser        = "finding user"
	errCtxVerifyingPassword  = "verifying password"
	errCtxGeneratingToken    = "generating token"
	errCtxValidatingToken    = "validating token"
	errCtxRevokingToken      = "revoking token"

	revokedTokenKeyPrefix = "revoked:"
	revokedTokenMarker    = "1"
	dummyPassword         = "dummy-password-for-timing"
)

// AuthUseCaseImpl реализует api.AuthUseCase.
type AuthUseCaseImpl struct {
	userRepo    repositories.UserRepository
	passwordSvc svc.PasswordService
	tokenSvc    svc.TokenService
	cache       cache.Cache

	dummyHash func() (string, error)
}

// NewAuthUseCase создает сервис аутентификации. Кэш хранит отозванные токены.
func NewAuthUseCase(
	userRepo repositories.UserRepository,
	passwordSvc svc.PasswordService,
	tokenSvc svc.TokenService,
	cache cache.Cache,
) api.AuthUseCase {
	a := &AuthUseCaseImpl{
		userRepo:    userRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
		cache:       cache,
	}
	a.dummyHash = sync.OnceValues(func() (string, error) {
		return passwordSvc.Hash(context.Background(), dummyPassword)
	})
	return a
}

func validateCredentials(username, password string) error {
	if utf8.RuneCountInString(username) < entities.MinUsernameLength {
		return fmt.Errorf("%s: %w", errCtxValidatingUsername, entities.ErrUsernameTooShort)
	}
	if utf8.RuneCountInString(password) < entities.MinPasswordLength {
		return fmt.Errorf("%s: %w", errCtxValidatingPassword, entities.ErrPasswordTooShort)
	}
	if len(password) > entities.MaxPasswordLength {
		return fmt.Errorf("%s: %w", errCtxValidatingPassword, entities.ErrPasswordTooLong)
	}
	return nil
}

// Register создает пользователя. При ошибке состояние хранилища не меняется.
func (a *AuthUseCaseImpl) Register(ctx context.Context, name, username, password string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodRegister), zap.String("username", username))
	log.Debug(ctx, msgStartRegistration)

	if err := validateCredentials(username, password); err != nil {
		log.Debug(ctx, msgInvalidInput, zap.Error(err))
		return nil, err
	}

	existingUser, err := a.userRepo.FindByUsername(ctx, username)
	if err != nil && !errors.Is(err, entities.ErrUserNotFound) {
		log.Error(ctx, msgErrCheckExistingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCheckingUser, err)
	}
	if existingUser != nil {
		log.Debug(ctx, msgUsernameExists)
		return nil, fmt.Errorf("%s: %w", errCtxUsernameRegistered, services.ErrUsernameAlreadyExists)
	}

	hashedPassword, err := a.passwordSvc.Hash(ctx, password)
	if err != nil {
		log.Error(ctx, msgErrHashPassword, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxHashingPassword, err)
	}

	createdUser, err := a.userRepo.Create(ctx, &entities.User{
		Name:         name,
		Username:     username,
		PasswordHash: hashedPassword,
	})
	if err != nil {
		if errors.Is(err, services.ErrUsernameAlreadyExists) {
			log.Debug(ctx, msgUsernameExists)
			return nil, fmt.Errorf("%s: %w", errCtxUsernameRegistered, err)
		}
		log.Error(ctx, msgErrCreateUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreatingUser, err)
	}

	log.Info(ctx, msgUserRegistered, zap.String("userID", createdUser.ID))
	return createdUser, nil
}

// Login проверяет учетные данные и открывает сессию.
// Неизвестный пользователь и неверный пароль дают одну и ту же ошибку.
func (a *AuthUseCaseImpl) Login(ctx context.Context, username, password string) (*entities.Session, error) {
	log := logger.Log(ctx).With(zap.String("method", methodLogin), zap.String("username", username))
	log.Debug(ctx, msgLoginAttempt)

	user, err := a.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			log.Debug(ctx, msgLoginNonExistent)
			a.burnDummyVerify(ctx, password)
			return nil, services.ErrInvalidCredentials
		}
		log.Error(ctx, msgErrFindingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	if password == "" {
		log.Debug(ctx, msgInvalidPasswordAuth, zap.String("userID", user.ID))
		return nil, services.ErrInvalidCredentials
	}

	valid, err := a.passwordSvc.Verify(ctx, password, user.PasswordHash)
	if err != nil {
		log.Error(ctx, msgErrVerifyingPassword, zap.Error(err), zap.String("userID", user.ID))
		return nil, fmt.Errorf("%s: %w", errCtxVerifyingPassword, err)
	}
	if !valid {
		log.Debug(ctx, msgInvalidPasswordAuth, zap.String("userID", user.ID))
		return nil, services.ErrInvalidCredentials
	}

	token, claims, err := a.tokenSvc.GenerateToken(ctx, user.ID, user.Username, user.Name)
	if err != nil {
		log.Error(ctx, msgErrGenerateToken, zap.Error(err), zap.String("userID", user.ID))
		return nil, fmt.Errorf("%s: %w: %w", errCtxGeneratingToken, services.ErrTokenGenerationFailed, err)
	}

	log.Info(ctx, msgUserLoggedIn, zap.String("userID", user.ID))
	return sessionFromClaims(token, claims), nil
}

// burnDummyVerify сравнивает пароль с фиктивным хэшем, чтобы ветка
// неизвестного пользователя выполняла ту же работу, что и проверка пароля.
func (a *AuthUseCaseImpl) burnDummyVerify(ctx context.Context, password string) {
	if password == "" {
		return
	}
	hash, err := a.dummyHash()
	if err != nil {
		logger.Log(ctx).Warn(ctx, msgErrPrepareDummyHash, zap.Error(err))
		return
	}
	_, _ = a.passwordSvc.Verify(ctx, password, hash)
}

// Authenticate восстанавливает сессию из bearer-токена.
func (a *AuthUseCaseImpl) Authenticate(ctx context.Context, token string) (*entities.Session, error) {
	log := logger.Log(ctx).With(zap.String("method", methodAuthenticate))

	if token == "" {
		return nil, services.ErrUnauthenticated
	}

	claims, err := a.tokenSvc.ValidateToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", errCtxValidatingToken, services.ErrUnauthenticated, err)
	}

	revoked, err := a.cache.Get(ctx, revokedTokenKeyPrefix+claims.TokenID)
	switch {
	case err != nil:
		// Пока кэш недоступен, отозванные токены принимаются до истечения срока.
		log.Warn(ctx, msgErrCheckRevocation, zap.Error(err), zap.String("userID", claims.UserID))
	case revoked != "":
		log.Debug(ctx, msgRevokedTokenAttempt, zap.String("userID", claims.UserID))
		return nil, fmt.Errorf("%s: %w: %w", errCtxValidatingToken, services.ErrUnauthenticated, services.ErrRevokedJWTToken)
	}

	return sessionFromClaims(token, claims), nil
}

// Logout отзывает токен сессии до истечения его срока.
func (a *AuthUseCaseImpl) Logout(ctx context.Context, session *entities.Session) error {
	if session == nil {
		return services.ErrUnauthenticated
	}

	log := logger.Log(ctx).With(zap.String("method", methodLogout), zap.String("userID", session.UserID))

	ttl := time.Until(session.ExpiresAt)
	if ttl > 0 {
		if err := a.cache.Set(ctx, revokedTokenKeyPrefix+session.TokenID, revokedTokenMarker, ttl); err != nil {
			log.Error(ctx, msgErrRevokingToken, zap.Error(err))
			return fmt.Errorf("%s: %w", errCtxRevokingToken, err)
		}
	}

	log.Info(ctx, msgUserLoggedOut)
	return nil
}

func sessionFromClaims(token string, claims *services.JWTClaims) *entities.Session {
	return &entities.Session{
		UserID:    claims.UserID,
		Username:  claims.Username,
		Name:      claims.Name,
		TokenID:   claims.TokenID,
		Token:     token,
		IssuedAt:  claims.IssuedAt,
		ExpiresAt: claims.ExpiresAt,
	}
}
