package app_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"bloglist/internal/blogs/app"
	"bloglist/internal/blogs/domain/entities"
	"bloglist/internal/blogs/domain/services"
	"bloglist/pkg/logger"
)

var (
	ErrDatabaseConnection = errors.New("database connection error")
	ErrCacheUnavailable   = errors.New("cache unavailable")
)

type authMocks struct {
	users    *mockUserRepository
	password *mockPasswordService
	tokens   *mockTokenService
	cache    *mockCache
}

func newAuthMocks() *authMocks {
	return &authMocks{
		users:    new(mockUserRepository),
		password: new(mockPasswordService),
		tokens:   new(mockTokenService),
		cache:    new(mockCache),
	}
}

func (m *authMocks) assertExpectations(t *testing.T) {
	t.Helper()
	m.users.AssertExpectations(t)
	m.password.AssertExpectations(t)
	m.tokens.AssertExpectations(t)
	m.cache.AssertExpectations(t)
}

func testClaims() *services.JWTClaims {
	now := time.Now()
	return &services.JWTClaims{
		TokenID:   "jti-1",
		UserID:    "user-1",
		Username:  "sabi",
		Name:      "smart",
		IssuedAt:  now,
		ExpiresAt: now.Add(time.Hour),
	}
}

func TestRegister(t *testing.T) {
	tests := []struct {
		name        string
		username    string
		password    string
		setupMocks  func(m *authMocks)
		expectedErr error
	}{
		{
			name:     "successful registration",
			username: "sabi",
			password: "Rahim",
			setupMocks: func(m *authMocks) {
				m.users.On("FindByUsername", mock.Anything, "sabi").Return(nil, entities.ErrUserNotFound).Once()
				m.password.On("Hash", mock.Anything, "Rahim").Return("hashed", nil).Once()
				m.users.On("Create", mock.Anything, mock.MatchedBy(func(u *entities.User) bool {
					return u.Username == "sabi" && u.Name == "smart" && u.PasswordHash == "hashed"
				})).Return(&entities.User{ID: "user-1", Name: "smart", Username: "sabi"}, nil).Once()
			},
		},
		{
			name:        "username too short",
			username:    "ab",
			password:    "Rahim",
			setupMocks:  func(*authMocks) {},
			expectedErr: entities.ErrUsernameTooShort,
		},
		{
			name:        "password too short",
			username:    "sabi",
			password:    "pw",
			setupMocks:  func(*authMocks) {},
			expectedErr: entities.ErrPasswordTooShort,
		},
		{
			name:        "password longer than bcrypt accepts",
			username:    "sabi",
			password:    strings.Repeat("a", entities.MaxPasswordLength+1),
			setupMocks:  func(*authMocks) {},
			expectedErr: entities.ErrPasswordTooLong,
		},
		{
			name:     "username already taken",
			username: "sabi",
			password: "Rahim",
			setupMocks: func(m *authMocks) {
				m.users.On("FindByUsername", mock.Anything, "sabi").
					Return(&entities.User{ID: "user-0", Username: "sabi"}, nil).Once()
			},
			expectedErr: services.ErrUsernameAlreadyExists,
		},
		{
			name:     "concurrent registration hits unique constraint",
			username: "sabi",
			password: "Rahim",
			setupMocks: func(m *authMocks) {
				m.users.On("FindByUsername", mock.Anything, "sabi").Return(nil, entities.ErrUserNotFound).Once()
				m.password.On("Hash", mock.Anything, "Rahim").Return("hashed", nil).Once()
				m.users.On("Create", mock.Anything, mock.Anything).Return(nil, services.ErrUsernameAlreadyExists).Once()
			},
			expectedErr: services.ErrUsernameAlreadyExists,
		},
		{
			name:     "repository failure",
			username: "sabi",
			password: "Rahim",
			setupMocks: func(m *authMocks) {
				m.users.On("FindByUsername", mock.Anything, "sabi").Return(nil, ErrDatabaseConnection).Once()
			},
			expectedErr: ErrDatabaseConnection,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newAuthMocks()
			tt.setupMocks(m)
			uc := app.NewAuthUseCase(m.users, m.password, m.tokens, m.cache)

			user, err := uc.Register(context.Background(), "smart", tt.username, tt.password)

			if tt.expectedErr != nil {
				require.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "user-1", user.ID)
			}
			m.assertExpectations(t)
		})
	}
}

func TestLogin(t *testing.T) {
	storedUser := &entities.User{ID: "user-1", Name: "smart", Username: "sabi", PasswordHash: "hashed"}

	tests := []struct {
		name        string
		username    string
		password    string
		setupMocks  func(m *authMocks)
		expectedErr error
	}{
		{
			name:     "successful login",
			username: "sabi",
			password: "Rahim",
			setupMocks: func(m *authMocks) {
				m.users.On("FindByUsername", mock.Anything, "sabi").Return(storedUser, nil).Once()
				m.password.On("Verify", mock.Anything, "Rahim", "hashed").Return(true, nil).Once()
				m.tokens.On("GenerateToken", mock.Anything, "user-1", "sabi", "smart").
					Return("token", testClaims(), nil).Once()
			},
		},
		{
			name:     "wrong password",
			username: "sabi",
			password: "wrong",
			setupMocks: func(m *authMocks) {
				m.users.On("FindByUsername", mock.Anything, "sabi").Return(storedUser, nil).Once()
				m.password.On("Verify", mock.Anything, "wrong", "hashed").Return(false, nil).Once()
			},
			expectedErr: services.ErrInvalidCredentials,
		},
		{
			name:     "unknown user still verifies against dummy hash",
			username: "ghost",
			password: "Rahim",
			setupMocks: func(m *authMocks) {
				m.users.On("FindByUsername", mock.Anything, "ghost").Return(nil, entities.ErrUserNotFound).Once()
				m.password.On("Hash", mock.Anything, mock.Anything).Return("dummy", nil).Once()
				m.password.On("Verify", mock.Anything, "Rahim", "dummy").Return(false, nil).Once()
			},
			expectedErr: services.ErrInvalidCredentials,
		},
		{
			name:     "empty password",
			username: "sabi",
			password: "",
			setupMocks: func(m *authMocks) {
				m.users.On("FindByUsername", mock.Anything, "sabi").Return(storedUser, nil).Once()
			},
			expectedErr: services.ErrInvalidCredentials,
		},
		{
			name:     "token generation failure",
			username: "sabi",
			password: "Rahim",
			setupMocks: func(m *authMocks) {
				m.users.On("FindByUsername", mock.Anything, "sabi").Return(storedUser, nil).Once()
				m.password.On("Verify", mock.Anything, "Rahim", "hashed").Return(true, nil).Once()
				m.tokens.On("GenerateToken", mock.Anything, "user-1", "sabi", "smart").
					Return("", nil, services.ErrGeneratingJWTToken).Once()
			},
			expectedErr: services.ErrTokenGenerationFailed,
		},
		{
			name:     "repository failure",
			username: "sabi",
			password: "Rahim",
			setupMocks: func(m *authMocks) {
				m.users.On("FindByUsername", mock.Anything, "sabi").Return(nil, ErrDatabaseConnection).Once()
			},
			expectedErr: ErrDatabaseConnection,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newAuthMocks()
			tt.setupMocks(m)
			uc := app.NewAuthUseCase(m.users, m.password, m.tokens, m.cache)

			session, err := uc.Login(context.Background(), tt.username, tt.password)

			if tt.expectedErr != nil {
				require.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, session)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "token", session.Token)
				assert.Equal(t, "user-1", session.UserID)
				assert.Equal(t, "smart", session.Name)
				assert.Equal(t, "jti-1", session.TokenID)
			}
			m.assertExpectations(t)
		})
	}
}

func TestLogin_SameErrorForUnknownUserAndWrongPassword(t *testing.T) {
	m := newAuthMocks()
	m.users.On("FindByUsername", mock.Anything, "ghost").Return(nil, entities.ErrUserNotFound).Once()
	m.users.On("FindByUsername", mock.Anything, "sabi").
		Return(&entities.User{ID: "user-1", Username: "sabi", PasswordHash: "hashed"}, nil).Once()
	m.password.On("Hash", mock.Anything, mock.Anything).Return("dummy", nil).Once()
	m.password.On("Verify", mock.Anything, mock.Anything, mock.Anything).Return(false, nil)
	uc := app.NewAuthUseCase(m.users, m.password, m.tokens, m.cache)

	_, unknownErr := uc.Login(context.Background(), "ghost", "wrong")
	_, wrongErr := uc.Login(context.Background(), "sabi", "wrong")

	require.Error(t, unknownErr)
	require.Error(t, wrongErr)
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())
	assert.Equal(t, "wrong username or password", unknownErr.Error())
}

func TestAuthenticate(t *testing.T) {
	tests := []struct {
		name        string
		token       string
		setupMocks  func(m *authMocks)
		expectedErr error
	}{
		{
			name:  "valid token",
			token: "token",
			setupMocks: func(m *authMocks) {
				m.tokens.On("ValidateToken", mock.Anything, "token").Return(testClaims(), nil).Once()
				m.cache.On("Get", mock.Anything, "revoked:jti-1").Return("", nil).Once()
			},
		},
		{
			name:        "empty token",
			token:       "",
			setupMocks:  func(*authMocks) {},
			expectedErr: services.ErrUnauthenticated,
		},
		{
			name:  "invalid token",
			token: "garbage",
			setupMocks: func(m *authMocks) {
				m.tokens.On("ValidateToken", mock.Anything, "garbage").Return(nil, services.ErrInvalidJWTToken).Once()
			},
			expectedErr: services.ErrUnauthenticated,
		},
		{
			name:  "revoked token",
			token: "token",
			setupMocks: func(m *authMocks) {
				m.tokens.On("ValidateToken", mock.Anything, "token").Return(testClaims(), nil).Once()
				m.cache.On("Get", mock.Anything, "revoked:jti-1").Return("1", nil).Once()
			},
			expectedErr: services.ErrRevokedJWTToken,
		},
		{
			name:  "revocation check failure accepts token",
			token: "token",
			setupMocks: func(m *authMocks) {
				m.tokens.On("ValidateToken", mock.Anything, "token").Return(testClaims(), nil).Once()
				m.cache.On("Get", mock.Anything, "revoked:jti-1").Return("", ErrCacheUnavailable).Once()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newAuthMocks()
			tt.setupMocks(m)
			uc := app.NewAuthUseCase(m.users, m.password, m.tokens, m.cache)

			session, err := uc.Authenticate(context.Background(), tt.token)

			if tt.expectedErr != nil {
				require.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, session)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "user-1", session.UserID)
				assert.Equal(t, tt.token, session.Token)
			}
			m.assertExpectations(t)
		})
	}
}

func TestAuthenticate_RevocationOutageIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	ctx := logger.NewContext(context.Background(), logger.Wrap(zap.New(core)))

	m := newAuthMocks()
	m.tokens.On("ValidateToken", mock.Anything, "token").Return(testClaims(), nil).Once()
	m.cache.On("Get", mock.Anything, "revoked:jti-1").Return("", ErrCacheUnavailable).Once()
	uc := app.NewAuthUseCase(m.users, m.password, m.tokens, m.cache)

	session, err := uc.Authenticate(ctx, "token")

	require.NoError(t, err)
	require.NotNil(t, session)
	entries := logs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Message, "logout is best-effort")
	assert.Equal(t, "user-1", entries[0].ContextMap()["userID"])
	m.assertExpectations(t)
}

func TestLogout(t *testing.T) {
	t.Run("revokes token until expiry", func(t *testing.T) {
		m := newAuthMocks()
		m.cache.On("Set", mock.Anything, "revoked:jti-1", "1", mock.MatchedBy(func(ttl time.Duration) bool {
			return ttl > 0 && ttl <= time.Hour
		})).Return(nil).Once()
		uc := app.NewAuthUseCase(m.users, m.password, m.tokens, m.cache)

		err := uc.Logout(context.Background(), &entities.Session{
			UserID:    "user-1",
			TokenID:   "jti-1",
			ExpiresAt: time.Now().Add(time.Hour),
		})

		require.NoError(t, err)
		m.assertExpectations(t)
	})

	t.Run("expired session needs no revocation", func(t *testing.T) {
		m := newAuthMocks()
		uc := app.NewAuthUseCase(m.users, m.password, m.tokens, m.cache)

		err := uc.Logout(context.Background(), &entities.Session{
			UserID:    "user-1",
			TokenID:   "jti-1",
			ExpiresAt: time.Now().Add(-time.Minute),
		})

		require.NoError(t, err)
		m.cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("anonymous", func(t *testing.T) {
		m := newAuthMocks()
		uc := app.NewAuthUseCase(m.users, m.password, m.tokens, m.cache)

		require.ErrorIs(t, uc.Logout(context.Background(), nil), services.ErrUnauthenticated)
	})

	t.Run("cache failure", func(t *testing.T) {
		m := newAuthMocks()
		m.cache.On("Set", mock.Anything, "revoked:jti-1", "1", mock.Anything).Return(ErrCacheUnavailable).Once()
		uc := app.NewAuthUseCase(m.users, m.password, m.tokens, m.cache)

		err := uc.Logout(context.Background(), &entities.Session{
			UserID:    "user-1",
			TokenID:   "jti-1",
			ExpiresAt: time.Now().Add(time.Hour),
		})

		require.ErrorIs(t, err, ErrCacheUnavailable)
	})
}

func TestGetUserProfile(t *testing.T) {
	session := &entities.Session{UserID: "user-1", Username: "sabi", Name: "smart"}

	tests := []struct {
		name        string
		session     *entities.Session
		setupMocks  func(users *mockUserRepository)
		expectedErr error
	}{
		{
			name:    "existing user",
			session: session,
			setupMocks: func(users *mockUserRepository) {
				users.On("FindByID", mock.Anything, "user-1").
					Return(&entities.User{ID: "user-1", Name: "smart", Username: "sabi"}, nil).Once()
			},
		},
		{
			name:        "anonymous",
			session:     nil,
			setupMocks:  func(*mockUserRepository) {},
			expectedErr: services.ErrUnauthenticated,
		},
		{
			name:    "user deleted after login",
			session: session,
			setupMocks: func(users *mockUserRepository) {
				users.On("FindByID", mock.Anything, "user-1").Return(nil, entities.ErrUserNotFound).Once()
			},
			expectedErr: services.ErrUnauthenticated,
		},
		{
			name:    "repository failure",
			session: session,
			setupMocks: func(users *mockUserRepository) {
				users.On("FindByID", mock.Anything, "user-1").Return(nil, ErrDatabaseConnection).Once()
			},
			expectedErr: ErrDatabaseConnection,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(mockUserRepository)
			tt.setupMocks(users)
			uc := app.NewUserUseCase(users)

			user, err := uc.GetUserProfile(context.Background(), tt.session)

			if tt.expectedErr != nil {
				require.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "smart", user.Name)
			}
			users.AssertExpectations(t)
		})
	}
}
