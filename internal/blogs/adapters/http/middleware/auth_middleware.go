package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"bloglist/internal/blogs/adapters/http/response"
	"bloglist/internal/blogs/domain/entities"
	"bloglist/internal/blogs/domain/services"
	"bloglist/internal/blogs/ports/api"
	"bloglist/pkg/logger"
)

const (
	bearerPrefix = "Bearer "
	sessionKey   = "session"

	LogAuthRejected = "request rejected by auth middleware"
)

// NewAuthMiddleware требует действительный bearer-токен и кладет сессию в Locals.
func NewAuthMiddleware(auth api.AuthUseCase) fiber.Handler {
	return func(c fiber.Ctx) error {
		requestCtx := c.Context()

		header := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(header, bearerPrefix) {
			logger.Log(requestCtx).Debug(requestCtx, LogAuthRejected, zap.String("reason", "missing bearer token"))
			return response.Error(c, services.ErrUnauthenticated)
		}

		session, err := auth.Authenticate(requestCtx, strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix)))
		if err != nil {
			logger.Log(requestCtx).Debug(requestCtx, LogAuthRejected, zap.Error(err))
			return response.Error(c, err)
		}

		c.Locals(sessionKey, session)
		return c.Next()
	}
}

// Session возвращает сессию, установленную NewAuthMiddleware, или nil.
func Session(c fiber.Ctx) *entities.Session {
	session, _ := c.Locals(sessionKey).(*entities.Session)
	return session
}
