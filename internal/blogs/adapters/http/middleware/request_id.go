// Package middleware содержит промежуточное ПО HTTP сервера блогов.
package middleware

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/requestid"

	"bloglist/pkg/logger"
)

// NewRequestIDMiddleware принимает X-Request-ID клиента или выпускает новый
// и кладет его в контекст запроса, чтобы он попадал во все записи журнала.
func NewRequestIDMiddleware() []fiber.Handler {
	return []fiber.Handler{
		requestid.New(requestid.Config{
			Header:    fiber.HeaderXRequestID,
			Generator: logger.GenerateRequestID,
		}),
		func(c fiber.Ctx) error {
			c.SetContext(logger.NewRequestIDContext(c.Context(), requestid.FromContext(c)))
			return c.Next()
		},
	}
}
