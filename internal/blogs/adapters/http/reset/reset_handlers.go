// Package reset содержит служебный маршрут сброса состояния для e2e тестов.
package reset

import (
	"github.com/gofiber/fiber/v3"

	"bloglist/internal/blogs/adapters/http/response"
	"bloglist/internal/blogs/ports/api"
)

// Handler сбрасывает хранилище.
type Handler struct {
	reset api.TestingUseCase
}

// NewHandler создает обработчик сброса.
func NewHandler(reset api.TestingUseCase) *Handler {
	return &Handler{reset: reset}
}

// Reset обрабатывает POST /testing/reset.
func (h *Handler) Reset(c fiber.Ctx) error {
	if err := h.reset.Reset(c.Context()); err != nil {
		return response.Error(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
