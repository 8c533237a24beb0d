// Package response отображает ошибки домена в HTTP ответы.
package response

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"bloglist/internal/blogs/adapters/http/dto"
	"bloglist/internal/blogs/domain/entities"
	"bloglist/internal/blogs/domain/services"
	"bloglist/pkg/logger"
)

// Сообщения для клиентских ошибок без доменной причины.
const (
	ErrorInvalidRequest = "invalid request body"
	ErrorInternal       = "internal server error"
	ErrorRouteNotFound  = "route not found"
	ErrorUnauthorized   = "token missing or invalid"
)

// Status возвращает HTTP статус для ошибки домена.
func Status(err error) int {
	switch {
	case errors.Is(err, entities.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrUnauthenticated):
		return fiber.StatusUnauthorized
	case errors.Is(err, entities.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, entities.ErrBlogNotFound),
		errors.Is(err, entities.ErrUserNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrUsernameAlreadyExists):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// Message возвращает текст ошибки для клиента. Внутренние детали не раскрываются.
func Message(err error) string {
	switch {
	case errors.Is(err, entities.ErrValidation):
		return validationMessage(err)
	case errors.Is(err, services.ErrInvalidCredentials):
		return services.ErrInvalidCredentials.Error()
	case errors.Is(err, services.ErrUnauthenticated):
		return ErrorUnauthorized
	case errors.Is(err, entities.ErrForbidden):
		return entities.ErrForbidden.Error()
	case errors.Is(err, entities.ErrBlogNotFound):
		return entities.ErrBlogNotFound.Error()
	case errors.Is(err, entities.ErrUserNotFound):
		return entities.ErrUserNotFound.Error()
	case errors.Is(err, services.ErrUsernameAlreadyExists):
		return services.ErrUsernameAlreadyExists.Error()
	default:
		return ErrorInternal
	}
}

var validationErrors = []error{
	entities.ErrUsernameTooShort,
	entities.ErrPasswordTooShort,
	entities.ErrPasswordTooLong,
	entities.ErrEmptyTitle,
	entities.ErrInvalidLikes,
	entities.ErrLikesLimit,
	entities.ErrEmptyBlogID,
}

func validationMessage(err error) string {
	for _, known := range validationErrors {
		if errors.Is(err, known) {
			return known.Error()
		}
	}
	return entities.ErrValidation.Error()
}

// Error пишет ответ {"error": ...} для ошибки домена.
func Error(c fiber.Ctx, err error) error {
	status := Status(err)
	if status == fiber.StatusInternalServerError {
		logger.Log(c.Context()).Error(c.Context(), ErrorInternal, zap.Error(err))
	}
	return Send(c, status, Message(err))
}

// Send пишет ответ с ошибкой и заданным статусом.
func Send(c fiber.Ctx, status int, message string) error {
	if err := c.Status(status).JSON(dto.ErrorResponse{Error: message}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// JSON пишет успешный ответ.
func JSON(c fiber.Ctx, status int, body any) error {
	if err := c.Status(status).JSON(body); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// ErrorHandler - обработчик ошибок приложения fiber для ошибок вне обработчиков.
func ErrorHandler(c fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		message := fiberErr.Message
		switch fiberErr.Code {
		case fiber.StatusNotFound:
			message = ErrorRouteNotFound
		case fiber.StatusInternalServerError:
			message = ErrorInternal
		}
		return Send(c, fiberErr.Code, message)
	}
	return Error(c, err)
}
