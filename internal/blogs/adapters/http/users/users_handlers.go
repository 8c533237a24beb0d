// Package users содержит HTTP обработчики регистрации и сессий.
package users

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"bloglist/internal/blogs/adapters/http/dto"
	"bloglist/internal/blogs/adapters/http/middleware"
	"bloglist/internal/blogs/adapters/http/response"
	"bloglist/internal/blogs/ports/api"
	"bloglist/pkg/logger"
)

// Сообщения для клиента и журнала.
const (
	MessageLoginSuccessful = "Login successful"
	MessageLoggedOut       = "Logged out"

	LogHandlerRegister = "users handler: register"
	LogHandlerLogin    = "users handler: login"
	LogHandlerLogout   = "users handler: logout"
	LogHandlerProfile  = "users handler: profile"
)

// LoggedInBanner возвращает баннер "<name> logged in".
func LoggedInBanner(name string) string {
	return fmt.Sprintf("%s logged in", name)
}

// Handler обслуживает пользователей и сессии.
type Handler struct {
	auth  api.AuthUseCase
	users api.UserUseCase
}

// NewHandler создает обработчик пользователей.
func NewHandler(auth api.AuthUseCase, users api.UserUseCase) *Handler {
	return &Handler{auth: auth, users: users}
}

// Register обрабатывает POST /users.
func (h *Handler) Register(c fiber.Ctx) error {
	requestCtx := c.Context()
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerRegister)

	var req dto.RegisterRequest
	if err := c.Bind().JSON(&req); err != nil {
		log.Debug(requestCtx, response.ErrorInvalidRequest, zap.Error(err))
		return response.Send(c, fiber.StatusBadRequest, response.ErrorInvalidRequest)
	}

	user, err := h.auth.Register(requestCtx, req.Name, req.Username, req.Password)
	if err != nil {
		return response.Error(c, err)
	}

	return response.JSON(c, fiber.StatusCreated, dto.NewUserResponse(user))
}

// Login обрабатывает POST /login.
func (h *Handler) Login(c fiber.Ctx) error {
	requestCtx := c.Context()
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerLogin)

	var req dto.LoginRequest
	if err := c.Bind().JSON(&req); err != nil {
		log.Debug(requestCtx, response.ErrorInvalidRequest, zap.Error(err))
		return response.Send(c, fiber.StatusBadRequest, response.ErrorInvalidRequest)
	}

	session, err := h.auth.Login(requestCtx, req.Username, req.Password)
	if err != nil {
		return response.Error(c, err)
	}

	return response.JSON(c, fiber.StatusOK, dto.LoginResponse{
		Token:    session.Token,
		Username: session.Username,
		Name:     session.Name,
		Message:  MessageLoginSuccessful,
		Banner:   LoggedInBanner(session.Name),
	})
}

// Logout обрабатывает POST /logout.
func (h *Handler) Logout(c fiber.Ctx) error {
	requestCtx := c.Context()
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerLogout)

	if err := h.auth.Logout(requestCtx, middleware.Session(c)); err != nil {
		return response.Error(c, err)
	}

	return response.JSON(c, fiber.StatusOK, dto.MessageResponse{Message: MessageLoggedOut})
}

// Profile обрабатывает GET /me.
func (h *Handler) Profile(c fiber.Ctx) error {
	requestCtx := c.Context()
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerProfile)

	user, err := h.users.GetUserProfile(requestCtx, middleware.Session(c))
	if err != nil {
		return response.Error(c, err)
	}

	return response.JSON(c, fiber.StatusOK, dto.ProfileResponse{
		ID:       user.ID,
		Name:     user.Name,
		Username: user.Username,
		Banner:   LoggedInBanner(user.Name),
	})
}
