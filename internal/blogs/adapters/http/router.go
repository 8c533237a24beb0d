// Package http собирает HTTP сервер сервиса блогов.
package http

import (
	"github.com/gofiber/fiber/v3"

	"bloglist/internal/blogs/adapters/http/blogs"
	"bloglist/internal/blogs/adapters/http/middleware"
	"bloglist/internal/blogs/adapters/http/reset"
	"bloglist/internal/blogs/adapters/http/response"
	"bloglist/internal/blogs/adapters/http/users"
	"bloglist/internal/blogs/config"
	"bloglist/internal/blogs/ports/api"
)

// Services - сценарии использования, которые обслуживает роутер.
// Testing равен nil, если маршрут сброса выключен.
type Services struct {
	Auth    api.AuthUseCase
	Users   api.UserUseCase
	Blogs   api.BlogUseCase
	Testing api.TestingUseCase
}

// NewApp создает приложение fiber с настройками из конфигурации.
func NewApp(cfg *config.HTTPConfig) *fiber.App {
	return fiber.New(fiber.Config{
		AppName:      config.ServiceName,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		BodyLimit:    cfg.BodyLimit,
		ErrorHandler: response.ErrorHandler,
	})
}

// SetupRouter регистрирует middleware и маршруты.
func SetupRouter(app *fiber.App, svc Services) {
	usersHandler := users.NewHandler(svc.Auth, svc.Users)
	blogsHandler := blogs.NewHandler(svc.Blogs)
	requireAuth := middleware.NewAuthMiddleware(svc.Auth)

	for _, h := range middleware.NewRequestIDMiddleware() {
		app.Use(h)
	}
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())

	app.Post("/users", usersHandler.Register)
	app.Post("/login", usersHandler.Login)
	app.Post("/logout", usersHandler.Logout, requireAuth)
	app.Get("/me", usersHandler.Profile, requireAuth)

	blogRoutes := app.Group("/blogs")
	blogRoutes.Get("/", blogsHandler.List)
	blogRoutes.Get("/:id", blogsHandler.Get)
	blogRoutes.Post("/", blogsHandler.Create, requireAuth)
	blogRoutes.Post("/:id/like", blogsHandler.Like, requireAuth)
	blogRoutes.Delete("/:id", blogsHandler.Delete, requireAuth)

	if svc.Testing != nil {
		app.Post("/testing/reset", reset.NewHandler(svc.Testing).Reset)
	}

	app.Use(func(c fiber.Ctx) error {
		return response.Send(c, fiber.StatusNotFound, response.ErrorRouteNotFound)
	})
}
