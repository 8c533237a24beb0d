// Package blogs содержит HTTP обработчики блогов.
package blogs

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

const (
	paramID = "id"

	LogHandlerCreate = "blogs handler: create"
	LogHandlerDelete = "blogs handler: delete"
)

// SavedMessage возвращает баннер об успешном сохранении блога.
func SavedMessage(title string) string {
	return fmt.Sprintf("Blog '%s' successfully saved", title)
}

// DeletedMessage возвращает баннер об успешном удалении блога.
func DeletedMessage(title string) string {
	return fmt.Sprintf("Blog '%s' successfully deleted", title)
}

// Handler обслуживает блоги.
type Handler struct {
	blogs api.BlogUseCase
}

// NewHandler создает обработчик блогов.
func NewHandler(blogs api.BlogUseCase) *Handler {
	return &Handler{blogs: blogs}
}

// List обрабатывает GET /blogs и возвращает блоги по убыванию лайков.
func (h *Handler) List(c fiber.Ctx) error {
	blogs, err := h.blogs.OrderedList(c.Context())
	if err != nil {
		return response.Error(c, err)
	}
	return response.JSON(c, fiber.StatusOK, dto.NewBlogListResponse(blogs))
}

// Get обрабатывает GET /blogs/:id.
func (h *Handler) Get(c fiber.Ctx) error {
	blog, err := h.blogs.Get(c.Context(), c.Params(paramID))
	if err != nil {
		return response.Error(c, err)
	}
	return response.JSON(c, fiber.StatusOK, dto.NewBlogResponse(blog))
}

// Create обрабатывает POST /blogs.
func (h *Handler) Create(c fiber.Ctx) error {
	requestCtx := c.Context()
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerCreate)

	var req dto.CreateBlogRequest
	if err := c.Bind().JSON(&req); err != nil {
		log.Debug(requestCtx, response.ErrorInvalidRequest, zap.Error(err))
		return response.Send(c, fiber.StatusBadRequest, response.ErrorInvalidRequest)
	}

	likes, err := req.LikesText()
	if err != nil {
		return response.Error(c, err)
	}

	blog, err := h.blogs.Create(requestCtx, middleware.Session(c), req.Title, req.Author, req.URL, likes)
	if err != nil {
		return response.Error(c, err)
	}

	return response.JSON(c, fiber.StatusCreated, dto.CreateBlogResponse{
		Blog:    dto.NewBlogResponse(blog),
		Message: SavedMessage(blog.Title),
	})
}

// Like обрабатывает POST /blogs/:id/like.
func (h *Handler) Like(c fiber.Ctx) error {
	blog, err := h.blogs.Like(c.Context(), middleware.Session(c), c.Params(paramID))
	if err != nil {
		return response.Error(c, err)
	}
	return response.JSON(c, fiber.StatusOK, dto.NewBlogResponse(blog))
}

// Delete обрабатывает DELETE /blogs/:id.
func (h *Handler) Delete(c fiber.Ctx) error {
	requestCtx := c.Context()
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerDelete, zap.String("blogID", c.Params(paramID)))

	blog, err := h.blogs.Delete(requestCtx, middleware.Session(c), c.Params(paramID))
	if err != nil {
		return response.Error(c, err)
	}

	return response.JSON(c, fiber.StatusOK, dto.MessageResponse{Message: DeletedMessage(blog.Title)})
}
