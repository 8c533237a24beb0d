// Package dto описывает тела запросов и ответов HTTP API.
package dto

import (
	"bytes"
	"encoding/json"
	"errors"

	"bloglist/internal/blogs/domain/entities"
)

// RegisterRequest - тело POST /users.
type RegisterRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserResponse - публичное представление пользователя.
type UserResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

// LoginRequest - тело POST /login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse - ответ на успешный вход.
type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Message  string `json:"message"`
	Banner   string `json:"banner"`
}

// ProfileResponse - ответ GET /me.
type ProfileResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Banner   string `json:"banner"`
}

// CreateBlogRequest - тело POST /blogs. Likes принимает число или строку.
type CreateBlogRequest struct {
	Title  string          `json:"title"`
	Author string          `json:"author"`
	URL    string          `json:"url"`
	Likes  json.RawMessage `json:"likes,omitempty"`
}

// LikesText возвращает likes в виде строки для entities.ParseLikes.
// Отсутствующее значение и null дают пустую строку.
func (r *CreateBlogRequest) LikesText() (string, error) {
	raw := bytes.TrimSpace(r.Likes)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", errors.Join(entities.ErrInvalidLikes, err)
		}
		return s, nil
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", errors.Join(entities.ErrInvalidLikes, err)
	}
	return n.String(), nil
}

// BlogResponse - публичное представление блога.
type BlogResponse struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Author  string `json:"author"`
	URL     string `json:"url"`
	Likes   int    `json:"likes"`
	Creator string `json:"creator"`
}

// CreateBlogResponse - ответ на создание блога.
type CreateBlogResponse struct {
	Blog    BlogResponse `json:"blog"`
	Message string       `json:"message"`
}

// MessageResponse - ответ, содержащий только сообщение.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse - тело ответа с ошибкой.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewUserResponse преобразует пользователя в ответ.
func NewUserResponse(u *entities.User) UserResponse {
	return UserResponse{ID: u.ID, Name: u.Name, Username: u.Username}
}

// NewBlogResponse преобразует блог в ответ.
func NewBlogResponse(b *entities.Blog) BlogResponse {
	return BlogResponse{
		ID:      b.ID,
		Title:   b.Title,
		Author:  b.Author,
		URL:     b.URL,
		Likes:   b.Likes,
		Creator: b.CreatorID,
	}
}

// NewBlogListResponse преобразует список блогов, сохраняя порядок.
func NewBlogListResponse(blogs []*entities.Blog) []BlogResponse {
	out := make([]BlogResponse, 0, len(blogs))
	for _, b := range blogs {
		out = append(out, NewBlogResponse(b))
	}
	return out
}
