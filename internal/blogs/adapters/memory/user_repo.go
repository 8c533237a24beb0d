// Package memory содержит потокобезопасные in-memory реализации репозиториев.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"bloglist/internal/blogs/domain/entities"
	"bloglist/internal/blogs/domain/services"
	"bloglist/internal/blogs/ports/repositories"
)

// UserRepository хранит пользователей в памяти процесса.
type UserRepository struct {
	mu         sync.RWMutex
	byID       map[string]*entities.User
	byUsername map[string]string
}

// NewUserRepository создает пустой репозиторий пользователей.
func NewUserRepository() repositories.UserRepository {
	return &UserRepository{
		byID:       make(map[string]*entities.User),
		byUsername: make(map[string]string),
	}
}

func cloneUser(u *entities.User) *entities.User {
	c := *u
	return &c
}

// Create сохраняет пользователя. Проверка уникальности и вставка выполняются под одной блокировкой.
func (r *UserRepository) Create(_ context.Context, user *entities.User) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byUsername[user.Username]; exists {
		return nil, services.ErrUsernameAlreadyExists
	}

	created := cloneUser(user)
	created.ID = uuid.NewString()
	created.CreatedAt = time.Now().UTC()

	r.byID[created.ID] = created
	r.byUsername[created.Username] = created.ID

	return cloneUser(created), nil
}

// FindByID находит пользователя по ID.
func (r *UserRepository) FindByID(_ context.Context, id string) (*entities.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, entities.ErrUserNotFound
	}
	return cloneUser(user), nil
}

// FindByUsername находит пользователя по username с учетом регистра.
func (r *UserRepository) FindByUsername(_ context.Context, username string) (*entities.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byUsername[username]
	if !ok {
		return nil, entities.ErrUserNotFound
	}
	return cloneUser(r.byID[id]), nil
}

// DeleteAll очищает репозиторий.
func (r *UserRepository) DeleteAll(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byID = make(map[string]*entities.User)
	r.byUsername = make(map[string]string)
	return nil
}
