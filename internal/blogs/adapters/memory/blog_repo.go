package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"bloglist/internal/blogs/domain/entities"
	"bloglist/internal/blogs/ports/repositories"
)

// BlogRepository хранит блоги в памяти в порядке вставки.
type BlogRepository struct {
	mu    sync.RWMutex
	blogs []*entities.Blog
	seq   int64
}

// NewBlogRepository создает пустой репозиторий блогов.
func NewBlogRepository() repositories.BlogRepository {
	return &BlogRepository{}
}

// indexOf вызывается под r.mu.
func (r *BlogRepository) indexOf(id string) int {
	return slices.IndexFunc(r.blogs, func(b *entities.Blog) bool { return b.ID == id })
}

// Create присваивает блогу id и номер вставки и сохраняет его.
func (r *BlogRepository) Create(_ context.Context, blog *entities.Blog) (*entities.Blog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	created := blog.Clone()
	created.ID = uuid.NewString()
	created.Seq = r.seq
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}

	r.blogs = append(r.blogs, created)
	return created.Clone(), nil
}

// GetByID получает блог по ID.
func (r *BlogRepository) GetByID(_ context.Context, id string) (*entities.Blog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, entities.ErrBlogNotFound
	}
	return r.blogs[i].Clone(), nil
}

// List возвращает копии всех блогов в порядке вставки.
func (r *BlogRepository) List(_ context.Context) ([]*entities.Blog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entities.Blog, len(r.blogs))
	for i, b := range r.blogs {
		out[i] = b.Clone()
	}
	return out, nil
}

// IncrementLikes увеличивает счетчик лайков на единицу. На MaxLikes возвращает ErrLikesLimit.
func (r *BlogRepository) IncrementLikes(_ context.Context, id string) (*entities.Blog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, entities.ErrBlogNotFound
	}
	if r.blogs[i].Likes >= entities.MaxLikes {
		return nil, entities.ErrLikesLimit
	}
	r.blogs[i].Likes++
	return r.blogs[i].Clone(), nil
}

// Delete удаляет блог. Повторное удаление возвращает ErrBlogNotFound.
func (r *BlogRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return entities.ErrBlogNotFound
	}
	r.blogs = slices.Delete(r.blogs, i, i+1)
	return nil
}

// DeleteAll очищает репозиторий. Счетчик вставок не сбрасывается.
func (r *BlogRepository) DeleteAll(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.blogs = nil
	return nil
}
