package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"bloglist/internal/blogs/domain/entities"
	"bloglist/internal/blogs/ports/repositories"
	"bloglist/pkg/logger"
)

const blogColumns = `id, seq, title, author, url, likes, user_id, created_at`

// BlogRepository реализует repositories.BlogRepository для Postgres.
type BlogRepository struct {
	pool PgxPoolInterface
}

// NewBlogRepository создает репозиторий блогов.
func NewBlogRepository(pool PgxPoolInterface) repositories.BlogRepository {
	return &BlogRepository{pool: pool}
}

func scanBlog(row pgx.Row) (*entities.Blog, error) {
	var blog entities.Blog
	err := row.Scan(
		&blog.ID,
		&blog.Seq,
		&blog.Title,
		&blog.Author,
		&blog.URL,
		&blog.Likes,
		&blog.CreatorID,
		&blog.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &blog, nil
}

// validID отсекает строки, которые Postgres не примет как uuid.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// Create сохраняет блог и возвращает его с присвоенными id и seq.
func (r *BlogRepository) Create(ctx context.Context, blog *entities.Blog) (*entities.Blog, error) {
	log := logger.Log(ctx).With(zap.String("method", "BlogRepository.Create"))
	log.Debug(ctx, "creating blog", zap.String("userID", blog.CreatorID))

	query := `
        INSERT INTO blogs (title, author, url, likes, user_id)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING ` + blogColumns

	created, err := scanBlog(r.pool.QueryRow(ctx, query,
		blog.Title, blog.Author, blog.URL, blog.Likes, blog.CreatorID))
	if err != nil {
		if hasCode(err, pgNumericOutOfRange) {
			return nil, entities.ErrInvalidLikes
		}
		log.Error(ctx, "failed to create blog", zap.Error(err))
		return nil, fmt.Errorf("failed to create blog: %w", err)
	}

	log.Debug(ctx, "blog created", zap.String("blogID", created.ID))
	return created, nil
}

// GetByID получает блог по ID.
func (r *BlogRepository) GetByID(ctx context.Context, id string) (*entities.Blog, error) {
	log := logger.Log(ctx).With(zap.String("method", "BlogRepository.GetByID"))

	if !validID(id) {
		return nil, entities.ErrBlogNotFound
	}

	blog, err := scanBlog(r.pool.QueryRow(ctx, `SELECT `+blogColumns+` FROM blogs WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "blog not found", zap.String("blogID", id))
			return nil, entities.ErrBlogNotFound
		}
		log.Error(ctx, "failed to get blog", zap.Error(err))
		return nil, fmt.Errorf("failed to get blog: %w", err)
	}

	return blog, nil
}

// List возвращает все блоги в порядке вставки.
func (r *BlogRepository) List(ctx context.Context) ([]*entities.Blog, error) {
	log := logger.Log(ctx).With(zap.String("method", "BlogRepository.List"))

	rows, err := r.pool.Query(ctx, `SELECT `+blogColumns+` FROM blogs ORDER BY seq`)
	if err != nil {
		log.Error(ctx, "failed to list blogs", zap.Error(err))
		return nil, fmt.Errorf("failed to list blogs: %w", err)
	}
	defer rows.Close()

	blogs := make([]*entities.Blog, 0)
	for rows.Next() {
		blog, err := scanBlog(rows)
		if err != nil {
			log.Error(ctx, "failed to scan blog", zap.Error(err))
			return nil, fmt.Errorf("failed to scan blog: %w", err)
		}
		blogs = append(blogs, blog)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return blogs, nil
}

// IncrementLikes атомарно увеличивает счетчик лайков на единицу.
// Переполнение INTEGER дает ErrLikesLimit, строка при этом не меняется.
func (r *BlogRepository) IncrementLikes(ctx context.Context, id string) (*entities.Blog, error) {
	log := logger.Log(ctx).With(zap.String("method", "BlogRepository.IncrementLikes"))

	if !validID(id) {
		return nil, entities.ErrBlogNotFound
	}

	query := `UPDATE blogs SET likes = likes + 1 WHERE id = $1 RETURNING ` + blogColumns

	blog, err := scanBlog(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrBlogNotFound
		}
		if hasCode(err, pgNumericOutOfRange) {
			log.Debug(ctx, "likes limit reached", zap.String("blogID", id))
			return nil, entities.ErrLikesLimit
		}
		log.Error(ctx, "failed to like blog", zap.Error(err))
		return nil, fmt.Errorf("failed to like blog: %w", err)
	}

	return blog, nil
}

// Delete удаляет блог. Если строка уже удалена, возвращает ErrBlogNotFound.
func (r *BlogRepository) Delete(ctx context.Context, id string) error {
	log := logger.Log(ctx).With(zap.String("method", "BlogRepository.Delete"))

	if !validID(id) {
		return entities.ErrBlogNotFound
	}

	result, err := r.pool.Exec(ctx, `DELETE FROM blogs WHERE id = $1`, id)
	if err != nil {
		log.Error(ctx, "failed to delete blog", zap.Error(err))
		return fmt.Errorf("failed to delete blog: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "blog already deleted", zap.String("blogID", id))
		return entities.ErrBlogNotFound
	}

	return nil
}

// DeleteAll удаляет все блоги.
func (r *BlogRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM blogs`); err != nil {
		logger.Log(ctx).Error(ctx, "failed to delete blogs", zap.Error(err))
		return fmt.Errorf("failed to delete blogs: %w", err)
	}
	return nil
}
