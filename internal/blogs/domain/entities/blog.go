package entities

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// MaxLikes - верхняя граница счетчика лайков, совпадает с INTEGER в Postgres.
const MaxLikes = math.MaxInt32

// Blog - запись блога. CreatorID не меняется после создания.
type Blog struct {
	ID        string
	Title     string
	Author    string
	URL       string
	Likes     int
	CreatorID string
	CreatedAt time.Time
	// Seq - монотонный номер вставки, используется для детерминированного порядка.
	Seq int64
}

// NewBlog проверяет поля и создает блог без идентификатора.
func NewBlog(creatorID, title, author, url, likes string) (*Blog, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}

	count, err := ParseLikes(likes)
	if err != nil {
		return nil, err
	}

	return &Blog{
		Title:     title,
		Author:    strings.TrimSpace(author),
		URL:       strings.TrimSpace(url),
		Likes:     count,
		CreatorID: creatorID,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// ParseLikes разбирает количество лайков: пустая строка дает 0,
// иначе ожидается десятичное целое от 0 до MaxLikes.
func ParseLikes(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 || n > MaxLikes {
		return 0, ErrInvalidLikes
	}
	return n, nil
}

// Clone возвращает независимую копию блога.
func (b *Blog) Clone() *Blog {
	if b == nil {
		return nil
	}
	c := *b
	return &c
}
