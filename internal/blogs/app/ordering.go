package app

import (
	"cmp"
	"slices"

	"bloglist/internal/blogs/domain/entities"
)

// OrderByLikes возвращает новый срез, отсортированный по убыванию лайков.
// Равные по лайкам блоги сохраняют порядок вставки. Входной срез не меняется.
func OrderByLikes(blogs []*entities.Blog) []*entities.Blog {
	ordered := slices.Clone(blogs)
	slices.SortStableFunc(ordered, func(a, b *entities.Blog) int {
		if c := cmp.Compare(b.Likes, a.Likes); c != 0 {
			return c
		}
		return cmp.Compare(a.Seq, b.Seq)
	})
	return ordered
}
