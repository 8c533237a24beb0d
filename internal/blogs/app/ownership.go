package app

import "bloglist/internal/blogs/domain/entities"

// CanDelete разрешает удаление только создателю блога.
func CanDelete(session *entities.Session, blog *entities.Blog) bool {
	return session != nil && blog != nil && session.UserID != "" && session.UserID == blog.CreatorID
}
