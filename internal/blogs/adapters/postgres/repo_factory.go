package postgres

import (
	"bloglist/internal/blogs/ports/repositories"
)

// RepositoryFactory создает репозитории поверх общего пула соединений.
type RepositoryFactory struct {
	userRepo repositories.UserRepository
	blogRepo repositories.BlogRepository
}

// NewRepositoryFactory создает фабрику репозиториев.
func NewRepositoryFactory(pool PgxPoolInterface) *RepositoryFactory {
	return &RepositoryFactory{
		userRepo: NewUserRepository(pool),
		blogRepo: NewBlogRepository(pool),
	}
}

// UserRepository возвращает репозиторий пользователей.
func (f *RepositoryFactory) UserRepository() repositories.UserRepository {
	return f.userRepo
}

// BlogRepository возвращает репозиторий блогов.
func (f *RepositoryFactory) BlogRepository() repositories.BlogRepository {
	return f.blogRepo
}
