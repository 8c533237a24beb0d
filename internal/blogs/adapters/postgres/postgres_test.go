package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bloglist/internal/blogs/adapters/postgres"
	"bloglist/internal/blogs/domain/entities"
	"bloglist/internal/blogs/domain/services"
	"bloglist/pkg/logger"
)

const (
	userID  = "6f1c2b8e-9a4d-4c55-8d2e-3b7a1e0f9c11"
	blogID  = "0b3c7d52-1e8f-4a7b-9c6d-5e4f3a2b1c10"
	blogID2 = "a9e8d7c6-b5a4-4938-8271-605f4e3d2c1b"
)

var errDatabaseConnection = errors.New("database connection error")

var (
	userCols = []string{"id", "name", "username", "password_hash", "created_at"}
	blogCols = []string{"id", "seq", "title", "author", "url", "likes", "user_id", "created_at"}
)

func testContext(t *testing.T) context.Context {
	t.Helper()
	log, err := logger.NewLogger(logger.Development, "debug")
	require.NoError(t, err)
	return logger.NewContext(context.Background(), log)
}

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return mock
}

func TestUserRepositoryCreate(t *testing.T) {
	ctx := testContext(t)
	now := time.Now().UTC()

	t.Run("success", func(t *testing.T) {
		mock := newMock(t)
		repo := postgres.NewUserRepository(mock)

		mock.ExpectQuery("INSERT INTO users").
			WithArgs("smart", "sabi", "hash").
			WillReturnRows(pgxmock.NewRows(userCols).AddRow(userID, "smart", "sabi", "hash", now))

		user, err := repo.Create(ctx, &entities.User{Name: "smart", Username: "sabi", PasswordHash: "hash"})
		require.NoError(t, err)
		assert.Equal(t, userID, user.ID)
		assert.Equal(t, "sabi", user.Username)
	})

	t.Run("duplicate username", func(t *testing.T) {
		mock := newMock(t)
		repo := postgres.NewUserRepository(mock)

		mock.ExpectQuery("INSERT INTO users").
			WithArgs("smart", "sabi", "hash").
			WillReturnError(&pgconn.PgError{Code: "23505"})

		user, err := repo.Create(ctx, &entities.User{Name: "smart", Username: "sabi", PasswordHash: "hash"})
		require.ErrorIs(t, err, services.ErrUsernameAlreadyExists)
		assert.Nil(t, user)
	})

	t.Run("database error", func(t *testing.T) {
		mock := newMock(t)
		repo := postgres.NewUserRepository(mock)

		mock.ExpectQuery("INSERT INTO users").
			WithArgs("smart", "sabi", "hash").
			WillReturnError(errDatabaseConnection)

		_, err := repo.Create(ctx, &entities.User{Name: "smart", Username: "sabi", PasswordHash: "hash"})
		require.ErrorIs(t, err, errDatabaseConnection)
	})
}

func TestUserRepositoryFind(t *testing.T) {
	ctx := testContext(t)
	now := time.Now().UTC()

	t.Run("by username", func(t *testing.T) {
		mock := newMock(t)
		repo := postgres.NewUserRepository(mock)

		mock.ExpectQuery("SELECT id, name, username, password_hash, created_at FROM users WHERE username").
			WithArgs("sabi").
			WillReturnRows(pgxmock.NewRows(userCols).AddRow(userID, "smart", "sabi", "hash", now))

		user, err := repo.FindByUsername(ctx, "sabi")
		require.NoError(t, err)
		assert.Equal(t, "smart", user.Name)
	})

	t.Run("by username not found", func(t *testing.T) {
		mock := newMock(t)
		repo := postgres.NewUserRepository(mock)

		mock.ExpectQuery("SELECT id, name, username, password_hash, created_at FROM users WHERE username").
			WithArgs("ghost").
			WillReturnError(pgx.ErrNoRows)

		_, err := repo.FindByUsername(ctx, "ghost")
		require.ErrorIs(t, err, entities.ErrUserNotFound)
	})

	t.Run("by id", func(t *testing.T) {
		mock := newMock(t)
		repo := postgres.NewUserRepository(mock)

		mock.ExpectQuery("SELECT id, name, username, password_hash, created_at FROM users WHERE id").
			WithArgs(userID).
			WillReturnRows(pgxmock.NewRows(userCols).AddRow(userID, "smart", "sabi", "hash", now))

		user, err := repo.FindByID(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, userID, user.ID)
	})

	t.Run("by malformed id skips query", func(t *testing.T) {
		mock := newMock(t)
		repo := postgres.NewUserRepository(mock)

		_, err := repo.FindByID(ctx, "not-a-uuid")
		require.ErrorIs(t, err, entities.ErrUserNotFound)
	})

	t.Run("by id database error", func(t *testing.T) {
		mock := newMock(t)
		repo := postgres.NewUserRepository(mock)

		mock.ExpectQuery("SELECT .* FROM users WHERE id").
			WithArgs(userID).
			WillReturnError(errDatabaseConnection)

		_, err := repo.FindByID(ctx, userID)
		require.ErrorIs(t, err, errDatabaseConnection)
		assert.NotErrorIs(t, err, entities.ErrUserNotFound)
	})
}

func TestUserRepositoryDeleteAll(t *testing.T) {
	ctx := testContext(t)
	mock := newMock(t)
	repo := postgres.NewUserRepository(mock)

	mock.ExpectExec("DELETE FROM users").WillReturnResult(pgxmock.NewResult("DELETE", 3))

	require.NoError(t, repo.DeleteAll(ctx))
}

func TestBlogRepositoryCreate(t *testing.T) {
	ctx := testContext(t)
	now := time.Now().UTC()

	mock := newMock(t)
	repo := postgres.NewBlogRepository(mock)

	mock.ExpectQuery("INSERT INTO blogs").
		WithArgs("Test Blog", "Hasan", "https://example.com", 10, userID).
		WillReturnRows(pgxmock.NewRows(blogCols).
			AddRow(blogID, int64(1), "Test Blog", "Hasan", "https://example.com", 10, userID, now))

	blog, err := repo.Create(ctx, &entities.Blog{
		Title:     "Test Blog",
		Author:    "Hasan",
		URL:       "https://example.com",
		Likes:     10,
		CreatorID: userID,
	})
	require.NoError(t, err)
	assert.Equal(t, blogID, blog.ID)
	assert.Equal(t, int64(1), blog.Seq)
	assert.Equal(t, userID, blog.CreatorID)
}

func TestBlogRepositoryList(t *testing.T) {
	ctx := testContext(t)
	now := time.Now().UTC()

	t.Run("rows in insertion order", func(t *testing.T) {
		mock := newMock(t)
		repo := postgres.NewBlogRepository(mock)

		mock.ExpectQuery("SELECT .* FROM blogs ORDER BY seq").
			WillReturnRows(pgxmock.NewRows(blogCols).
				AddRow(blogID, int64(1), "first", "a", "u", 0, userID, now).
				AddRow(blogID2, int64(2), "second", "a", "u", 5, userID, now))

		blogs, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, blogs, 2)
		assert.Equal(t, "first", blogs[0].Title)
		assert.Equal(t, "second", blogs[1].Title)
	})

	t.Run("empty", func(t *testing.T) {
		mock := newMock(t)
		repo := postgres.NewBlogRepository(mock)

		mock.ExpectQuery("SELECT .* FROM blogs ORDER BY seq").
			WillReturnRows(pgxmock.NewRows(blogCols))

		blogs, err := repo.List(ctx)
		require.NoError(t, err)
		assert.NotNil(t, blogs)
		assert.Empty(t, blogs)
	})

	t.Run("query error", func(t *testing.T) {
		mock := newMock(t)
		repo := postgres.NewBlogRepository(mock)

		mock.ExpectQuery("SELECT .* FROM blogs ORDER BY seq").WillReturnError(errDatabaseConnection)

		_, err := repo.List(ctx)
		require.ErrorIs(t, err, errDatabaseConnection)
	})
}

func TestBlogRepositoryGetByID(t *testing.T) {
	ctx := testContext(t)
	now := time.Now().UTC()

	t.Run("found", func(t *testing.T) {
		mock := newMock(t)
		repo := postgres.NewBlogRepository(mock)

		mock.ExpectQuery("SELECT .* FROM blogs WHERE id").
			WithArgs(blogID).
			WillReturnRows(pgxmock.NewRows(blogCols).
				AddRow(blogID, int64(1), "t", "a", "u", 3, userID, now))

		blog, err := repo.GetByID(ctx, blogID)
		require.NoError(t, err)
		assert.Equal(t, 3, blog.Likes)
	})

	t.Run("not found", func(t *testing.T) {
		mock := newMock(t)
		repo := postgres.NewBlogRepository(mock)

		mock.ExpectQuery("SELECT .* FROM blogs WHERE id").
			WithArgs(blogID).
			WillReturnError(pgx.ErrNoRows)

		_, err := repo.GetByID(ctx, blogID)
		require.ErrorIs(t, err, entities.ErrBlogNotFound)
	})

	t.Run("malformed id", func(t *testing.T) {
		mock := newMock(t)
		repo := postgres.NewBlogRepository(mock)

		_, err := repo.GetByID(ctx, "42")
		require.ErrorIs(t, err, entities.ErrBlogNotFound)
	})
}

func TestBlogRepositoryIncrementLikes(t *testing.T) {
	ctx := testContext(t)
	now := time.Now().UTC()

	t.Run("success", func(t *testing.T) {
		mock := newMock(t)
		repo := postgres.NewBlogRepository(mock)

		mock.ExpectQuery(`UPDATE blogs SET likes = likes \+ 1`).
			WithArgs(blogID).
			WillReturnRows(pgxmock.NewRows(blogCols).
				AddRow(blogID, int64(1), "t", "a", "u", 4, userID, now))

		blog, err := repo.IncrementLikes(ctx, blogID)
		require.NoError(t, err)
		assert.Equal(t, 4, blog.Likes)
	})

	t.Run("not found", func(t *testing.T) {
		mock := newMock(t)
		repo := postgres.NewBlogRepository(mock)

		mock.ExpectQuery(`UPDATE blogs SET likes = likes \+ 1`).
			WithArgs(blogID).
			WillReturnError(pgx.ErrNoRows)

		_, err := repo.IncrementLikes(ctx, blogID)
		require.ErrorIs(t, err, entities.ErrBlogNotFound)
	})

	t.Run("integer limit", func(t *testing.T) {
		mock := newMock(t)
		repo := postgres.NewBlogRepository(mock)

		mock.ExpectQuery(`UPDATE blogs SET likes = likes \+ 1`).
			WithArgs(blogID).
			WillReturnError(&pgconn.PgError{Code: "22003", Message: "integer out of range"})

		blog, err := repo.IncrementLikes(ctx, blogID)
		require.ErrorIs(t, err, entities.ErrLikesLimit)
		require.ErrorIs(t, err, entities.ErrValidation)
		assert.Nil(t, blog)
	})
}

func TestBlogRepositoryDelete(t *testing.T) {
	ctx := testContext(t)

	t.Run("success", func(t *testing.T) {
		mock := newMock(t)
		repo := postgres.NewBlogRepository(mock)

		mock.ExpectExec("DELETE FROM blogs WHERE id").
			WithArgs(blogID).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		require.NoError(t, repo.Delete(ctx, blogID))
	})

	t.Run("already deleted", func(t *testing.T) {
		mock := newMock(t)
		repo := postgres.NewBlogRepository(mock)

		mock.ExpectExec("DELETE FROM blogs WHERE id").
			WithArgs(blogID).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		require.ErrorIs(t, repo.Delete(ctx, blogID), entities.ErrBlogNotFound)
	})

	t.Run("database error", func(t *testing.T) {
		mock := newMock(t)
		repo := postgres.NewBlogRepository(mock)

		mock.ExpectExec("DELETE FROM blogs WHERE id").
			WithArgs(blogID).
			WillReturnError(errDatabaseConnection)

		require.ErrorIs(t, repo.Delete(ctx, blogID), errDatabaseConnection)
	})

	t.Run("delete all", func(t *testing.T) {
		mock := newMock(t)
		repo := postgres.NewBlogRepository(mock)

		mock.ExpectExec("DELETE FROM blogs").WillReturnResult(pgxmock.NewResult("DELETE", 2))

		require.NoError(t, repo.DeleteAll(ctx))
	})
}

func TestRepositoryFactory(t *testing.T) {
	mock := newMock(t)
	factory := postgres.NewRepositoryFactory(mock)

	require.NotNil(t, factory.UserRepository())
	require.NotNil(t, factory.BlogRepository())
	assert.Same(t, factory.BlogRepository(), factory.BlogRepository())
}
