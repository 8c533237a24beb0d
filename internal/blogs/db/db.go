// Package db подключает сервис блогов к PostgreSQL.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"bloglist/internal/blogs/config"
	"bloglist/pkg/db/postgres"
	"bloglist/pkg/logger"
)

// Сообщения журнала.
const (
	LogDBInitializing    = "initializing blogs database"
	LogDBInitialized     = "blogs database initialized"
	LogMigrationStarting = "applying blogs database migrations"
)

// Сообщения об ошибках.
const (
	ErrDBMigrations = "failed to apply blogs database migrations"
	ErrDBConnection = "failed to connect to blogs database"
)

// DB - соединение сервиса блогов с базой данных.
type DB struct {
	database *postgres.Database
}

// New применяет миграции и открывает пул соединений.
func New(ctx context.Context, cfg *config.PostgresConfig) (*DB, error) {
	log := logger.Log(ctx)

	log.Info(ctx, LogDBInitializing,
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.Database),
		zap.Int("max_conn", cfg.MaxConn))

	source, err := cfg.GetMigrationsSource()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBMigrations, err)
	}

	log.Info(ctx, LogMigrationStarting, zap.String("migrations_path", source))
	if err := postgres.MigrateDSN(ctx, cfg.GetConnectionURL(), source); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBMigrations, err)
	}

	database, err := postgres.New(ctx, cfg.GetDSN(), postgres.PoolOptions{
		MinConns: cfg.MinConn,
		MaxConns: cfg.MaxConn,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBConnection, err)
	}

	log.Info(ctx, LogDBInitialized)
	return &DB{database: database}, nil
}

// Pool возвращает пул соединений.
func (db *DB) Pool() *pgxpool.Pool {
	return db.database.Pool()
}

// Close закрывает пул соединений.
func (db *DB) Close(ctx context.Context) error {
	return db.database.Close(ctx)
}
