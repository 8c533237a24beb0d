package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"

	"bloglist/pkg/logger"
)

// Сообщения миграций.
const (
	LogMigrationsApplied   = "database migrations applied"
	LogMigrationsUpToDate  = "database schema is up to date"
	LogMigrationsReverted  = "database migrations reverted"
	ErrCreateMigrator      = "failed to create migration instance"
	ErrApplyMigrations     = "failed to apply migrations"
	ErrRevertMigrations    = "failed to revert migrations"
	ErrReadMigrationStatus = "failed to read migration version"
)

// Migrator применяет файловые миграции к базе данных.
type Migrator struct {
	m    *migrate.Migrate
	path string
}

// NewMigrator открывает источник миграций sourceURL (например file://migrations/blogs)
// и целевую базу по URL-строке подключения.
func NewMigrator(ctx context.Context, sourceURL, databaseURL string) (*Migrator, error) {
	m, err := migrate.New(sourceURL, databaseURL)
	if err != nil {
		logger.Log(ctx).Error(ctx, ErrCreateMigrator, zap.Error(err), zap.String("path", sourceURL))
		return nil, fmt.Errorf("%s: %w", ErrCreateMigrator, err)
	}
	return &Migrator{m: m, path: sourceURL}, nil
}

// Up применяет все новые миграции.
func (mg *Migrator) Up(ctx context.Context) error {
	log := logger.Log(ctx).With(zap.String("path", mg.path))

	err := mg.m.Up()
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		log.Info(ctx, LogMigrationsUpToDate)
		return nil
	case err != nil:
		log.Error(ctx, ErrApplyMigrations, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrApplyMigrations, err)
	}

	log.Info(ctx, LogMigrationsApplied)
	return nil
}

// Down откатывает steps последних миграций.
func (mg *Migrator) Down(ctx context.Context, steps int) error {
	if steps <= 0 {
		steps = 1
	}

	if err := mg.m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		logger.Log(ctx).Error(ctx, ErrRevertMigrations, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrRevertMigrations, err)
	}

	logger.Log(ctx).Info(ctx, LogMigrationsReverted, zap.Int("steps", steps))
	return nil
}

// Version возвращает текущую версию схемы и признак незавершенной миграции.
func (mg *Migrator) Version() (uint, bool, error) {
	version, dirty, err := mg.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("%s: %w", ErrReadMigrationStatus, err)
	}
	return version, dirty, nil
}

// Close освобождает источник и соединение с базой.
func (mg *Migrator) Close() error {
	srcErr, dbErr := mg.m.Close()
	return errors.Join(srcErr, dbErr)
}

// MigrateDSN применяет миграции из sourceURL и закрывает мигратор.
func MigrateDSN(ctx context.Context, databaseURL, sourceURL string) error {
	mg, err := NewMigrator(ctx, sourceURL, databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if err := mg.Close(); err != nil {
			logger.Log(ctx).Warn(ctx, "failed to close migrator", zap.Error(err))
		}
	}()

	return mg.Up(ctx)
}
