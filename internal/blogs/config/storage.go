package config

import (
	"errors"
	"fmt"
)

// Поддерживаемые драйверы хранилища и кэша.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// ErrUnknownDriver возвращается для неподдерживаемого драйвера.
var ErrUnknownDriver = errors.New("unknown driver")

// StorageConfig выбирает реализации репозиториев и кэша.
type StorageConfig struct {
	Driver string `yaml:"driver" env:"BLOGS_STORAGE_DRIVER" env-default:"memory"`
	Cache  string `yaml:"cache" env:"BLOGS_CACHE_DRIVER" env-default:"memory"`
}

// Validate проверяет имена драйверов.
func (s *StorageConfig) Validate() error {
	switch s.Driver {
	case DriverMemory, DriverPostgres:
	default:
		return fmt.Errorf("storage %q: %w", s.Driver, ErrUnknownDriver)
	}
	switch s.Cache {
	case DriverMemory, DriverRedis:
	default:
		return fmt.Errorf("cache %q: %w", s.Cache, ErrUnknownDriver)
	}
	return nil
}

// TestingConfig включает служебный маршрут сброса состояния для e2e тестов.
type TestingConfig struct {
	Enabled bool `yaml:"enabled" env:"BLOGS_TESTING_ENABLED" env-default:"false"`
}
