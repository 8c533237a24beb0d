package config

import (
	"net"
	"strconv"
	"time"
)

// RedisConfig представляет конфигурацию Redis.
type RedisConfig struct {
	Host           string        `yaml:"host" env:"BLOGS_REDIS_HOST" env-default:"localhost"`
	Port           int           `yaml:"port" env:"BLOGS_REDIS_PORT" env-default:"6379"`
	Password       string        `yaml:"password" env:"BLOGS_REDIS_PASSWORD" env-default:""`
	DB             int           `yaml:"db" env:"BLOGS_REDIS_DB" env-default:"0"`
	ConnectTimeout time.Duration `yaml:"connect_timeout" env:"BLOGS_REDIS_CONNECT_TIMEOUT" env-default:"5s"`
	ReadTimeout    time.Duration `yaml:"read_timeout" env:"BLOGS_REDIS_READ_TIMEOUT" env-default:"3s"`
	WriteTimeout   time.Duration `yaml:"write_timeout" env:"BLOGS_REDIS_WRITE_TIMEOUT" env-default:"3s"`
	PoolSize       int           `yaml:"pool_size" env:"BLOGS_REDIS_POOL_SIZE" env-default:"10"`
	MinIdle        int           `yaml:"min_idle" env:"BLOGS_REDIS_MIN_IDLE" env-default:"2"`
	ListTTL        time.Duration `yaml:"list_ttl" env:"BLOGS_REDIS_LIST_TTL" env-default:"5m"`

	BreakerErrors  int           `yaml:"breaker_errors" env:"BLOGS_CACHE_BREAKER_ERRORS" env-default:"5"`
	BreakerTimeout time.Duration `yaml:"breaker_timeout" env:"BLOGS_CACHE_BREAKER_TIMEOUT" env-default:"10s"`
	BreakerProbes  int           `yaml:"breaker_probes" env:"BLOGS_CACHE_BREAKER_PROBES" env-default:"2"`
}

// GetAddress возвращает адрес Redis.
func (c *RedisConfig) GetAddress() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
