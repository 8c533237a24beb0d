package config

import "time"

// JWTConfig содержит настройки сессионных токенов.
type JWTConfig struct {
	SecretKey  string `yaml:"secret_key" env:"BLOGS_JWT_SECRET_KEY" env-default:"super-secret-key-change-me-in-production"`
	TokenTTL   string `yaml:"token_ttl" env:"BLOGS_JWT_TOKEN_TTL" env-default:"1h"`
	BCryptCost int    `yaml:"bcrypt_cost" env:"BLOGS_JWT_BCRYPT_COST" env-default:"10"`
}

// GetTokenTTL возвращает время жизни сессионного токена.
func (c *JWTConfig) GetTokenTTL() time.Duration {
	duration, err := time.ParseDuration(c.TokenTTL)
	if err != nil || duration <= 0 {
		return time.Hour
	}
	return duration
}
