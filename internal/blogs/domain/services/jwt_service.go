package services

import (
	"errors"
	"time"
)

// Ошибки JWT токенов.
var (
	ErrInvalidJWTToken    = errors.New("invalid JWT token")
	ErrExpiredJWTToken    = errors.New("JWT token has expired")
	ErrRevokedJWTToken    = errors.New("JWT token has been revoked")
	ErrGeneratingJWTToken = errors.New("failed to generate JWT token")
)

// JWTConfig содержит настройки для JWT сервиса.
type JWTConfig struct {
	SecretKey []byte
	TokenTTL  time.Duration
}

// JWTClaims определяет полезную нагрузку сессионного токена.
type JWTClaims struct {
	TokenID   string
	UserID    string
	Username  string
	Name      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
