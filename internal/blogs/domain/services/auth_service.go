// Package services содержит доменные типы и ошибки аутентификации.
package services

import (
	"errors"
)

// Ошибки домена аутентификации.
var (
	ErrInvalidCredentials    = errors.New("wrong username or password")
	ErrUsernameAlreadyExists = errors.New("username must be unique")
	ErrUnauthenticated       = errors.New("authentication required")
	ErrTokenGenerationFailed = errors.New("failed to generate session token")
)
