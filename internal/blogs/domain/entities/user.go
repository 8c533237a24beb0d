package entities

import (
	"time"
)

// Ограничения на учетные данные.
const (
	MinUsernameLength = 3
	MinPasswordLength = 3
	// MaxPasswordLength ограничивает пароль в байтах, дальше bcrypt не хэширует.
	MaxPasswordLength = 72
)

// User - зарегистрированный пользователь. Username уникален с учетом регистра.
type User struct {
	ID           string
	Name         string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
