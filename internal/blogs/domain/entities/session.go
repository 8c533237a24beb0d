package entities

import "time"

// Session - подтвержденная личность пользователя, полученная из токена.
// nil-сессия означает анонимного посетителя.
type Session struct {
	UserID    string
	Username  string
	Name      string
	TokenID   string
	Token     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
