// Package entities описывает сущности домена блогов.
package entities

import (
	"errors"
	"fmt"
)

// ErrValidation - общая причина всех ошибок валидации входных данных.
var ErrValidation = errors.New("validation failed")

// Ошибки валидации. Каждая оборачивает ErrValidation.
var (
	ErrUsernameTooShort = fmt.Errorf("%w: username must be at least %d characters long", ErrValidation, MinUsernameLength)
	ErrPasswordTooShort = fmt.Errorf("%w: password must be at least %d characters long", ErrValidation, MinPasswordLength)
	ErrPasswordTooLong  = fmt.Errorf("%w: password must be at most %d bytes long", ErrValidation, MaxPasswordLength)
	ErrEmptyTitle       = fmt.Errorf("%w: title is required", ErrValidation)
	ErrInvalidLikes     = fmt.Errorf("%w: likes must be an integer between 0 and %d", ErrValidation, MaxLikes)
	ErrLikesLimit       = fmt.Errorf("%w: likes limit of %d reached", ErrValidation, MaxLikes)
	ErrEmptyBlogID      = fmt.Errorf("%w: blog id is required", ErrValidation)
)

// Ошибки поиска и доступа.
var (
	ErrUserNotFound = errors.New("user not found")
	ErrBlogNotFound = errors.New("blog not found")
	ErrForbidden    = errors.New("only the creator can delete a blog")
)
