package service

import "errors"

// Ошибки аутентификации намеренно неинформативны для клиента:
// промах по email и неверный пароль неразличимы, как и причины
// отказа в рефреше.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
)
