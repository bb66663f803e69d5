package model

import "time"

// AuthData - пара токенов, возвращаемая при логине и рефреше
type AuthData struct {
	AccessToken  string
	RefreshToken string
}

// ResetToken - одноразовый токен сброса пароля (хранится только хэш)
type ResetToken struct {
	ID        string
	UserID    string
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
}
