package model

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type User struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	Username     string
	PasswordHash string
	Roles        []string
	IsSuspended  bool

	// Единственный живой refresh токен аккаунта (хэш) и срок его действия.
	// Оба поля NULL, пока сессии нет или после отзыва.
	RefreshHash      *string
	RefreshExpiresAt *time.Time
}

// FullName - отображаемое имя для claim "name"
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

type UserClaims struct {
	jwt.RegisteredClaims
	Name              string   `json:"name,omitempty"`
	GivenName         string   `json:"given_name,omitempty"`
	FamilyName        string   `json:"family_name,omitempty"`
	PreferredUsername string   `json:"preferred_username,omitempty"`
	Roles             []string `json:"roles,omitempty"`
}
