package config

import (
	"time"

	"github.com/joho/godotenv"
)

func Load(path string) error {
	err := godotenv.Load(path)
	if err != nil {
		return err
	}
	return nil
}

type HTTPConfig interface {
	Address() string
}

type PGConfig interface {
	DSN() string
}

// JWTConfig - неизменяемые настройки подписи и выпуска токенов.
// Алгоритм подписи зафиксирован (HS256) и отдельно не настраивается.
type JWTConfig interface {
	SigningSecret() []byte
	Issuer() string
	Audience() string
	AccessTokenDuration() time.Duration
	RefreshTokenDuration() time.Duration
	RefreshTokenLength() int
}

// ResetConfig - настройки потока сброса пароля
type ResetConfig interface {
	ResetTokenDuration() time.Duration
	MailFrom() string
}
