package env

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"shop_backend/internal/config"
)

const (
	signingSecretEnvName = "JWT_SECRET"
)

type tokenYAML struct {
	Token struct {
		Issuer                 string `yaml:"issuer"`
		Audience               string `yaml:"audience"`
		AccessTokenTTLMinutes  int    `yaml:"access_token_ttl_minutes"`
		RefreshTokenTTLMinutes int    `yaml:"refresh_token_ttl_minutes"`
		RefreshTokenLength     int    `yaml:"refresh_token_length"`
	} `yaml:"token"`
}

type jwtConfig struct {
	signingSecret        []byte
	issuer               string
	audience             string
	accessTokenDuration  time.Duration
	refreshTokenDuration time.Duration
	refreshTokenLength   int
}

// NewJWTConfigFromYAML читает issuer/audience/TTL из config.yaml,
// секрет подписи - только из окружения. Отсутствие секрета - ошибка старта,
// а не запроса.
func NewJWTConfigFromYAML(path string) (config.JWTConfig, error) {
	secret := os.Getenv(signingSecretEnvName)
	if len(secret) == 0 {
		return nil, errors.New("jwt signing secret not found")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read token config: %w", err)
	}

	var parsed tokenYAML
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("invalid token config: %w", err)
	}

	t := parsed.Token
	if t.Issuer == "" || t.Audience == "" {
		return nil, errors.New("token issuer and audience must be set")
	}
	if t.AccessTokenTTLMinutes <= 0 || t.RefreshTokenTTLMinutes <= 0 {
		return nil, errors.New("token ttl must be positive")
	}
	if t.RefreshTokenLength <= 0 {
		return nil, errors.New("refresh token length must be positive")
	}

	return &jwtConfig{
		signingSecret:        []byte(secret),
		issuer:               t.Issuer,
		audience:             t.Audience,
		accessTokenDuration:  time.Duration(t.AccessTokenTTLMinutes) * time.Minute,
		refreshTokenDuration: time.Duration(t.RefreshTokenTTLMinutes) * time.Minute,
		refreshTokenLength:   t.RefreshTokenLength,
	}, nil
}

func (j *jwtConfig) SigningSecret() []byte {
	return j.signingSecret
}

func (j *jwtConfig) Issuer() string {
	return j.issuer
}

func (j *jwtConfig) Audience() string {
	return j.audience
}

func (j *jwtConfig) AccessTokenDuration() time.Duration {
	return j.accessTokenDuration
}

func (j *jwtConfig) RefreshTokenDuration() time.Duration {
	return j.refreshTokenDuration
}

func (j *jwtConfig) RefreshTokenLength() int {
	return j.refreshTokenLength
}
