package env

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"shop_backend/internal/config"
)

type resetYAML struct {
	Reset struct {
		ResetTokenTTLMinutes int    `yaml:"reset_token_ttl_minutes"`
		MailFrom             string `yaml:"mail_from"`
	} `yaml:"reset"`
}

type resetConfig struct {
	resetTokenDuration time.Duration
	mailFrom           string
}

func NewResetConfigFromYAML(path string) (config.ResetConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read reset config: %w", err)
	}

	var parsed resetYAML
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("invalid reset config: %w", err)
	}

	r := parsed.Reset
	if r.ResetTokenTTLMinutes <= 0 {
		return nil, errors.New("reset token ttl must be positive")
	}
	if r.MailFrom == "" {
		return nil, errors.New("reset mail_from must be set")
	}

	return &resetConfig{
		resetTokenDuration: time.Duration(r.ResetTokenTTLMinutes) * time.Minute,
		mailFrom:           r.MailFrom,
	}, nil
}

func (cfg *resetConfig) ResetTokenDuration() time.Duration {
	return cfg.resetTokenDuration
}

func (cfg *resetConfig) MailFrom() string {
	return cfg.mailFrom
}
