package config

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// JWTConfig содержит настройки для токенов и хэширования паролей.
type JWTConfig struct {
	SecretKey  string        `yaml:"secret_key" env:"API_JWT_SECRET_KEY" env-default:"the_best_secret_key"`
	TokenTTL   time.Duration `yaml:"token_ttl" env:"API_JWT_TOKEN_TTL" env-default:"24h"`
	BCryptCost int           `yaml:"bcrypt_cost" env:"API_JWT_BCRYPT_COST" env-default:"10"`
}

// Validate проверяет настройки токенов.
func (c *JWTConfig) Validate() error {
	if c.SecretKey == "" {
		return ErrEmptySecretKey
	}
	if c.TokenTTL <= 0 {
		return ErrNonPositiveTTL
	}
	if c.BCryptCost < bcrypt.MinCost || c.BCryptCost > bcrypt.MaxCost {
		return ErrBadBCryptCost
	}
	return nil
}
