// Package config содержит конфигурацию сервиса профилей.
package config

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	pkgconfig "geoprofiles/pkg/config"
	"geoprofiles/pkg/logger"
)

// ServiceName используется в логах и метриках.
const ServiceName = "geoprofiles-api"

// Константы ошибок и сообщений для конфигурации.
const (
	LogConfigLoaded     = "configuration summary"
	ErrFailedLoadConfig = "failed to load configuration"
	ErrInvalidConfig    = "invalid configuration"
)

// Ошибки проверки конфигурации.
var (
	ErrEmptySecretKey    = errors.New("jwt secret key must not be empty")
	ErrNonPositiveTTL    = errors.New("jwt token ttl must be positive")
	ErrBadBCryptCost     = errors.New("bcrypt cost is out of range")
	ErrBadPoolBounds     = errors.New("postgres min_conn must not exceed max_conn")
	ErrNonPositiveRate   = errors.New("rate limit must be positive")
	ErrNonPositiveRedTTL = errors.New("redis default ttl must be positive")
)

// Config представляет полную конфигурацию приложения.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Postgres  PostgresConfig  `yaml:"postgres"`
	JWT       JWTConfig       `yaml:"jwt"`
	Redis     RedisConfig     `yaml:"redis"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Logging   LoggingConfig   `yaml:"logging"`
	Shutdown  ShutdownConfig  `yaml:"shutdown"`
}

// Load загружает конфигурацию из переменных окружения (и файла envPath, если он есть) и проверяет ее.
func Load(ctx context.Context, envPath string) (*Config, error) {
	log := logger.Log(ctx)

	cfg, err := pkgconfig.Load[Config](ctx, ServiceName, envPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrFailedLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		log.Error(ctx, ErrInvalidConfig, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrInvalidConfig, err)
	}

	log.Info(ctx, LogConfigLoaded,
		zap.String("http_address", cfg.HTTP.GetAddress()),
		zap.String("postgres_host", cfg.Postgres.Host),
		zap.Int("postgres_port", cfg.Postgres.Port),
		zap.Int("postgres_min_conn", cfg.Postgres.MinConn),
		zap.Int("postgres_max_conn", cfg.Postgres.MaxConn),
		zap.Duration("token_ttl", cfg.JWT.TokenTTL),
		zap.Bool("redis_enabled", cfg.Redis.Enabled),
		zap.Bool("rate_limit_enabled", cfg.RateLimit.Enabled),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("log_mode", cfg.Logging.Mode),
		zap.Int("shutdown_timeout_seconds", cfg.Shutdown.Timeout))

	return cfg, nil
}

// Validate проверяет значения, которые нельзя выразить тегами.
func (c *Config) Validate() error {
	if err := c.JWT.Validate(); err != nil {
		return err
	}
	if c.Postgres.MinConn > c.Postgres.MaxConn {
		return ErrBadPoolBounds
	}
	if c.Redis.Enabled && c.Redis.DefaultTTL <= 0 {
		return ErrNonPositiveRedTTL
	}
	if c.RateLimit.Enabled && (c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0) {
		return ErrNonPositiveRate
	}
	return nil
}
