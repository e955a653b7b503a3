package config_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geoprofiles/internal/api/config"
	"geoprofiles/pkg/logger"
)

func TestLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("successfully loads config from environment", func(t *testing.T) {
		envVars := map[string]string{
			"API_HTTP_PORT":                 "8081",
			"API_POSTGRES_HOST":             "testhost",
			"API_POSTGRES_PORT":             "5555",
			"API_POSTGRES_USER":             "testuser",
			"API_POSTGRES_PASSWORD":         "testpass",
			"API_POSTGRES_DB":               "testdb",
			"API_POSTGRES_MIN_CONN":         "3",
			"API_POSTGRES_MAX_CONN":         "20",
			"API_JWT_SECRET_KEY":            "s3cr3t",
			"API_JWT_TOKEN_TTL":             "2h",
			"API_JWT_BCRYPT_COST":           "4",
			"API_REDIS_ENABLED":             "true",
			"API_REDIS_DEFAULT_TTL":         "1m",
			"API_RATE_LIMIT_RPS":            "2.5",
			"API_LOGGER_LEVEL":              "debug",
			"API_LOGGER_MODE":               "production",
			"API_GRACEFUL_SHUTDOWN_TIMEOUT": "10",
		}
		for k, v := range envVars {
			t.Setenv(k, v)
		}

		cfg, err := config.Load(ctx, "")
		require.NoError(t, err)
		require.NotNil(t, cfg)

		assert.Equal(t, "0.0.0.0:8081", cfg.HTTP.GetAddress())

		assert.Equal(t, "testhost", cfg.Postgres.Host)
		assert.Equal(t, 5555, cfg.Postgres.Port)
		assert.Equal(t, "testuser", cfg.Postgres.User)
		assert.Equal(t, "testpass", cfg.Postgres.Password)
		assert.Equal(t, "testdb", cfg.Postgres.Database)
		assert.Equal(t, 3, cfg.Postgres.MinConn)
		assert.Equal(t, 20, cfg.Postgres.MaxConn)

		assert.Equal(t, "s3cr3t", cfg.JWT.SecretKey)
		assert.Equal(t, 2*time.Hour, cfg.JWT.TokenTTL)
		assert.Equal(t, 4, cfg.JWT.BCryptCost)

		assert.True(t, cfg.Redis.Enabled)
		assert.Equal(t, time.Minute, cfg.Redis.DefaultTTL)
		assert.InDelta(t, 2.5, cfg.RateLimit.RPS, 0.0001)

		assert.Equal(t, "debug", cfg.Logging.Level)
		assert.Equal(t, logger.Production, cfg.Logging.GetEnvironment())
		assert.Equal(t, 10*time.Second, cfg.Shutdown.GetTimeout())
	})

	t.Run("uses default values when environment variables not set", func(t *testing.T) {
		cfg, err := config.Load(ctx, "")
		require.NoError(t, err)

		assert.Equal(t, 57424, cfg.HTTP.Port)
		assert.Equal(t, "localhost", cfg.Postgres.Host)
		assert.Equal(t, "geoprofiles", cfg.Postgres.Database)
		assert.Equal(t, 24*time.Hour, cfg.JWT.TokenTTL)
		assert.Equal(t, 10, cfg.JWT.BCryptCost)
		assert.False(t, cfg.Redis.Enabled)
		assert.True(t, cfg.RateLimit.Enabled)
		assert.Equal(t, logger.Development, cfg.Logging.GetEnvironment())
		assert.Equal(t, 5*time.Second, cfg.Shutdown.GetTimeout())
	})

	t.Run("rejects invalid duration", func(t *testing.T) {
		t.Setenv("API_JWT_TOKEN_TTL", "forever")

		cfg, err := config.Load(ctx, "")
		require.Error(t, err)
		assert.Nil(t, cfg)
	})

	t.Run("rejects inverted pool bounds", func(t *testing.T) {
		t.Setenv("API_POSTGRES_MIN_CONN", "11")
		t.Setenv("API_POSTGRES_MAX_CONN", "10")

		_, err := config.Load(ctx, "")
		require.ErrorIs(t, err, config.ErrBadPoolBounds)
	})
}

func TestJWTConfigValidate(t *testing.T) {
	valid := config.JWTConfig{SecretKey: "k", TokenTTL: time.Hour, BCryptCost: 10}
	require.NoError(t, valid.Validate())

	noKey := valid
	noKey.SecretKey = ""
	assert.ErrorIs(t, noKey.Validate(), config.ErrEmptySecretKey)

	zeroTTL := valid
	zeroTTL.TokenTTL = 0
	assert.ErrorIs(t, zeroTTL.Validate(), config.ErrNonPositiveTTL)

	badCost := valid
	badCost.BCryptCost = 99
	assert.ErrorIs(t, badCost.Validate(), config.ErrBadBCryptCost)
}

func TestPostgresConfigURLs(t *testing.T) {
	cfg := config.PostgresConfig{
		Host: "db", Port: 5432, User: "u", Password: "p@ss", Database: "geo",
	}

	assert.Equal(t, "host=db port=5432 user=u password=p@ss dbname=geo sslmode=disable", cfg.GetDSN())
	assert.Equal(t, "postgres://u:p%40ss@db:5432/geo?sslmode=disable", cfg.GetConnectionURL())
}
