package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geoprofiles/pkg/config"
)

type sample struct {
	Host string `env:"PKGCFG_TEST_HOST" env-default:"localhost"`
	Port int    `env:"PKGCFG_TEST_PORT" env-default:"8080"`
}

func TestLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults without env file", func(t *testing.T) {
		cfg, err := config.Load[sample](ctx, "test", filepath.Join(t.TempDir(), "missing.env"))
		require.NoError(t, err)
		assert.Equal(t, "localhost", cfg.Host)
		assert.Equal(t, 8080, cfg.Port)
	})

	t.Run("environment overrides defaults", func(t *testing.T) {
		t.Setenv("PKGCFG_TEST_HOST", "db.internal")
		t.Setenv("PKGCFG_TEST_PORT", "9090")

		cfg, err := config.Load[sample](ctx, "test", "")
		require.NoError(t, err)
		assert.Equal(t, "db.internal", cfg.Host)
		assert.Equal(t, 9090, cfg.Port)
	})

	t.Run("values from env file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "app.env")
		require.NoError(t, os.WriteFile(path, []byte("PKGCFG_TEST_HOST=fromfile\n"), 0o600))

		cfg, err := config.Load[sample](ctx, "test", path)
		require.NoError(t, err)
		assert.Equal(t, "fromfile", cfg.Host)
	})

	t.Run("invalid value", func(t *testing.T) {
		t.Setenv("PKGCFG_TEST_PORT", "not-a-number")

		cfg, err := config.Load[sample](ctx, "test", "")
		require.Error(t, err)
		assert.Nil(t, cfg)
	})
}
