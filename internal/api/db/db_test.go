package db

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geoprofiles/internal/api/config"
)

func TestMigrationsSource(t *testing.T) {
	t.Run("absolute path is kept", func(t *testing.T) {
		dir := t.TempDir()

		got, err := migrationsSource(dir)

		require.NoError(t, err)
		assert.Equal(t, "file://"+filepath.ToSlash(dir), got)
	})

	t.Run("relative path is resolved", func(t *testing.T) {
		got, err := migrationsSource("migrations/api")

		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(got, "file://"))
		assert.True(t, strings.HasSuffix(got, "migrations/api"))
		assert.True(t, filepath.IsAbs(strings.TrimPrefix(got, "file://")))
	})
}

func TestNewFailsWhenDatabaseIsUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cfg := &config.PostgresConfig{
		Host:           "127.0.0.1",
		Port:           1,
		User:           "postgres",
		Password:       "postgres",
		Database:       "geoprofiles",
		MinConn:        1,
		MaxConn:        2,
		MigrationsDir:  t.TempDir(),
		ConnectRetries: 1,
	}

	database, err := New(ctx, cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrDBInit)
	assert.Nil(t, database)
}
