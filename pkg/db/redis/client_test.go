package redis_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geoprofiles/pkg/db/redis"
)

func TestConnect(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mr := miniredis.RunT(t)

		client, err := redis.Connect(ctx, redis.Options{Addr: mr.Addr()})
		require.NoError(t, err)
		defer client.Close()

		require.NoError(t, client.Set(ctx, "k", "v", 0).Err())
		got, err := mr.Get("k")
		require.NoError(t, err)
		assert.Equal(t, "v", got)
		assert.Equal(t, redis.DefaultPoolSize, client.Options().PoolSize)
	})

	t.Run("server unavailable", func(t *testing.T) {
		mr := miniredis.RunT(t)
		addr := mr.Addr()
		mr.Close()

		client, err := redis.Connect(ctx, redis.Options{Addr: addr})
		require.Error(t, err)
		assert.Nil(t, client)
		assert.Contains(t, err.Error(), redis.ErrConnect)
	})
}
