package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrvekratl/BE124/pkg/config"
)

func getRedisClient(t *testing.T) *goredis.Client {
	t.Helper()
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	client, err := NewClient(context.Background(), config.RedisConfig{Addr: addr})
	if err != nil {
		t.Skipf("Redis no disponible: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestIdempotencyStore_ReserveRelease(t *testing.T) {
	store := NewIdempotencyStore(getRedisClient(t))
	ctx := context.Background()
	key := "test:" + uuid.NewString()

	ok, err := store.Reserve(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.Reserve(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Release(ctx, key))
	ok, err = store.Reserve(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
	require.NoError(t, store.Release(ctx, key))
}

func TestIdempotencyStore_TTL(t *testing.T) {
	client := getRedisClient(t)
	store := NewIdempotencyStore(client)
	ctx := context.Background()
	key := "test:" + uuid.NewString()

	_, err := store.Reserve(ctx, key, time.Hour)
	require.NoError(t, err)
	ttl, err := client.TTL(ctx, keyPrefix+key).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, 59*time.Minute)
	require.NoError(t, store.Release(ctx, key))
}
