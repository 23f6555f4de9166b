package storage_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-calendar/internal/adapters/storage"
	"github.com/comitanigiacomo/kanso-calendar/internal/core/domain"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func TestRedisStore_Integration(t *testing.T) {
	_ = godotenv.Load("../../../.env")

	host := getEnv("REDIS_HOST", "localhost")
	port := getEnv("REDIS_PORT", "6379")
	pass := os.Getenv("REDIS_PASSWORD")

	client, err := storage.NewRedisClient(host, port, pass, 1)
	if err != nil {
		t.Skipf("Skipping Redis integration test: %v", err)
	}
	defer client.Close()

	store := storage.NewRedisStore(client)
	ctx := context.Background()

	// Namespaced keys keep parallel test runs from clobbering each other.
	prefix := fmt.Sprintf("calendar-test:%s", uuid.NewString())
	key := func(name string) string { return prefix + ":" + name }

	t.Run("Success: Set and Get", func(t *testing.T) {
		k := key("completions")
		require.NoError(t, store.Set(ctx, k, `{"2024-01-01":true}`))
		defer store.Delete(ctx, k)

		val, err := store.Get(ctx, k)
		require.NoError(t, err)
		assert.Equal(t, `{"2024-01-01":true}`, val)
	})

	t.Run("Error: Missing key maps redis.Nil to ErrKeyNotFound", func(t *testing.T) {
		_, err := store.Get(ctx, key("never-written"))
		assert.ErrorIs(t, err, domain.ErrKeyNotFound)
	})

	t.Run("Success: Delete removes the key", func(t *testing.T) {
		k := key("view")
		require.NoError(t, store.Set(ctx, k, "2024-03-01T00:00:00Z"))
		require.NoError(t, store.Delete(ctx, k))

		_, err := store.Get(ctx, k)
		assert.ErrorIs(t, err, domain.ErrKeyNotFound)
	})
}
