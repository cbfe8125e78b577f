package cache

import (
	"context"
	"testing"

	"github.com/dixmit/sale-workflow/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdempotencyStoreFactory_CreateStore(t *testing.T) {
	ctx := context.Background()
	unreachable := config.RedisConfig{Enabled: true, Host: "127.0.0.1", Port: 1}

	t.Run("redis disabled", func(t *testing.T) {
		f := NewIdempotencyStoreFactory(config.RedisConfig{}, config.IdempotencyConfig{})
		store, err := f.CreateStore(ctx)
		require.NoError(t, err)
		defer store.Close()
		assert.IsType(t, &InMemoryIdempotencyStore{}, store)
	})

	t.Run("falls back when allowed", func(t *testing.T) {
		f := NewIdempotencyStoreFactory(unreachable, config.IdempotencyConfig{AllowInMemoryFallback: true})
		store, err := f.CreateStore(ctx)
		require.NoError(t, err)
		defer store.Close()
		assert.IsType(t, &InMemoryIdempotencyStore{}, store)
	})

	t.Run("fails without fallback", func(t *testing.T) {
		f := NewIdempotencyStoreFactory(unreachable, config.IdempotencyConfig{AllowInMemoryFallback: false})
		_, err := f.CreateStore(ctx)
		assert.Error(t, err)
	})
}
