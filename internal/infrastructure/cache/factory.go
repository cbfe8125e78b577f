package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/dixmit/sale-workflow/internal/domain/shared"
	"github.com/dixmit/sale-workflow/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const inMemorySweepInterval = 5 * time.Minute

// IdempotencyStoreFactory picks the idempotency store from configuration
type IdempotencyStoreFactory struct {
	redis         config.RedisConfig
	allowFallback bool
	keyPrefix     string
	logger        *zap.Logger
}

// FactoryOption configures the factory
type FactoryOption func(*IdempotencyStoreFactory)

// WithLogger sets the logger used to report the store choice
func WithLogger(logger *zap.Logger) FactoryOption {
	return func(f *IdempotencyStoreFactory) { f.logger = logger }
}

// WithKeyPrefix overrides the Redis key prefix
func WithKeyPrefix(prefix string) FactoryOption {
	return func(f *IdempotencyStoreFactory) { f.keyPrefix = prefix }
}

// NewIdempotencyStoreFactory creates a factory
func NewIdempotencyStoreFactory(redisCfg config.RedisConfig, idemCfg config.IdempotencyConfig, opts ...FactoryOption) *IdempotencyStoreFactory {
	f := &IdempotencyStoreFactory{
		redis:         redisCfg,
		allowFallback: idemCfg.AllowInMemoryFallback,
		keyPrefix:     DefaultKeyPrefix,
		logger:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateStore returns a Redis store when Redis is enabled and reachable,
// otherwise an in-memory store if fallback is allowed.
func (f *IdempotencyStoreFactory) CreateStore(ctx context.Context) (shared.IdempotencyStore, error) {
	if !f.redis.Enabled {
		f.logger.Info("Redis disabled, using in-memory idempotency store")
		return NewInMemoryIdempotencyStore(inMemorySweepInterval), nil
	}

	store, err := NewRedisIdempotencyStore(ctx, &redis.Options{
		Addr:     f.redis.Addr(),
		Password: f.redis.Password,
		DB:       f.redis.DB,
	}, f.keyPrefix)
	if err == nil {
		f.logger.Info("Using Redis idempotency store", zap.String("addr", f.redis.Addr()))
		return store, nil
	}

	if !f.allowFallback {
		return nil, fmt.Errorf("redis is required for idempotency: %w", err)
	}
	f.logger.Warn("Redis unavailable, falling back to in-memory idempotency store; duplicates are only detected per instance",
		zap.Error(err),
	)
	return NewInMemoryIdempotencyStore(inMemorySweepInterval), nil
}
