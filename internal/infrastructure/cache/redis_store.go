package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/pkg/config"
)

// keyPrefix namespaces idempotency keys in a shared redis instance.
const keyPrefix = "pmp:idempotency:"

// RedisStore is an IdempotencyStore backed by a redis server, for
// deployments with multiple API instances.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a RedisStore and verifies the connection.
func NewRedisStore(ctx context.Context, settings *config.RedisSettings) (*RedisStore, error) {
	if settings == nil {
		return nil, fmt.Errorf("redis settings are required")
	}
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid redis settings: %w", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr:     settings.Addr,
		Password: settings.Password,
		DB:       settings.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at '%s': %w", settings.Addr, err)
	}

	return &RedisStore{client: client}, nil
}

// MarkProcessed records the key via SETNX, reporting true when it was not
// seen before within its TTL.
func (s *RedisStore) MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	first, err := s.client.SetNX(ctx, keyPrefix+key, "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to mark idempotency key: %w", err)
	}
	return first, nil
}

// IsProcessed reports whether the key is recorded and unexpired.
func (s *RedisStore) IsProcessed(ctx context.Context, key string) (bool, error) {
	n, err := s.client.Exists(ctx, keyPrefix+key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check idempotency key: %w", err)
	}
	return n > 0, nil
}

// Close closes the underlying redis client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
