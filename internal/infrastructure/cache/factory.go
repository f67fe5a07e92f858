package cache

import (
	"context"
	"fmt"

	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/pkg/config"
)

// NewIdempotencyStore creates the idempotency store selected by the settings.
func NewIdempotencyStore(ctx context.Context, settings *config.IdempotencySettings) (IdempotencyStore, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid idempotency settings: %w", err)
	}

	switch settings.Backend {
	case config.MemoryIdempotencyBackend:
		return NewMemoryStore(), nil
	case config.RedisIdempotencyBackend:
		return NewRedisStore(ctx, settings.Redis)
	default:
		return nil, fmt.Errorf("unsupported idempotency backend: %s", settings.Backend)
	}
}
