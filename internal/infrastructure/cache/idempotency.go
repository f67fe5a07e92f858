package cache

import (
	"context"
	"time"
)

// IdempotencyStore tracks request idempotency keys so that replays of the
// same generation request can be rejected.
type IdempotencyStore interface {
	// MarkProcessed records the key. It reports true when the key was not
	// seen before within its TTL.
	MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// IsProcessed reports whether the key has been recorded and is still
	// within its TTL.
	IsProcessed(ctx context.Context, key string) (bool, error)

	// Close releases any resources held by the store.
	Close() error
}
