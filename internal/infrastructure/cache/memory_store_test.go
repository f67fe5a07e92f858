//go:build unit
// +build unit

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_MarkProcessed(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	first, err := store.MarkProcessed(ctx, "key-1", time.Hour)
	require.NoError(t, err)
	assert.True(t, first)

	again, err := store.MarkProcessed(ctx, "key-1", time.Hour)
	require.NoError(t, err)
	assert.False(t, again)

	other, err := store.MarkProcessed(ctx, "key-2", time.Hour)
	require.NoError(t, err)
	assert.True(t, other)
}

func TestMemoryStore_IsProcessed(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	seen, err := store.IsProcessed(ctx, "key-1")
	require.NoError(t, err)
	assert.False(t, seen)

	_, err = store.MarkProcessed(ctx, "key-1", time.Hour)
	require.NoError(t, err)

	seen, err = store.IsProcessed(ctx, "key-1")
	require.NoError(t, err)
	assert.True(t, seen)
}

func TestMemoryStore_Expiry(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	now := time.Now()
	store.now = func() time.Time { return now }

	first, err := store.MarkProcessed(ctx, "key-1", time.Minute)
	require.NoError(t, err)
	assert.True(t, first)

	// Advance past the TTL
	store.now = func() time.Time { return now.Add(2 * time.Minute) }

	seen, err := store.IsProcessed(ctx, "key-1")
	require.NoError(t, err)
	assert.False(t, seen)

	first, err = store.MarkProcessed(ctx, "key-1", time.Minute)
	require.NoError(t, err)
	assert.True(t, first)
}

func TestMemoryStore_Close(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, err := store.MarkProcessed(ctx, "key-1", time.Hour)
	require.NoError(t, err)

	require.NoError(t, store.Close())

	seen, err := store.IsProcessed(ctx, "key-1")
	require.NoError(t, err)
	assert.False(t, seen)
}
