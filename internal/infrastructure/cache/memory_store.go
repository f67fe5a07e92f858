package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-process IdempotencyStore. Suitable for single-node
// deployments and tests.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]time.Time
	now     func() time.Time
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]time.Time),
		now:     time.Now,
	}
}

// MarkProcessed records the key, reporting true when it was not seen before
// within its TTL.
func (s *MemoryStore) MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.evictExpired(now)

	if _, seen := s.entries[key]; seen {
		return false, nil
	}
	s.entries[key] = now.Add(ttl)
	return true, nil
}

// IsProcessed reports whether the key is recorded and unexpired.
func (s *MemoryStore) IsProcessed(ctx context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	expiry, seen := s.entries[key]
	if !seen || s.now().After(expiry) {
		return false, nil
	}
	return true, nil
}

// Close clears the store.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make(map[string]time.Time)
	return nil
}

// evictExpired drops expired entries. Caller must hold the lock.
func (s *MemoryStore) evictExpired(now time.Time) {
	for key, expiry := range s.entries {
		if now.After(expiry) {
			delete(s.entries, key)
		}
	}
}
