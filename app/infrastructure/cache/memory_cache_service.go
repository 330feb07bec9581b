package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

type memoryEntry struct {
	payload   []byte
	expiresAt time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// MemoryCacheService is the in-process cache backend: capacity-bounded with
// least-recently-used eviction, plus per-entry expiry checked on read. An
// expired entry is invisible to lookups even before it is physically evicted.
type MemoryCacheService struct {
	entries *lru.Cache[string, memoryEntry]
	now     func() time.Time
}

// NewMemoryCacheService creates an in-memory cache service holding at most
// capacity entries.
func NewMemoryCacheService(capacity int) (CacheService, error) {
	if capacity < 1 {
		return nil, fmt.Errorf("memory cache capacity must be positive, got %d", capacity)
	}
	entries, err := lru.New[string, memoryEntry](capacity)
	if err != nil {
		return nil, fmt.Errorf("failed to create lru cache: %w", err)
	}
	return &MemoryCacheService{
		entries: entries,
		now:     time.Now,
	}, nil
}

// Set stores a value with an expiry computed from now. A non-positive
// expiration stores the entry without a TTL.
func (m *MemoryCacheService) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}
	entry := memoryEntry{payload: payload}
	if expiration > 0 {
		entry.expiresAt = m.now().Add(expiration)
	}
	m.entries.Add(key, entry)
	return nil
}

// Get retrieves a value and refreshes its recency. Expired entries are
// removed and reported as a miss.
func (m *MemoryCacheService) Get(ctx context.Context, key string, dest any) error {
	entry, ok := m.entries.Get(key)
	if !ok {
		return ErrCacheMiss
	}
	if entry.expired(m.now()) {
		m.entries.Remove(key)
		return ErrCacheMiss
	}
	return json.Unmarshal(entry.payload, dest)
}

// Delete removes a key.
func (m *MemoryCacheService) Delete(ctx context.Context, key string) error {
	m.entries.Remove(key)
	return nil
}

// Exists checks if a key exists and has not expired.
func (m *MemoryCacheService) Exists(ctx context.Context, key string) (bool, error) {
	entry, ok := m.entries.Peek(key)
	if !ok {
		return false, nil
	}
	if entry.expired(m.now()) {
		m.entries.Remove(key)
		return false, nil
	}
	return true, nil
}

// Entries reports the number of stored entries, expired-but-unevicted ones
// included.
func (m *MemoryCacheService) Entries(ctx context.Context) (int64, error) {
	return int64(m.entries.Len()), nil
}

// Close is a no-op for the in-memory backend.
func (m *MemoryCacheService) Close() error {
	return nil
}

// HealthCheck always succeeds for the in-memory backend.
func (m *MemoryCacheService) HealthCheck(ctx context.Context) error {
	return nil
}
