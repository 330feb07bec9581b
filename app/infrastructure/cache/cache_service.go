package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by Get when a key is absent or expired.
var ErrCacheMiss = errors.New("cache: key not found")

// CacheService defines the interface for cache operations
type CacheService interface {
	// Set stores a value in cache with an expiration time
	Set(ctx context.Context, key string, value any, expiration time.Duration) error

	// Get retrieves a value from cache into dest; ErrCacheMiss when absent
	Get(ctx context.Context, key string, dest any) error

	// Delete removes a key from cache
	Delete(ctx context.Context, key string) error

	// Exists checks if a key exists in cache
	Exists(ctx context.Context, key string) (bool, error)

	// Entries reports the number of stored entries
	Entries(ctx context.Context) (int64, error)

	// Close closes the cache connection
	Close() error

	// HealthCheck verifies cache connectivity
	HealthCheck(ctx context.Context) error
}
