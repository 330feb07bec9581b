package cache

import (
	"context"
	"time"
)

// NoOpCacheService disables result caching: every lookup misses and every
// image is analyzed fresh. Used for graceful degradation and in tests.
type NoOpCacheService struct{}

// Set is a no-op implementation
func (n *NoOpCacheService) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	return nil
}

// Get always reports a miss
func (n *NoOpCacheService) Get(ctx context.Context, key string, dest any) error {
	return ErrCacheMiss
}

// Delete is a no-op implementation
func (n *NoOpCacheService) Delete(ctx context.Context, key string) error {
	return nil
}

// Exists always returns false
func (n *NoOpCacheService) Exists(ctx context.Context, key string) (bool, error) {
	return false, nil
}

// Entries always returns zero
func (n *NoOpCacheService) Entries(ctx context.Context) (int64, error) {
	return 0, nil
}

// Close is a no-op implementation
func (n *NoOpCacheService) Close() error {
	return nil
}

// HealthCheck always succeeds
func (n *NoOpCacheService) HealthCheck(ctx context.Context) error {
	return nil
}
