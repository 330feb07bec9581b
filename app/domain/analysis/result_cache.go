package analysis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vsguard.ai/vision-gateway/app/infrastructure/cache"
	"vsguard.ai/vision-gateway/app/utils/logger"
)

// ResultCache stores analysis results keyed by image fingerprint, bounded by
// the backing cache service's TTL and capacity policy.
type ResultCache struct {
	service cache.CacheService
	ttl     time.Duration
}

func NewResultCache(service cache.CacheService, ttl time.Duration) *ResultCache {
	return &ResultCache{
		service: service,
		ttl:     ttl,
	}
}

func resultKey(fingerprint string) string {
	return fmt.Sprintf(cache.AnalysisResultKeyPattern, fingerprint)
}

// Lookup returns the cached result for a fingerprint, or ok=false on a miss.
// Expired entries count as misses.
func (c *ResultCache) Lookup(ctx context.Context, fingerprint string) (*Result, bool) {
	var result Result
	err := c.service.Get(ctx, resultKey(fingerprint), &result)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			logger.GetLogger().WithField("error", err.Error()).Warn("result cache lookup failed")
		}
		return nil, false
	}
	return &result, true
}

// Store inserts or refreshes the result for a fingerprint with a fresh TTL.
// Two concurrent computations for the same fingerprint both store; last write
// wins.
func (c *ResultCache) Store(ctx context.Context, fingerprint string, result *Result) {
	if err := c.service.Set(ctx, resultKey(fingerprint), result, c.ttl); err != nil {
		logger.GetLogger().WithField("error", err.Error()).Warn("result cache store failed")
	}
}

// Entries reports how many entries the backing cache currently holds.
func (c *ResultCache) Entries(ctx context.Context) int64 {
	n, err := c.service.Entries(ctx)
	if err != nil {
		return 0
	}
	return n
}
