package cache

import (
	"strings"

	"vsguard.ai/vision-gateway/app/utils/logger"
	"vsguard.ai/vision-gateway/config/environment_variables"
)

// NewCacheService creates a cache service based on configuration. Unknown
// types fall back to the in-memory backend.
func NewCacheService() CacheService {
	cacheType := strings.ToLower(environment_variables.EnvironmentVariables.CACHE_TYPE)
	capacity := environment_variables.EnvironmentVariables.RESULT_CACHE_CAPACITY

	switch cacheType {
	case "redis":
		return NewRedisCacheService()
	case "noop":
		return &NoOpCacheService{}
	default:
		service, err := NewMemoryCacheService(capacity)
		if err != nil {
			logger.GetLogger().WithField("error", err.Error()).Error("failed to create memory cache, caching disabled")
			return &NoOpCacheService{}
		}
		return service
	}
}
