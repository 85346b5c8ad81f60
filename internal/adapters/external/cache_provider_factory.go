package external

import (
	"fmt"

	"wapi.app/internal/config"
	"wapi.app/internal/ports"
	"wapi.app/pkg/errors"
)

type CacheProviderFactory struct {
	memoryOptions []MemoryCacheOption
}

func NewCacheProviderFactory(memoryOptions ...MemoryCacheOption) *CacheProviderFactory {
	return &CacheProviderFactory{memoryOptions: memoryOptions}
}

// CreateCacheProvider builds the configured backend. maxEntries bounds the memory cache only.
func (f *CacheProviderFactory) CreateCacheProvider(cfg *config.CacheConfig, maxEntries int) (ports.CacheProvider, error) {
	if cfg == nil {
		return nil, errors.NewConfigurationError("cache config cannot be nil", nil)
	}

	switch cfg.Type {
	case config.CacheTypeMemory:
		return NewMemoryCacheProvider(maxEntries, f.memoryOptions...), nil
	case config.CacheTypeRedis:
		return NewRedisCacheProviderAdapter(&cfg.Redis)
	default:
		return nil, errors.NewConfigurationError(
			fmt.Sprintf("unsupported cache type: %s", cfg.Type.String()), nil)
	}
}
