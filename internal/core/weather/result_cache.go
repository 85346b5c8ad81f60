package weather

import (
	"context"
	"encoding/json"
	"time"

	"wapi.app/internal/ports"
	"wapi.app/pkg/errors"
)

// ResultCache stores serialized WeatherResults in a generic cache provider
type ResultCache struct {
	provider ports.CacheProvider
	ttl      time.Duration
}

// NewResultCache creates a result cache whose entries live for ttl
func NewResultCache(provider ports.CacheProvider, ttl time.Duration) (*ResultCache, error) {
	if provider == nil {
		return nil, errors.NewConfigurationError("cache provider is required", nil)
	}
	if ttl <= 0 {
		return nil, errors.NewConfigurationError("cache TTL must be positive", nil)
	}
	return &ResultCache{provider: provider, ttl: ttl}, nil
}

// Get returns a freshly decoded result, or a NotFound error on a miss
func (c *ResultCache) Get(ctx context.Context, key LocationKey) (*WeatherResult, error) {
	data, err := c.provider.Get(ctx, key.String())
	if err != nil {
		return nil, err
	}

	var result WeatherResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, errors.NewCacheError("failed to deserialize weather result", err)
	}
	return &result, nil
}

// Set serializes result and stores it under key
func (c *ResultCache) Set(ctx context.Context, key LocationKey, result *WeatherResult) error {
	if result == nil {
		return errors.NewCacheError("weather result cannot be nil", nil)
	}

	data, err := json.Marshal(result)
	if err != nil {
		return errors.NewCacheError("failed to serialize weather result", err)
	}

	return c.provider.Set(ctx, key.String(), data, c.ttl)
}
