package ports

import (
	"context"
	"time"
)

// CacheProvider defines the contract for caching serialized lookup results.
// Get returns a NotFound error for absent or expired keys.
type CacheProvider interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// CacheStats represents cache performance metrics
type CacheStats struct {
	Hits        int64
	Misses      int64
	TotalOps    int64
	HitRatio    float64
	Entries     int
	LastUpdated time.Time
}

// CacheStatsProvider is implemented by caches that track their own hit/miss counters
type CacheStatsProvider interface {
	GetStats() CacheStats
}
