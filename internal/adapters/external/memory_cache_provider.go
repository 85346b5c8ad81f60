package external

import (
	"container/list"
	"context"
	"sync"
	"time"

	"wapi.app/internal/ports"
	"wapi.app/pkg/errors"
)

const defaultMaxEntries = 1000

// MemoryCacheProvider is a bounded in-process cache. Once full, the oldest inserted
// entry is evicted. Expired entries are dropped lazily on lookup.
type MemoryCacheProvider struct {
	mutex      sync.Mutex
	items      map[string]*list.Element
	order      *list.List
	maxEntries int
	now        func() time.Time

	hits   int64
	misses int64
}

type memoryCacheItem struct {
	key       string
	data      []byte
	expiresAt time.Time
}

// MemoryCacheOption customizes a MemoryCacheProvider
type MemoryCacheOption func(*MemoryCacheProvider)

// WithClock replaces time.Now, mainly for expiry tests
func WithClock(now func() time.Time) MemoryCacheOption {
	return func(c *MemoryCacheProvider) {
		c.now = now
	}
}

func NewMemoryCacheProvider(maxEntries int, opts ...MemoryCacheOption) *MemoryCacheProvider {
	if maxEntries <= 0 {
		maxEntries = defaultMaxEntries
	}

	c := &MemoryCacheProvider{
		items:      make(map[string]*list.Element),
		order:      list.New(),
		maxEntries: maxEntries,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *MemoryCacheProvider) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, errors.NewCacheError("cache key cannot be empty", nil)
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	el, exists := c.items[key]
	if !exists {
		c.misses++
		return nil, errors.NewNotFoundError("cache miss")
	}

	item := el.Value.(*memoryCacheItem)
	if !c.now().Before(item.expiresAt) {
		c.removeElement(el)
		c.misses++
		return nil, errors.NewNotFoundError("cache miss")
	}

	c.hits++
	data := make([]byte, len(item.data))
	copy(data, item.data)
	return data, nil
}

func (c *MemoryCacheProvider) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if key == "" {
		return errors.NewCacheError("cache key cannot be empty", nil)
	}
	if value == nil {
		return errors.NewCacheError("cache value cannot be nil", nil)
	}
	if ttl <= 0 {
		return errors.NewCacheError("cache TTL must be positive", nil)
	}

	data := make([]byte, len(value))
	copy(data, value)

	c.mutex.Lock()
	defer c.mutex.Unlock()

	// An overwrite counts as a fresh insertion for eviction order.
	if el, exists := c.items[key]; exists {
		c.removeElement(el)
	}

	c.items[key] = c.order.PushBack(&memoryCacheItem{
		key:       key,
		data:      data,
		expiresAt: c.now().Add(ttl),
	})

	for c.order.Len() > c.maxEntries {
		c.removeElement(c.order.Front())
	}

	return nil
}

// Len returns the number of stored entries, including expired ones not yet evicted
func (c *MemoryCacheProvider) Len() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.order.Len()
}

func (c *MemoryCacheProvider) GetStats() ports.CacheStats {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	total := c.hits + c.misses
	hitRatio := float64(0)
	if total > 0 {
		hitRatio = float64(c.hits) / float64(total)
	}

	return ports.CacheStats{
		Hits:        c.hits,
		Misses:      c.misses,
		TotalOps:    total,
		HitRatio:    hitRatio,
		Entries:     c.order.Len(),
		LastUpdated: c.now(),
	}
}

// removeElement must be called with the mutex held
func (c *MemoryCacheProvider) removeElement(el *list.Element) {
	item := c.order.Remove(el).(*memoryCacheItem)
	delete(c.items, item.key)
}
