package external

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"wapi.app/internal/ports"
	"wapi.app/pkg/errors"
)

// Interface compliance verification
var (
	_ ports.CacheProvider      = (*MemoryCacheProvider)(nil)
	_ ports.CacheStatsProvider = (*MemoryCacheProvider)(nil)
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestMemoryCacheProvider_SetAndGet(t *testing.T) {
	cache := NewMemoryCacheProvider(10)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "weather:uy:montevideo", []byte(`{"a":1}`), time.Minute))

	data, err := cache.Get(ctx, "weather:uy:montevideo")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"a":1}`), data)

	_, err = cache.Get(ctx, "weather:ar:rosario")
	assert.True(t, errors.IsNotFoundError(err))
}

func TestMemoryCacheProvider_Validation(t *testing.T) {
	cache := NewMemoryCacheProvider(10)
	ctx := context.Background()

	_, err := cache.Get(ctx, "")
	assert.True(t, errors.IsCacheError(err))
	assert.True(t, errors.IsCacheError(cache.Set(ctx, "", []byte("x"), time.Minute)))
	assert.True(t, errors.IsCacheError(cache.Set(ctx, "k", nil, time.Minute)))
	assert.True(t, errors.IsCacheError(cache.Set(ctx, "k", []byte("x"), 0)))
}

func TestMemoryCacheProvider_Expiry(t *testing.T) {
	clock := newFakeClock()
	cache := NewMemoryCacheProvider(10, WithClock(clock.Now))
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", []byte("v"), 120*time.Second))

	clock.Advance(119 * time.Second)
	_, err := cache.Get(ctx, "k")
	require.NoError(t, err)

	clock.Advance(time.Second)
	_, err = cache.Get(ctx, "k")
	assert.True(t, errors.IsNotFoundError(err))
	assert.Equal(t, 0, cache.Len())
}

func TestMemoryCacheProvider_EvictsOldestInserted(t *testing.T) {
	cache := NewMemoryCacheProvider(3)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, cache.Set(ctx, fmt.Sprintf("k%d", i), []byte("v"), time.Minute))
	}

	// Reading k0 does not protect it; eviction is by insertion order.
	_, err := cache.Get(ctx, "k0")
	require.NoError(t, err)

	require.NoError(t, cache.Set(ctx, "k3", []byte("v"), time.Minute))

	assert.Equal(t, 3, cache.Len())
	_, err = cache.Get(ctx, "k0")
	assert.True(t, errors.IsNotFoundError(err))
	for _, key := range []string{"k1", "k2", "k3"} {
		_, err := cache.Get(ctx, key)
		assert.NoError(t, err, key)
	}
}

func TestMemoryCacheProvider_OverwriteRefreshesInsertionOrder(t *testing.T) {
	cache := NewMemoryCacheProvider(2)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "a", []byte("1"), time.Minute))
	require.NoError(t, cache.Set(ctx, "b", []byte("1"), time.Minute))
	require.NoError(t, cache.Set(ctx, "a", []byte("2"), time.Minute))
	require.NoError(t, cache.Set(ctx, "c", []byte("1"), time.Minute))

	data, err := cache.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []byte("2"), data)
	_, err = cache.Get(ctx, "b")
	assert.True(t, errors.IsNotFoundError(err))
}

func TestMemoryCacheProvider_ReturnsCopies(t *testing.T) {
	cache := NewMemoryCacheProvider(2)
	ctx := context.Background()

	value := []byte("abc")
	require.NoError(t, cache.Set(ctx, "k", value, time.Minute))
	value[0] = 'x'

	data, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	data[1] = 'y'

	again, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), again)
}

func TestMemoryCacheProvider_Stats(t *testing.T) {
	clock := newFakeClock()
	cache := NewMemoryCacheProvider(10, WithClock(clock.Now))
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", []byte("v"), time.Minute))
	_, _ = cache.Get(ctx, "k")
	_, _ = cache.Get(ctx, "k")
	_, _ = cache.Get(ctx, "missing")
	clock.Advance(time.Minute)
	_, _ = cache.Get(ctx, "k")

	stats := cache.GetStats()
	assert.Equal(t, int64(2), stats.Hits)
	assert.Equal(t, int64(2), stats.Misses)
	assert.Equal(t, int64(4), stats.TotalOps)
	assert.InDelta(t, 0.5, stats.HitRatio, 0.001)
	assert.Equal(t, 0, stats.Entries)
	assert.Equal(t, clock.Now(), stats.LastUpdated)
}

func TestMemoryCacheProvider_DefaultCapacity(t *testing.T) {
	cache := NewMemoryCacheProvider(0)
	assert.Equal(t, defaultMaxEntries, cache.maxEntries)
}

func TestMemoryCacheProvider_ConcurrentAccess(t *testing.T) {
	cache := NewMemoryCacheProvider(50)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("k%d", (i*100+j)%80)
				_ = cache.Set(ctx, key, []byte("v"), time.Minute)
				_, _ = cache.Get(ctx, key)
			}
		}(i)
	}
	wg.Wait()

	assert.LessOrEqual(t, cache.Len(), 50)
	stats := cache.GetStats()
	assert.Equal(t, int64(2000), stats.TotalOps)
}
