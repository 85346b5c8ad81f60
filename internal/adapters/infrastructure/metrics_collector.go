package infrastructure

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"wapi.app/internal/ports"
)

// PrometheusMetricsCollector implements the MetricsCollector port.
// Each instance owns its registry so tests and multiple apps never collide.
type PrometheusMetricsCollector struct {
	registry *prometheus.Registry

	cacheHits   prometheus.Counter
	cacheMisses prometheus.Counter
	hitRatio    prometheus.Gauge
	apiCalls    *prometheus.CounterVec
	apiLatency  *prometheus.HistogramVec

	cacheStats ports.CacheStatsProvider

	mu       sync.RWMutex
	hits     int64
	misses   int64
	apiCount map[apiCallKey]int64
}

type apiCallKey struct {
	endpoint string
	outcome  string
}

// NewPrometheusMetricsCollector registers the service metrics plus Go runtime and process
// collectors. cacheStats is optional and only feeds the JSON snapshot.
func NewPrometheusMetricsCollector(cacheStats ports.CacheStatsProvider) *PrometheusMetricsCollector {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &PrometheusMetricsCollector{
		registry: registry,
		cacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "wapi_cache_hits_total",
			Help: "The total number of weather lookups served from cache",
		}),
		cacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "wapi_cache_misses_total",
			Help: "The total number of weather lookups that missed the cache",
		}),
		hitRatio: factory.NewGauge(prometheus.GaugeOpts{
			Name: "wapi_cache_hit_ratio",
			Help: "Cache hit ratio (hits/total lookups)",
		}),
		apiCalls: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "wapi_weather_api_calls_total",
			Help: "Upstream weather API calls by endpoint and outcome",
		}, []string{"endpoint", "outcome"}),
		apiLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "wapi_weather_api_duration_seconds",
			Help:    "Upstream weather API call duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
		cacheStats: cacheStats,
		apiCount:   make(map[apiCallKey]int64),
	}
}

// Registry exposes the registry backing /metrics
func (m *PrometheusMetricsCollector) Registry() *prometheus.Registry {
	return m.registry
}

func (m *PrometheusMetricsCollector) RecordCacheHit(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.hits++
	m.cacheHits.Inc()
	m.updateHitRatio()
}

func (m *PrometheusMetricsCollector) RecordCacheMiss(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.misses++
	m.cacheMisses.Inc()
	m.updateHitRatio()
}

func (m *PrometheusMetricsCollector) RecordWeatherAPICall(ctx context.Context, endpoint string, outcome string, duration time.Duration) {
	m.apiCalls.WithLabelValues(endpoint, outcome).Inc()
	m.apiLatency.WithLabelValues(endpoint).Observe(duration.Seconds())

	m.mu.Lock()
	defer m.mu.Unlock()
	m.apiCount[apiCallKey{endpoint: endpoint, outcome: outcome}]++
}

// updateHitRatio must be called while holding the mutex
func (m *PrometheusMetricsCollector) updateHitRatio() {
	if total := m.hits + m.misses; total > 0 {
		m.hitRatio.Set(float64(m.hits) / float64(total))
	}
}

// GetMetrics returns a JSON-friendly snapshot for /api/metrics
func (m *PrometheusMetricsCollector) GetMetrics(ctx context.Context) (map[string]interface{}, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	total := m.hits + m.misses
	var ratio float64
	if total > 0 {
		ratio = float64(m.hits) / float64(total)
	}

	calls := make([]map[string]interface{}, 0, len(m.apiCount))
	for key, count := range m.apiCount {
		calls = append(calls, map[string]interface{}{
			"endpoint": key.endpoint,
			"outcome":  key.outcome,
			"count":    count,
		})
	}
	sort.Slice(calls, func(i, j int) bool {
		ei, ej := calls[i]["endpoint"].(string), calls[j]["endpoint"].(string)
		if ei != ej {
			return ei < ej
		}
		return calls[i]["outcome"].(string) < calls[j]["outcome"].(string)
	})

	metrics := map[string]interface{}{
		"lookups": map[string]interface{}{
			"hits":      m.hits,
			"misses":    m.misses,
			"total":     total,
			"hit_ratio": ratio,
		},
		"weather_api": calls,
	}

	if m.cacheStats != nil {
		stats := m.cacheStats.GetStats()
		metrics["cache"] = map[string]interface{}{
			"hits":      stats.Hits,
			"misses":    stats.Misses,
			"total_ops": stats.TotalOps,
			"hit_ratio": stats.HitRatio,
			"entries":   stats.Entries,
			"updated":   stats.LastUpdated,
		}
	}

	return metrics, nil
}
