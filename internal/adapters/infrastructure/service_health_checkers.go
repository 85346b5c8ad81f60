package infrastructure

import (
	"context"

	"wapi.app/internal/ports"
)

const (
	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"
	statusDegraded  = "degraded"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// CircuitStateReporter is implemented by the circuit breaker provider decorator
type CircuitStateReporter interface {
	State() string
}

// CacheHealthChecker reports on the cache backend. Backends that can be pinged are pinged.
type CacheHealthChecker struct {
	cache     ports.CacheProvider
	cacheType string
}

func NewCacheHealthChecker(cache ports.CacheProvider, cacheType string) *CacheHealthChecker {
	return &CacheHealthChecker{cache: cache, cacheType: cacheType}
}

// Check verifies the cache backend is reachable
func (c *CacheHealthChecker) Check(ctx context.Context) ports.HealthStatus {
	status := ports.HealthStatus{
		Component: "cache",
		Status:    statusHealthy,
		Details: map[string]interface{}{
			"type": c.cacheType,
		},
	}

	if c.cache == nil {
		status.Status = statusUnhealthy
		status.Error = "cache is not configured"
		return status
	}

	if p, ok := c.cache.(pinger); ok {
		if err := p.Ping(ctx); err != nil {
			status.Status = statusUnhealthy
			status.Error = err.Error()
			return status
		}
	}

	if sp, ok := c.cache.(ports.CacheStatsProvider); ok {
		stats := sp.GetStats()
		status.Details["hit_ratio"] = stats.HitRatio
		status.Details["entries"] = stats.Entries
	}

	return status
}

// WeatherAPIHealthChecker reports provider availability without calling the upstream API
type WeatherAPIHealthChecker struct {
	weatherProvider ports.WeatherProvider
	breaker         CircuitStateReporter
}

// NewWeatherAPIHealthChecker accepts the breaker-wrapped provider when one is configured
// so its state is included in the report.
func NewWeatherAPIHealthChecker(weatherProvider ports.WeatherProvider, breaker CircuitStateReporter) *WeatherAPIHealthChecker {
	return &WeatherAPIHealthChecker{weatherProvider: weatherProvider, breaker: breaker}
}

// Check verifies weather API availability
func (w *WeatherAPIHealthChecker) Check(ctx context.Context) ports.HealthStatus {
	status := ports.HealthStatus{
		Component: "weatherAPI",
		Status:    statusHealthy,
		Details: map[string]interface{}{
			"connected": true,
		},
	}

	if w.weatherProvider == nil {
		status.Status = statusUnhealthy
		status.Error = "weather provider is not available"
		status.Details["connected"] = false
		return status
	}
	status.Details["provider"] = w.weatherProvider.GetProviderName()

	if w.breaker != nil {
		state := w.breaker.State()
		status.Details["circuit_breaker"] = state
		if state == "open" {
			status.Status = statusDegraded
			status.Error = "circuit breaker open"
		}
	}

	return status
}
