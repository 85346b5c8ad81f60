package infrastructure

import (
	"context"

	"wapi.app/internal/ports"
)

// SystemHealthChecker aggregates all health checks
type SystemHealthChecker struct {
	cacheChecker      ports.HealthChecker
	weatherAPIChecker ports.HealthChecker
	configProvider    ports.ConfigProvider
}

// SystemHealthCheckerConfig holds the configuration for creating a system health checker
type SystemHealthCheckerConfig struct {
	CacheChecker      ports.HealthChecker
	WeatherAPIChecker ports.HealthChecker
	ConfigProvider    ports.ConfigProvider
}

func NewSystemHealthChecker(config SystemHealthCheckerConfig) *SystemHealthChecker {
	return &SystemHealthChecker{
		cacheChecker:      config.CacheChecker,
		weatherAPIChecker: config.WeatherAPIChecker,
		configProvider:    config.ConfigProvider,
	}
}

// CheckAll performs health checks on all components
func (s *SystemHealthChecker) CheckAll(ctx context.Context) map[string]ports.HealthStatus {
	results := make(map[string]ports.HealthStatus)

	if s.cacheChecker != nil {
		results["cache"] = s.cacheChecker.Check(ctx)
	}

	if s.weatherAPIChecker != nil {
		results["weatherAPI"] = s.weatherAPIChecker.Check(ctx)
	}

	if s.configProvider != nil {
		weatherConfig := s.configProvider.GetWeatherConfig()
		details := map[string]interface{}{
			"temperatureUnit": weatherConfig.TemperatureUnit,
			"cacheTTL":        weatherConfig.CacheTTL.String(),
			"cacheType":       s.configProvider.GetCacheConfig().Type,
		}
		if weatherConfig.Location != nil {
			details["timezone"] = weatherConfig.Location.String()
		}
		results["config"] = ports.HealthStatus{
			Component: "config",
			Status:    statusHealthy,
			Details:   details,
		}
	}

	return results
}

// IsHealthy reports whether every component is healthy
func IsHealthy(results map[string]ports.HealthStatus) bool {
	for _, r := range results {
		if r.Status != statusHealthy {
			return false
		}
	}
	return true
}
