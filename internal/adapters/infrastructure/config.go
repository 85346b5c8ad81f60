package infrastructure

import (
	"time"

	"wapi.app/internal/config"
	"wapi.app/internal/ports"
)

// ConfigProviderAdapter implements the ConfigProvider port
type ConfigProviderAdapter struct {
	config *config.Config
}

// NewConfigProviderAdapter expects an already validated config
func NewConfigProviderAdapter(cfg *config.Config) *ConfigProviderAdapter {
	return &ConfigProviderAdapter{
		config: cfg,
	}
}

// GetServerConfig returns server configuration
func (c *ConfigProviderAdapter) GetServerConfig() ports.ServerConfig {
	return ports.ServerConfig{
		Port:    c.config.Server.Port,
		GinMode: c.config.Server.GinMode,
	}
}

// GetWeatherConfig returns weather configuration.
// An unresolvable timezone falls back to the local one; Validate rejects it earlier.
func (c *ConfigProviderAdapter) GetWeatherConfig() ports.WeatherConfig {
	loc, err := c.config.Weather.Location()
	if err != nil {
		loc = time.Local
	}
	return ports.WeatherConfig{
		TemperatureUnit: c.config.Weather.TemperatureUnit,
		CacheTTL:        c.config.Weather.CacheTTL(),
		CacheMaxEntries: c.config.Weather.CacheMaxEntries,
		RequestTimeout:  c.config.Weather.RequestTimeout(),
		Location:        loc,
	}
}

// GetCacheConfig returns cache configuration
func (c *ConfigProviderAdapter) GetCacheConfig() ports.CacheConfig {
	return ports.CacheConfig{
		Type: c.config.Cache.Type.String(),
		Redis: ports.RedisConfig{
			Addr:         c.config.Cache.Redis.Addr,
			Password:     c.config.Cache.Redis.Password,
			DB:           c.config.Cache.Redis.DB,
			DialTimeout:  c.config.Cache.Redis.DialTimeout,
			ReadTimeout:  c.config.Cache.Redis.ReadTimeout,
			WriteTimeout: c.config.Cache.Redis.WriteTimeout,
		},
	}
}
