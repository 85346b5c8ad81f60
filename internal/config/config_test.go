package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"wapi.app/pkg/errors"
)

func TestLoadConfig(t *testing.T) {
	t.Run("RequiredAPIKeyMissing", func(t *testing.T) {
		t.Setenv("OPENWEATHERMAP_API_KEY", "")

		config, err := LoadConfig()

		assert.Error(t, err)
		assert.Nil(t, config)
		assert.True(t, errors.IsConfigurationError(err))
		assert.Contains(t, err.Error(), "OPENWEATHERMAP_API_KEY is required")
	})

	t.Run("DefaultValues", func(t *testing.T) {
		t.Setenv("OPENWEATHERMAP_API_KEY", "test-api-key")

		config, err := LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, 8081, config.Server.Port)
		assert.Equal(t, "release", config.Server.GinMode)
		assert.Equal(t, "https://api.openweathermap.org/data/2.5", config.Weather.BaseURL)
		assert.Equal(t, "both", config.Weather.TemperatureUnit)
		assert.Equal(t, 120*time.Second, config.Weather.CacheTTL())
		assert.Equal(t, 10*time.Second, config.Weather.RequestTimeout())
		assert.Equal(t, 1000, config.Weather.CacheMaxEntries)
		assert.False(t, config.Weather.CircuitBreaker.Enabled)
		assert.Equal(t, uint32(5), config.Weather.CircuitBreaker.MaxFailures)
		assert.Equal(t, CacheTypeMemory, config.Cache.Type)
		assert.Equal(t, "localhost:6379", config.Cache.Redis.Addr)
		assert.Equal(t, "info", config.Log.Level)
		assert.Equal(t, "console", config.Log.Format)
	})

	t.Run("CustomValues", func(t *testing.T) {
		t.Setenv("OPENWEATHERMAP_API_KEY", "custom-key")
		t.Setenv("WAPI_PORT", "9090")
		t.Setenv("WEATHER_TEMPERATURE_UNIT", "celsius")
		t.Setenv("WEATHER_CACHE_TTL_SECONDS", "30")
		t.Setenv("WEATHER_TIMEZONE", "UTC")
		t.Setenv("WEATHER_CIRCUIT_BREAKER_ENABLED", "true")
		t.Setenv("CACHE_TYPE", "redis")
		t.Setenv("REDIS_ADDR", "redis:6379")
		t.Setenv("LOG_FORMAT", "json")

		config, err := LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, "custom-key", config.Weather.APIKey)
		assert.Equal(t, 9090, config.Server.Port)
		assert.Equal(t, "celsius", config.Weather.TemperatureUnit)
		assert.Equal(t, 30*time.Second, config.Weather.CacheTTL())
		assert.True(t, config.Weather.CircuitBreaker.Enabled)
		assert.Equal(t, CacheTypeRedis, config.Cache.Type)
		assert.Equal(t, "redis:6379", config.Cache.Redis.Addr)
		assert.Equal(t, "json", config.Log.Format)

		loc, err := config.Weather.Location()
		require.NoError(t, err)
		assert.Equal(t, time.UTC, loc)
	})

	t.Run("InvalidTemperatureUnit", func(t *testing.T) {
		t.Setenv("OPENWEATHERMAP_API_KEY", "test-api-key")
		t.Setenv("WEATHER_TEMPERATURE_UNIT", "kelvin")

		_, err := LoadConfig()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "WEATHER_TEMPERATURE_UNIT must be one of: celsius, fahrenheit, both")
	})

	t.Run("InvalidTimezone", func(t *testing.T) {
		t.Setenv("OPENWEATHERMAP_API_KEY", "test-api-key")
		t.Setenv("WEATHER_TIMEZONE", "Mars/Olympus_Mons")

		_, err := LoadConfig()

		require.Error(t, err)
		assert.True(t, errors.IsConfigurationError(err))
	})
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server: ServerConfig{Port: 8081, GinMode: "release"},
			Weather: WeatherConfig{
				APIKey:                "key",
				BaseURL:               "https://api.openweathermap.org/data/2.5",
				TemperatureUnit:       "both",
				RequestTimeoutSeconds: 10,
				CacheTTLSeconds:       120,
				CacheMaxEntries:       100,
				Timezone:              "UTC",
				CircuitBreaker:        CircuitBreakerConfig{MaxFailures: 5, OpenTimeoutSeconds: 30},
			},
			Cache: CacheConfig{Type: CacheTypeMemory},
			Log:   LogConfig{Level: "info", Format: "console"},
		}
	}

	tests := []struct {
		name        string
		mutate      func(c *Config)
		expectedErr string
	}{
		{"Valid", func(c *Config) {}, ""},
		{"PortTooHigh", func(c *Config) { c.Server.Port = 70000 }, "WAPI_PORT must be at most 65535"},
		{"PortZero", func(c *Config) { c.Server.Port = 0 }, "WAPI_PORT must be at least 1"},
		{"BadBaseURL", func(c *Config) { c.Weather.BaseURL = "not a url" }, "OPENWEATHERMAP_API_BASE_URL must be a valid URL"},
		{"ZeroTTL", func(c *Config) { c.Weather.CacheTTLSeconds = 0 }, "WEATHER_CACHE_TTL_SECONDS must be at least 1"},
		{"ZeroEntries", func(c *Config) { c.Weather.CacheMaxEntries = 0 }, "WEATHER_CACHE_MAX_ENTRIES must be at least 1"},
		{"UnknownCacheType", func(c *Config) { c.Cache.Type = CacheTypeUnknown }, "CACHE_TYPE must be one of: memory, redis"},
		{"RedisWithoutAddr", func(c *Config) {
			c.Cache.Type = CacheTypeRedis
			c.Cache.Redis = RedisConfig{DialTimeout: 5, ReadTimeout: 3, WriteTimeout: 3}
		}, "REDIS_ADDR cannot be empty"},
		{"RedisBadDB", func(c *Config) {
			c.Cache.Type = CacheTypeRedis
			c.Cache.Redis = RedisConfig{Addr: "localhost:6379", DB: 16, DialTimeout: 5, ReadTimeout: 3, WriteTimeout: 3}
		}, "REDIS_DB must be between 0 and 15"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()

			if tt.expectedErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.IsConfigurationError(err))
			assert.Contains(t, err.Error(), tt.expectedErr)
		})
	}
}

func TestCacheTypeFromString(t *testing.T) {
	assert.Equal(t, CacheTypeMemory, CacheTypeFromString("memory"))
	assert.Equal(t, CacheTypeRedis, CacheTypeFromString("REDIS"))
	assert.Equal(t, CacheTypeUnknown, CacheTypeFromString("memcached"))
	assert.Equal(t, "unknown", CacheTypeUnknown.String())
}
