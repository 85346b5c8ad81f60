package app

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"wapi.app/internal/adapters/external"
	"wapi.app/internal/adapters/infrastructure"
	"wapi.app/internal/config"
	"wapi.app/internal/ports"
	"wapi.app/pkg/logger"
)

type DependencyContainer struct {
	config *config.Config
	ports  *ports.ApplicationPorts

	metrics *infrastructure.PrometheusMetricsCollector
	breaker *external.WeatherProviderBreaker
	health  *infrastructure.SystemHealthChecker
	closers []func() error

	logOutput  io.Writer
	httpClient external.HTTPClient
}

// DependencyOption customizes how the container builds its adapters
type DependencyOption func(*DependencyContainer)

// WithLogOutput sends application logs to out instead of stdout
func WithLogOutput(out io.Writer) DependencyOption {
	return func(c *DependencyContainer) {
		c.logOutput = out
	}
}

// WithHTTPClient replaces the upstream HTTP client
func WithHTTPClient(client external.HTTPClient) DependencyOption {
	return func(c *DependencyContainer) {
		c.httpClient = client
	}
}

func NewDependencyContainer(cfg *config.Config, opts ...DependencyOption) (*DependencyContainer, error) {
	container := &DependencyContainer{
		config:    cfg,
		logOutput: os.Stdout,
	}
	for _, opt := range opts {
		opt(container)
	}

	if err := container.initializePorts(); err != nil {
		if cleanupErr := container.Cleanup(); cleanupErr != nil {
			slog.Warn("Cleanup after failed initialization", "error", cleanupErr)
		}
		return nil, fmt.Errorf("initialize ports: %w", err)
	}

	return container, nil
}

func (c *DependencyContainer) initializePorts() error {
	appLogger := c.newLogger()
	appLogger.Info("Initializing ports...")

	configProvider := infrastructure.NewConfigProviderAdapter(c.config)
	weatherConfig := configProvider.GetWeatherConfig()

	cacheFactory := external.NewCacheProviderFactory()
	cache, err := cacheFactory.CreateCacheProvider(&c.config.Cache, weatherConfig.CacheMaxEntries)
	if err != nil {
		appLogger.Error("Failed to create cache provider", ports.F("error", err))
		return fmt.Errorf("create cache provider: %w", err)
	}
	if closer, ok := cache.(interface{ Close() error }); ok {
		c.closers = append(c.closers, closer.Close)
	}

	appLogger.Info("Cache provider initialized",
		ports.F("type", c.config.Cache.Type.String()),
		ports.F("max_entries", weatherConfig.CacheMaxEntries))

	cacheStats, _ := cache.(ports.CacheStatsProvider)
	c.metrics = infrastructure.NewPrometheusMetricsCollector(cacheStats)

	provider, err := c.newWeatherProvider(appLogger, weatherConfig)
	if err != nil {
		return err
	}

	var breakerState infrastructure.CircuitStateReporter
	if c.breaker != nil {
		breakerState = c.breaker
	}
	c.health = infrastructure.NewSystemHealthChecker(infrastructure.SystemHealthCheckerConfig{
		CacheChecker:      infrastructure.NewCacheHealthChecker(cache, c.config.Cache.Type.String()),
		WeatherAPIChecker: infrastructure.NewWeatherAPIHealthChecker(provider, breakerState),
		ConfigProvider:    configProvider,
	})

	c.ports = &ports.ApplicationPorts{
		WeatherProvider: provider,
		Cache:           cache,
		CacheStats:      cacheStats,
		ConfigProvider:  configProvider,
		Logger:          appLogger,
		Metrics:         c.metrics,
	}

	appLogger.Info("Ports initialized successfully")
	return nil
}

// newLogger builds the application logger from LOG_FORMAT and LOG_LEVEL
func (c *DependencyContainer) newLogger() ports.Logger {
	if strings.EqualFold(c.config.Log.Format, "json") {
		l := logger.NewWithOptions(logger.Options{
			Level:  c.config.Log.Level,
			Format: "json",
			Output: c.logOutput,
		})
		return infrastructure.NewSlogLoggerAdapter(l.Logger)
	}

	return infrastructure.NewConsoleLoggerAdapter(
		infrastructure.WithConsoleOutput(c.logOutput),
		infrastructure.WithConsoleLevel(logger.ParseLevel(c.config.Log.Level)))
}

// newWeatherProvider assembles OpenWeatherMap -> metrics -> breaker -> traffic log.
// Metrics sit inside the breaker so short-circuited calls are not counted as upstream calls.
func (c *DependencyContainer) newWeatherProvider(appLogger ports.Logger, weatherConfig ports.WeatherConfig) (ports.WeatherProvider, error) {
	owm, err := external.NewOpenWeatherMapProviderAdapter(external.OpenWeatherMapProviderParams{
		APIKey:  c.config.Weather.APIKey,
		BaseURL: c.config.Weather.BaseURL,
		Timeout: weatherConfig.RequestTimeout,
		Client:  c.httpClient,
		Logger:  appLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("create weather provider: %w", err)
	}

	var provider ports.WeatherProvider = external.NewWeatherProviderMetricsDecorator(owm, c.metrics)

	if cb := c.config.Weather.CircuitBreaker; cb.Enabled {
		c.breaker = external.NewWeatherProviderBreaker(provider, external.BreakerSettings{
			MaxFailures: cb.MaxFailures,
			OpenTimeout: time.Duration(cb.OpenTimeoutSeconds) * time.Second,
		}, appLogger)
		provider = c.breaker
		appLogger.Info("Weather provider circuit breaker enabled", ports.F("max_failures", cb.MaxFailures))
	}

	if c.config.Weather.EnableLogging {
		trafficLogger := appLogger
		if c.config.Weather.LogFilePath != "" {
			fileLogger, err := infrastructure.NewFileLoggerAdapter(c.config.Weather.LogFilePath)
			if err != nil {
				appLogger.Warn("Failed to create file logger, provider traffic goes to the application log", ports.F("error", err))
			} else {
				c.closers = append(c.closers, fileLogger.Close)
				trafficLogger = infrastructure.NewMultiLogger(appLogger, fileLogger)
				appLogger.Info("File logging enabled", ports.F("path", fileLogger.Path()))
			}
		}
		provider = external.NewWeatherProviderLoggingDecorator(provider, trafficLogger)
		appLogger.Info("Weather provider logging enabled")
	}

	return provider, nil
}

func (c *DependencyContainer) ApplicationPorts() *ports.ApplicationPorts {
	return c.ports
}

// Metrics returns the Prometheus collector shared by the provider decorator and the use case
func (c *DependencyContainer) Metrics() *infrastructure.PrometheusMetricsCollector {
	return c.metrics
}

func (c *DependencyContainer) HealthChecker() *infrastructure.SystemHealthChecker {
	return c.health
}

// Cleanup releases backend connections
func (c *DependencyContainer) Cleanup() error {
	var firstErr error
	for _, closeFn := range c.closers {
		if err := closeFn(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	c.closers = nil
	return firstErr
}
