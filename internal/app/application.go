package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"wapi.app/internal/adapters/api"
	"wapi.app/internal/config"
	"wapi.app/internal/core/weather"
	"wapi.app/internal/ports"
)

type Application struct {
	config *config.Config

	// Use Cases
	weatherUseCase *weather.UseCase

	// Adapters
	server *api.HTTPServerAdapter

	// Infrastructure
	deps  *DependencyContainer
	ports *ports.ApplicationPorts
}

// NewApplication loads configuration from the environment and wires the application
func NewApplication(opts ...DependencyOption) (*Application, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	return NewApplicationWithConfig(cfg, opts...)
}

// NewApplicationWithConfig wires the application from an already validated config
func NewApplicationWithConfig(cfg *config.Config, opts ...DependencyOption) (*Application, error) {
	deps, err := NewDependencyContainer(cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("create dependency container: %w", err)
	}

	app := &Application{
		config: cfg,
		deps:   deps,
		ports:  deps.ApplicationPorts(),
	}

	if err := app.initializeUseCases(); err != nil {
		_ = deps.Cleanup()
		return nil, fmt.Errorf("initialize use cases: %w", err)
	}

	if err := app.initializeAdapters(); err != nil {
		_ = deps.Cleanup()
		return nil, fmt.Errorf("initialize adapters: %w", err)
	}

	return app, nil
}

func (a *Application) initializeUseCases() error {
	weatherUseCase, err := weather.NewUseCase(weather.UseCaseDependencies{
		WeatherProvider: a.ports.WeatherProvider,
		Cache:           a.ports.Cache,
		Config:          a.ports.ConfigProvider.GetWeatherConfig(),
		Logger:          a.ports.Logger,
		Metrics:         a.ports.Metrics,
	})
	if err != nil {
		return fmt.Errorf("create weather use case: %w", err)
	}
	a.weatherUseCase = weatherUseCase
	return nil
}

func (a *Application) initializeAdapters() error {
	serverConfig := a.ports.ConfigProvider.GetServerConfig()
	gin.SetMode(serverConfig.GinMode)

	server, err := api.NewHTTPServerAdapter(api.ServerOptions{
		Config:           api.ServerConfig{Port: serverConfig.Port},
		WeatherUseCase:   a.weatherUseCase,
		MetricsCollector: a.deps.Metrics(),
		MetricsGatherer:  a.deps.Metrics().Registry(),
		HealthChecker:    a.deps.HealthChecker(),
		Logger:           a.ports.Logger,
	})
	if err != nil {
		return fmt.Errorf("create HTTP adapter: %w", err)
	}
	a.server = server
	return nil
}

// Start blocks serving HTTP until Shutdown is called
func (a *Application) Start(ctx context.Context) error {
	a.ports.Logger.Info("Starting application...")
	if err := a.server.Start(ctx); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}
	return nil
}

func (a *Application) Shutdown(ctx context.Context) error {
	a.ports.Logger.Info("Shutting down application...")

	if err := a.server.Shutdown(ctx); err != nil {
		a.ports.Logger.Error("Error shutting down HTTP server", ports.F("error", err))
		return fmt.Errorf("shutdown HTTP server: %w", err)
	}

	if err := a.deps.Cleanup(); err != nil {
		a.ports.Logger.Warn("Error closing cache", ports.F("error", err))
	}

	a.ports.Logger.Info("Application shutdown complete")
	return nil
}

// Config returns the application configuration
func (a *Application) Config() *config.Config {
	return a.config
}

// GetRouter returns the Gin router for testing
func (a *Application) GetRouter() *gin.Engine {
	return a.server.GetRouter()
}

// GetWeatherUseCase returns the weather use case for testing
func (a *Application) GetWeatherUseCase() *weather.UseCase {
	return a.weatherUseCase
}
