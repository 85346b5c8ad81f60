// Package api provides HTTP adapters for the hexagonal architecture
// These adapters handle incoming HTTP requests and translate them to use cases
package api

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"wapi.app/internal/core/weather"
	"wapi.app/internal/ports"
	"wapi.app/pkg/errors"
)

const readHeaderTimeout = 10 * time.Second

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Port int
}

// HTTPServerAdapter implements HTTP server using Gin framework
type HTTPServerAdapter struct {
	router           *gin.Engine
	httpServer       *http.Server
	config           ServerConfig
	weatherUseCase   WeatherUseCase
	metricsCollector MetricsCollector
	healthChecker    ports.SystemHealthChecker
	logger           ports.Logger
}

// Use case interfaces that the HTTP adapter depends on
type WeatherUseCase interface {
	GetWeather(ctx context.Context, request weather.WeatherRequest) (*weather.WeatherResult, error)
}

type MetricsCollector interface {
	GetMetrics(ctx context.Context) (map[string]interface{}, error)
}

// ServerOptions represents options for creating the HTTP server
type ServerOptions struct {
	Config           ServerConfig
	WeatherUseCase   WeatherUseCase
	MetricsCollector MetricsCollector
	HealthChecker    ports.SystemHealthChecker
	Logger           ports.Logger

	// MetricsGatherer backs /metrics; nil falls back to the default registry
	MetricsGatherer prometheus.Gatherer
}

// NewHTTPServerAdapter creates a new HTTP server adapter
func NewHTTPServerAdapter(opts ServerOptions) (*HTTPServerAdapter, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid server options: %w", err)
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestIDMiddleware(), accessLogMiddleware(opts.Logger))

	server := &HTTPServerAdapter{
		router:           router,
		config:           opts.Config,
		weatherUseCase:   opts.WeatherUseCase,
		metricsCollector: opts.MetricsCollector,
		healthChecker:    opts.HealthChecker,
		logger:           opts.Logger,
	}

	gatherer := opts.MetricsGatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	server.setupRoutes(gatherer)
	server.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", opts.Config.Port),
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
	}
	return server, nil
}

// Validate checks if all required dependencies are provided
func (opts *ServerOptions) Validate() error {
	if opts.WeatherUseCase == nil {
		return errors.NewConfigurationError("weather use case is required", nil)
	}
	if opts.MetricsCollector == nil {
		return errors.NewConfigurationError("metrics collector is required", nil)
	}
	if opts.HealthChecker == nil {
		return errors.NewConfigurationError("health checker is required", nil)
	}
	if opts.Logger == nil {
		return errors.NewConfigurationError("logger is required", nil)
	}
	return nil
}

// setupRoutes configures all HTTP routes
func (s *HTTPServerAdapter) setupRoutes(gatherer prometheus.Gatherer) {
	s.router.GET("/weather", s.getWeather)
	s.router.GET("/health", s.getHealth)

	api := s.router.Group("/api")
	{
		api.GET("/weather", s.getWeather)
		api.GET("/metrics", s.getMetrics)
	}

	s.router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
}

// Start serves HTTP until Shutdown is called
func (s *HTTPServerAdapter) Start(ctx context.Context) error {
	s.logger.Info("Starting HTTP server", ports.F("port", s.config.Port))
	if err := s.httpServer.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones
func (s *HTTPServerAdapter) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

// GetRouter returns the router for testing purposes
func (s *HTTPServerAdapter) GetRouter() *gin.Engine {
	return s.router
}
