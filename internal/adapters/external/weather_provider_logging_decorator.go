package external

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"wapi.app/internal/ports"
	"wapi.app/pkg/errors"
)

// WeatherProviderLoggingDecorator decorates weather providers with structured logging
type WeatherProviderLoggingDecorator struct {
	provider ports.WeatherProvider
	logger   ports.Logger
}

// NewWeatherProviderLoggingDecorator creates a new logging decorator for weather providers
func NewWeatherProviderLoggingDecorator(provider ports.WeatherProvider, logger ports.Logger) *WeatherProviderLoggingDecorator {
	return &WeatherProviderLoggingDecorator{
		provider: provider,
		logger:   logger,
	}
}

// FetchCurrent wraps the provider call with structured logging
func (d *WeatherProviderLoggingDecorator) FetchCurrent(ctx context.Context, country, city string) (*ports.CurrentWeatherPayload, error) {
	var payload *ports.CurrentWeatherPayload
	err := d.logCall(currentWeatherEndpoint, country, city, func() (int, error) {
		var err error
		payload, err = d.provider.FetchCurrent(ctx, country, city)
		return 1, err
	})
	if err != nil {
		return nil, err
	}
	return payload, nil
}

// FetchForecast wraps the provider call with structured logging
func (d *WeatherProviderLoggingDecorator) FetchForecast(ctx context.Context, country, city string) (*ports.ForecastPayload, error) {
	var payload *ports.ForecastPayload
	err := d.logCall(forecastEndpoint, country, city, func() (int, error) {
		var err error
		payload, err = d.provider.FetchForecast(ctx, country, city)
		if payload == nil {
			return 0, err
		}
		return len(payload.List), err
	})
	if err != nil {
		return nil, err
	}
	return payload, nil
}

// GetProviderName returns the name of the wrapped provider with logging indication
func (d *WeatherProviderLoggingDecorator) GetProviderName() string {
	return "logged(" + d.provider.GetProviderName() + ")"
}

func (d *WeatherProviderLoggingDecorator) logCall(endpoint, country, city string, call func() (int, error)) error {
	providerName := d.provider.GetProviderName()

	d.logger.Info("Weather API request started",
		ports.F("provider", providerName),
		ports.F("endpoint", endpoint),
		ports.F("city", city),
		ports.F("country", country),
		ports.F("event", "request"))

	startTime := time.Now()
	items, err := call()
	duration := time.Since(startTime)

	if err != nil {
		d.logger.Error("Weather API request failed",
			ports.F("provider", providerName),
			ports.F("endpoint", endpoint),
			ports.F("city", city),
			ports.F("event", "error"),
			ports.F("status", upstreamStatus(err)),
			ports.F("duration_ms", duration.Milliseconds()),
			ports.F("error", err.Error()))
		return err
	}

	d.logger.Info("Weather API request completed",
		ports.F("provider", providerName),
		ports.F("endpoint", endpoint),
		ports.F("city", city),
		ports.F("event", "response"),
		ports.F("status", http.StatusOK),
		ports.F("duration_ms", duration.Milliseconds()),
		ports.F("items", items))
	return nil
}

// upstreamStatus maps a provider error back to the HTTP status OpenWeatherMap answered with,
// 0 when no response was received
func upstreamStatus(err error) int {
	switch {
	case errors.IsNotFoundError(err):
		return http.StatusNotFound
	case errors.IsInvalidAPIKeyError(err):
		return http.StatusUnauthorized
	}
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return 0
}
