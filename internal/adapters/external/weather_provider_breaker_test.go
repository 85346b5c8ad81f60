package external

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"wapi.app/internal/ports"
	"wapi.app/pkg/errors"
)

// Interface compliance verification
var (
	_ ports.WeatherProvider = (*WeatherProviderBreaker)(nil)
	_ ports.WeatherProvider = (*WeatherProviderMetricsDecorator)(nil)
	_ ports.WeatherProvider = (*WeatherProviderLoggingDecorator)(nil)
)

func TestWeatherProviderBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	provider := &testWeatherProvider{name: "flaky", err: errors.NewUpstreamError(500, "boom", nil)}
	logger := &recordingLogger{}
	breaker := NewWeatherProviderBreaker(provider, BreakerSettings{MaxFailures: 2, OpenTimeout: time.Minute}, logger)

	for i := 0; i < 2; i++ {
		_, err := breaker.FetchCurrent(context.Background(), "uy", "Montevideo")
		require.True(t, errors.IsUpstreamError(err))
	}
	assert.Equal(t, "open", breaker.State())

	_, err := breaker.FetchForecast(context.Background(), "uy", "Montevideo")

	require.True(t, errors.IsUpstreamError(err))
	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "circuit breaker open", appErr.Message)
	assert.Equal(t, 2, provider.callCount())
	require.NotEmpty(t, logger.entries)
	assert.Equal(t, "WARN", logger.entries[0].level)
	assert.Equal(t, "open", logger.entries[0].fields["to"])
}

func TestWeatherProviderBreaker_CallerErrorsDoNotTrip(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"CityNotFound", errors.NewCityNotFoundError("atlantis", "uy")},
		{"InvalidAPIKey", errors.NewInvalidAPIKeyError("bad key")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &testWeatherProvider{name: "p", err: tt.err}
			breaker := NewWeatherProviderBreaker(provider, BreakerSettings{MaxFailures: 1, OpenTimeout: time.Minute}, &recordingLogger{})

			for i := 0; i < 3; i++ {
				_, err := breaker.FetchCurrent(context.Background(), "uy", "Atlantis")
				assert.Equal(t, tt.err, err)
			}
			assert.Equal(t, "closed", breaker.State())
			assert.Equal(t, 3, provider.callCount())
		})
	}
}

func TestWeatherProviderBreaker_PassesResults(t *testing.T) {
	provider := &testWeatherProvider{
		name:     "ok",
		current:  &ports.CurrentWeatherPayload{Name: "Montevideo"},
		forecast: &ports.ForecastPayload{},
	}
	breaker := NewWeatherProviderBreaker(provider, BreakerSettings{}, &recordingLogger{})

	current, err := breaker.FetchCurrent(context.Background(), "uy", "Montevideo")
	require.NoError(t, err)
	assert.Equal(t, "Montevideo", current.Name)

	forecast, err := breaker.FetchForecast(context.Background(), "uy", "Montevideo")
	require.NoError(t, err)
	assert.NotNil(t, forecast)
	assert.Equal(t, "ok", breaker.GetProviderName())
}
