package external

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"wapi.app/internal/mocks"
	"wapi.app/internal/ports"
	apperrors "wapi.app/pkg/errors"
)

func TestOutcome(t *testing.T) {
	assert.Equal(t, OutcomeSuccess, Outcome(nil))
	assert.Equal(t, OutcomeNotFound, Outcome(apperrors.NewCityNotFoundError("x", "uy")))
	assert.Equal(t, OutcomeInvalidAPIKey, Outcome(apperrors.NewInvalidAPIKeyError("bad key")))
	assert.Equal(t, OutcomeParseError, Outcome(apperrors.NewParseError("bad body", nil)))
	assert.Equal(t, OutcomeError, Outcome(apperrors.NewUpstreamError(500, "boom", nil)))
	assert.Equal(t, OutcomeError, Outcome(errors.New("plain")))
}

func TestWeatherProviderMetricsDecorator(t *testing.T) {
	provider := &testWeatherProvider{
		name:     "test-provider",
		current:  &ports.CurrentWeatherPayload{Name: "Montevideo"},
		forecast: &ports.ForecastPayload{},
	}
	metrics := mocks.NewMetricsCollector(t)
	metrics.EXPECT().RecordWeatherAPICall(mock.Anything, "weather", OutcomeSuccess, mock.Anything).Once()
	metrics.EXPECT().RecordWeatherAPICall(mock.Anything, "forecast", OutcomeSuccess, mock.Anything).Once()

	decorator := NewWeatherProviderMetricsDecorator(provider, metrics)

	current, err := decorator.FetchCurrent(context.Background(), "uy", "Montevideo")
	assert.NoError(t, err)
	assert.Equal(t, "Montevideo", current.Name)

	_, err = decorator.FetchForecast(context.Background(), "uy", "Montevideo")
	assert.NoError(t, err)
	assert.Equal(t, "test-provider", decorator.GetProviderName())
}

func TestWeatherProviderMetricsDecorator_RecordsFailures(t *testing.T) {
	provider := &testWeatherProvider{name: "p", err: apperrors.NewCityNotFoundError("atlantis", "uy")}
	metrics := mocks.NewMetricsCollector(t)
	metrics.EXPECT().RecordWeatherAPICall(mock.Anything, "weather", OutcomeNotFound, mock.Anything).Once()

	decorator := NewWeatherProviderMetricsDecorator(provider, metrics)

	_, err := decorator.FetchCurrent(context.Background(), "uy", "Atlantis")
	assert.True(t, apperrors.IsNotFoundError(err))
}
