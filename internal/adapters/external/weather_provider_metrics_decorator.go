package external

import (
	"context"
	"time"

	"wapi.app/internal/ports"
	"wapi.app/pkg/errors"
)

// Outcome labels recorded for upstream calls
const (
	OutcomeSuccess       = "success"
	OutcomeNotFound      = "not_found"
	OutcomeInvalidAPIKey = "invalid_api_key"
	OutcomeParseError    = "parse_error"
	OutcomeError         = "error"
)

// WeatherProviderMetricsDecorator records the duration and outcome of every upstream call
type WeatherProviderMetricsDecorator struct {
	provider ports.WeatherProvider
	metrics  ports.MetricsCollector
}

func NewWeatherProviderMetricsDecorator(provider ports.WeatherProvider, metrics ports.MetricsCollector) *WeatherProviderMetricsDecorator {
	return &WeatherProviderMetricsDecorator{
		provider: provider,
		metrics:  metrics,
	}
}

func (d *WeatherProviderMetricsDecorator) FetchCurrent(ctx context.Context, country, city string) (*ports.CurrentWeatherPayload, error) {
	start := time.Now()
	payload, err := d.provider.FetchCurrent(ctx, country, city)
	d.metrics.RecordWeatherAPICall(ctx, currentWeatherEndpoint, Outcome(err), time.Since(start))
	return payload, err
}

func (d *WeatherProviderMetricsDecorator) FetchForecast(ctx context.Context, country, city string) (*ports.ForecastPayload, error) {
	start := time.Now()
	payload, err := d.provider.FetchForecast(ctx, country, city)
	d.metrics.RecordWeatherAPICall(ctx, forecastEndpoint, Outcome(err), time.Since(start))
	return payload, err
}

func (d *WeatherProviderMetricsDecorator) GetProviderName() string {
	return d.provider.GetProviderName()
}

// Outcome maps a provider error to its metrics label
func Outcome(err error) string {
	if err == nil {
		return OutcomeSuccess
	}
	switch errors.TypeOf(err) {
	case errors.NotFoundError:
		return OutcomeNotFound
	case errors.InvalidAPIKeyError:
		return OutcomeInvalidAPIKey
	case errors.ParseError:
		return OutcomeParseError
	default:
		return OutcomeError
	}
}
