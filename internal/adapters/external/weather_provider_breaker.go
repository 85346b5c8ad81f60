package external

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/sony/gobreaker"
	"wapi.app/internal/ports"
	"wapi.app/pkg/errors"
)

// BreakerSettings configures the provider circuit breaker
type BreakerSettings struct {
	MaxFailures uint32
	OpenTimeout time.Duration
}

// WeatherProviderBreaker stops calling the upstream after consecutive failures.
// Caller-side outcomes (unknown city, rejected key) do not count as failures.
type WeatherProviderBreaker struct {
	provider ports.WeatherProvider
	circuit  *gobreaker.CircuitBreaker
}

func NewWeatherProviderBreaker(provider ports.WeatherProvider, settings BreakerSettings, logger ports.Logger) *WeatherProviderBreaker {
	maxFailures := settings.MaxFailures
	if maxFailures == 0 {
		maxFailures = 5
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        provider.GetProviderName(),
		MaxRequests: 1,
		Timeout:     settings.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.IsNotFoundError(err) || errors.IsInvalidAPIKeyError(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				ports.F("provider", name),
				ports.F("from", from.String()),
				ports.F("to", to.String()))
		},
	})

	return &WeatherProviderBreaker{
		provider: provider,
		circuit:  cb,
	}
}

func (b *WeatherProviderBreaker) FetchCurrent(ctx context.Context, country, city string) (*ports.CurrentWeatherPayload, error) {
	result, err := b.circuit.Execute(func() (interface{}, error) {
		return b.provider.FetchCurrent(ctx, country, city)
	})
	if err != nil {
		return nil, breakerError(err)
	}
	return result.(*ports.CurrentWeatherPayload), nil
}

func (b *WeatherProviderBreaker) FetchForecast(ctx context.Context, country, city string) (*ports.ForecastPayload, error) {
	result, err := b.circuit.Execute(func() (interface{}, error) {
		return b.provider.FetchForecast(ctx, country, city)
	})
	if err != nil {
		return nil, breakerError(err)
	}
	return result.(*ports.ForecastPayload), nil
}

func (b *WeatherProviderBreaker) GetProviderName() string {
	return b.provider.GetProviderName()
}

// State reports the breaker state for health checks
func (b *WeatherProviderBreaker) State() string {
	return b.circuit.State().String()
}

func breakerError(err error) error {
	if stderrors.Is(err, gobreaker.ErrOpenState) || stderrors.Is(err, gobreaker.ErrTooManyRequests) {
		return errors.NewUpstreamError(0, "circuit breaker open", err)
	}
	return err
}
