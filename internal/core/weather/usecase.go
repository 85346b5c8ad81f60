package weather

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
	"wapi.app/internal/ports"
	"wapi.app/pkg/errors"
	"wapi.app/pkg/validation"
)

const requestedTimeFormat = "2006-01-02 15:04:05"

type UseCase struct {
	weatherProvider ports.WeatherProvider
	cache           *ResultCache
	parser          *Parser
	config          ports.WeatherConfig
	logger          ports.Logger
	metrics         ports.MetricsCollector
	clock           func() time.Time

	inflight singleflight.Group
}

type UseCaseDependencies struct {
	WeatherProvider ports.WeatherProvider
	Cache           ports.CacheProvider
	Config          ports.WeatherConfig
	Logger          ports.Logger
	Metrics         ports.MetricsCollector

	// Clock defaults to time.Now
	Clock func() time.Time
}

func NewUseCase(deps UseCaseDependencies) (*UseCase, error) {
	if deps.WeatherProvider == nil {
		return nil, errors.NewConfigurationError("weather provider is required", nil)
	}
	if deps.Cache == nil {
		return nil, errors.NewConfigurationError("cache is required", nil)
	}
	if deps.Logger == nil {
		return nil, errors.NewConfigurationError("logger is required", nil)
	}
	if deps.Metrics == nil {
		return nil, errors.NewConfigurationError("metrics is required", nil)
	}

	unit, err := ParseTemperatureUnit(deps.Config.TemperatureUnit)
	if err != nil {
		return nil, err
	}

	parser, err := NewParser(unit, deps.Config.Location, deps.Logger)
	if err != nil {
		return nil, err
	}

	cache, err := NewResultCache(deps.Cache, deps.Config.CacheTTL)
	if err != nil {
		return nil, err
	}

	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}

	return &UseCase{
		weatherProvider: deps.WeatherProvider,
		cache:           cache,
		parser:          parser,
		config:          deps.Config,
		logger:          deps.Logger,
		metrics:         deps.Metrics,
		clock:           clock,
	}, nil
}

// GetWeather validates the request, serves it from cache when possible and otherwise
// fetches current weather and forecast from the provider.
func (uc *UseCase) GetWeather(ctx context.Context, request WeatherRequest) (*WeatherResult, error) {
	problems := validation.ValidateCity(request.City)
	problems = append(problems, validation.ValidateCountry(request.Country)...)
	if len(problems) > 0 {
		return nil, errors.NewInvalidParametersError(problems)
	}

	key := NewLocationKey(*request.City, *request.Country)

	cached, err := uc.cache.Get(ctx, key)
	if err == nil {
		uc.metrics.RecordCacheHit(ctx)
		uc.logger.Info("Cache hit", ports.F("city", key.City), ports.F("country", key.Country))
		return cached, nil
	}
	if !errors.IsNotFoundError(err) {
		uc.logger.Warn("Cache lookup failed", ports.F("key", key.String()), ports.F("error", err))
	}
	uc.metrics.RecordCacheMiss(ctx)

	// The shared fetch outlives any single caller; each caller only stops waiting on its own context.
	flightCtx := context.WithoutCancel(ctx)
	ch := uc.inflight.DoChan(key.String(), func() (interface{}, error) {
		return uc.fetchAndStore(flightCtx, key)
	})

	select {
	case <-ctx.Done():
		uc.logger.Warn("Weather lookup abandoned by caller",
			ports.F("key", key.String()),
			ports.F("error", ctx.Err()))
		return nil, errors.NewUpstreamError(0, "weather lookup cancelled", ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		result := res.Val.(*WeatherResult)
		if res.Shared {
			result = result.Clone()
		}
		return result, nil
	}
}

func (uc *UseCase) fetchAndStore(ctx context.Context, key LocationKey) (*WeatherResult, error) {
	requestedAt := uc.clock()
	if uc.config.Location != nil {
		requestedAt = requestedAt.In(uc.config.Location)
	}

	var (
		current  *ports.CurrentWeatherPayload
		forecast *ports.ForecastPayload
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		current, err = uc.weatherProvider.FetchCurrent(gctx, key.Country, key.City)
		return err
	})
	g.Go(func() error {
		var err error
		forecast, err = uc.weatherProvider.FetchForecast(gctx, key.Country, key.City)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	entries, err := uc.parser.ParseForecast(forecast)
	if err != nil {
		return nil, err
	}

	result := &WeatherResult{
		LocationName:      LocationName(key.City, key.Country),
		RequestedTime:     requestedAt.Format(requestedTimeFormat),
		NormalizedWeather: uc.parser.ParseWeather(current, false),
		Forecast:          entries,
	}

	if err := uc.cache.Set(ctx, key, result); err != nil {
		uc.logger.Warn("Failed to cache weather result",
			ports.F("key", key.String()),
			ports.F("error", err))
	}

	uc.logger.Info("Weather retrieved from provider",
		ports.F("provider", uc.weatherProvider.GetProviderName()),
		ports.F("location", result.LocationName),
		ports.F("forecast_items", len(entries)))
	return result, nil
}
