// Package external provides adapters for the upstream weather API and cache backends
package external

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"wapi.app/internal/ports"
	"wapi.app/pkg/errors"
)

const (
	defaultOpenWeatherMapURL = "https://api.openweathermap.org/data/2.5"
	defaultRequestTimeout    = 10 * time.Second
	maxResponseBytes         = 4 << 20

	currentWeatherEndpoint = "weather"
	forecastEndpoint       = "forecast"
)

// HTTPClient interface for HTTP requests (for testing)
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// OpenWeatherMapProviderAdapter implements WeatherProvider port for OpenWeatherMap
type OpenWeatherMapProviderAdapter struct {
	apiKey  string
	baseURL string
	client  HTTPClient
	logger  ports.Logger
}

// OpenWeatherMapProviderParams holds parameters for creating OpenWeatherMap provider
type OpenWeatherMapProviderParams struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
	Client  HTTPClient
	Logger  ports.Logger
}

// openWeatherMapError is the body OpenWeatherMap sends with non-200 responses
type openWeatherMapError struct {
	Message string `json:"message"`
}

// NewOpenWeatherMapProviderAdapter creates a new OpenWeatherMap provider adapter
func NewOpenWeatherMapProviderAdapter(params OpenWeatherMapProviderParams) (*OpenWeatherMapProviderAdapter, error) {
	if params.APIKey == "" {
		return nil, errors.NewConfigurationError("OpenWeatherMap API key is required", nil)
	}
	if params.Logger == nil {
		return nil, errors.NewConfigurationError("logger is required", nil)
	}

	baseURL := strings.TrimRight(params.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultOpenWeatherMapURL
	}

	client := params.Client
	if client == nil {
		timeout := params.Timeout
		if timeout <= 0 {
			timeout = defaultRequestTimeout
		}
		client = &http.Client{Timeout: timeout}
	}

	return &OpenWeatherMapProviderAdapter{
		apiKey:  params.APIKey,
		baseURL: baseURL,
		client:  client,
		logger:  params.Logger,
	}, nil
}

// FetchCurrent retrieves current conditions for city in country
func (p *OpenWeatherMapProviderAdapter) FetchCurrent(ctx context.Context, country, city string) (*ports.CurrentWeatherPayload, error) {
	var payload ports.CurrentWeatherPayload
	if err := p.get(ctx, currentWeatherEndpoint, country, city, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// FetchForecast retrieves the forecast list for city in country
func (p *OpenWeatherMapProviderAdapter) FetchForecast(ctx context.Context, country, city string) (*ports.ForecastPayload, error) {
	var payload ports.ForecastPayload
	if err := p.get(ctx, forecastEndpoint, country, city, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// GetProviderName returns the name of this weather provider
func (p *OpenWeatherMapProviderAdapter) GetProviderName() string {
	return "openweathermap"
}

func (p *OpenWeatherMapProviderAdapter) get(ctx context.Context, endpoint, country, city string, out interface{}) error {
	query := url.Values{}
	query.Set("q", city+","+country)
	query.Set("appid", p.apiKey)
	requestURL := fmt.Sprintf("%s/%s?%s", p.baseURL, endpoint, query.Encode())

	p.logger.Info("Requesting OpenWeatherMap",
		ports.F("endpoint", endpoint),
		ports.F("city", city),
		ports.F("country", country))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return errors.NewUpstreamError(0, "failed to build OpenWeatherMap request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return errors.NewUpstreamError(0, "failed to call OpenWeatherMap", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			p.logger.Warn("Failed to close OpenWeatherMap response body", ports.F("error", closeErr))
		}
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return errors.NewUpstreamError(resp.StatusCode, "failed to read OpenWeatherMap response", err)
	}

	if resp.StatusCode != http.StatusOK {
		message := providerMessage(body)
		fields := []ports.Field{
			ports.F("endpoint", endpoint),
			ports.F("status", resp.StatusCode),
		}
		if message != "" {
			fields = append(fields, ports.F("message", message))
		}
		p.logger.Warn("OpenWeatherMap returned non-OK status", fields...)
		return classifyStatus(resp.StatusCode, message, city, country)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return errors.NewParseError(fmt.Sprintf("failed to decode OpenWeatherMap %s response", endpoint), err)
	}
	return nil
}

func classifyStatus(status int, message, city, country string) error {
	switch status {
	case http.StatusUnauthorized:
		if message == "" {
			message = "invalid API key"
		}
		return errors.NewInvalidAPIKeyError(message)
	case http.StatusNotFound:
		return errors.NewCityNotFoundError(city, country)
	default:
		if message == "" {
			message = fmt.Sprintf("OpenWeatherMap returned status %d", status)
		}
		return errors.NewUpstreamError(status, message, nil)
	}
}

// providerMessage extracts the "message" field from an error body, if any
func providerMessage(body []byte) string {
	var apiErr openWeatherMapError
	if err := json.Unmarshal(body, &apiErr); err != nil {
		return ""
	}
	return apiErr.Message
}
