package weather

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"wapi.app/pkg/errors"
)

// WeatherRequest represents a request for weather information.
// A nil field means the caller did not supply that parameter.
type WeatherRequest struct {
	Country *string
	City    *string
}

// NewWeatherRequest builds a request from present parameter values
func NewWeatherRequest(country, city string) WeatherRequest {
	return WeatherRequest{Country: &country, City: &city}
}

// LocationKey is the normalized (city, country) pair addressing a cache entry
type LocationKey struct {
	City    string
	Country string
}

// NewLocationKey lowercases both parts so caller casing never affects cache hits
func NewLocationKey(city, country string) LocationKey {
	return LocationKey{
		City:    strings.ToLower(city),
		Country: strings.ToLower(country),
	}
}

// String returns the cache key form of the location
func (k LocationKey) String() string {
	return fmt.Sprintf("weather:%s:%s", k.Country, k.City)
}

// TemperatureUnit selects how temperatures are rendered
type TemperatureUnit int

const (
	TemperatureUnitBoth TemperatureUnit = iota
	TemperatureUnitCelsius
	TemperatureUnitFahrenheit
)

// String returns the configuration name of the unit
func (u TemperatureUnit) String() string {
	switch u {
	case TemperatureUnitBoth:
		return "both"
	case TemperatureUnitCelsius:
		return "celsius"
	case TemperatureUnitFahrenheit:
		return "fahrenheit"
	default:
		return "unknown"
	}
}

// IsValid reports whether u is one of the supported units
func (u TemperatureUnit) IsValid() bool {
	return u == TemperatureUnitBoth || u == TemperatureUnitCelsius || u == TemperatureUnitFahrenheit
}

// ParseTemperatureUnit converts a configuration value to a TemperatureUnit. Empty means both.
func ParseTemperatureUnit(s string) (TemperatureUnit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "both":
		return TemperatureUnitBoth, nil
	case "celsius":
		return TemperatureUnitCelsius, nil
	case "fahrenheit":
		return TemperatureUnitFahrenheit, nil
	default:
		return TemperatureUnitBoth, errors.NewConfigurationError(
			fmt.Sprintf("unsupported temperature unit %q", s), nil)
	}
}

// NormalizedWeather is the human-readable form of one provider reading.
// Empty fields are omitted from the JSON output.
type NormalizedWeather struct {
	Temperature    string `json:"temperature,omitempty"`
	Pressure       string `json:"pressure,omitempty"`
	Humidity       string `json:"humidity,omitempty"`
	Cloudiness     string `json:"cloudiness,omitempty"`
	Sunrise        string `json:"sunrise,omitempty"`
	Sunset         string `json:"sunset,omitempty"`
	GeoCoordinates string `json:"geo_coordinates,omitempty"`
}

// ForecastEntry is one normalized forecast item with its provider timestamp
type ForecastEntry struct {
	NormalizedWeather
	Datetime string `json:"datetime,omitempty"`
}

// WeatherResult is the combined current weather and forecast for a location
type WeatherResult struct {
	LocationName  string `json:"location_name"`
	RequestedTime string `json:"requested_time"`
	NormalizedWeather
	Forecast []ForecastEntry `json:"forecast"`
}

// Clone returns a copy that shares no slices with r
func (r *WeatherResult) Clone() *WeatherResult {
	if r == nil {
		return nil
	}
	cp := *r
	cp.Forecast = make([]ForecastEntry, len(r.Forecast))
	copy(cp.Forecast, r.Forecast)
	return &cp
}

// LocationName renders "<City>, <COUNTRY>" with the city capitalized
func LocationName(city, country string) string {
	return fmt.Sprintf("%s, %s", capitalize(strings.ToLower(city)), strings.ToUpper(country))
}

// capitalize upper-cases the first letter and keeps the remainder as provided
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
