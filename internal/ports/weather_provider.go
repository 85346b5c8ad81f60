package ports

import (
	"context"
	"encoding/json"
)

// MainReadings holds the "main" block of a provider payload. Temperatures are in Kelvin.
type MainReadings struct {
	Temp     *float64 `json:"temp,omitempty"`
	Pressure *float64 `json:"pressure,omitempty"`
	Humidity *float64 `json:"humidity,omitempty"`
}

// WeatherCondition is one entry of the provider's "weather" list
type WeatherCondition struct {
	ID          *int    `json:"id,omitempty"`
	Description *string `json:"description,omitempty"`
}

// SunTimes holds sunrise and sunset as Unix seconds
type SunTimes struct {
	Sunrise *int64 `json:"sunrise,omitempty"`
	Sunset  *int64 `json:"sunset,omitempty"`
}

// Coordinates is the provider's "coord" block
type Coordinates struct {
	Lat *float64 `json:"lat,omitempty"`
	Lon *float64 `json:"lon,omitempty"`
}

// CurrentWeatherPayload is the body of a successful current-weather response.
// Every block is optional; absent fields stay nil. A field of the wrong JSON type is
// dropped and its path recorded in Invalid instead of failing the whole payload.
type CurrentWeatherPayload struct {
	Name    string             `json:"name,omitempty"`
	Main    *MainReadings      `json:"main,omitempty"`
	Weather []WeatherCondition `json:"weather,omitempty"`
	Sys     *SunTimes          `json:"sys,omitempty"`
	Coord   *Coordinates       `json:"coord,omitempty"`

	Invalid []string `json:"-"`
}

// ForecastItemPayload is one element of a forecast list
type ForecastItemPayload struct {
	CurrentWeatherPayload
	DtTxt *string `json:"dt_txt,omitempty"`
}

// ForecastPayload is the body of a successful forecast response. List items are kept raw
// so each one can be type-checked before parsing.
type ForecastPayload struct {
	List []json.RawMessage `json:"list"`
}

// WeatherProvider defines the contract for the upstream weather API
type WeatherProvider interface {
	FetchCurrent(ctx context.Context, country, city string) (*CurrentWeatherPayload, error)
	FetchForecast(ctx context.Context, country, city string) (*ForecastPayload, error)
	GetProviderName() string
}
