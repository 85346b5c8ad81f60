package weather

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"wapi.app/pkg/errors"
)

func TestNewLocationKey(t *testing.T) {
	a := NewLocationKey("MonteVideo", "uy")
	b := NewLocationKey("montevideo", "UY")

	assert.Equal(t, a, b)
	assert.Equal(t, "weather:uy:montevideo", a.String())
}

func TestParseTemperatureUnit(t *testing.T) {
	tests := []struct {
		input    string
		expected TemperatureUnit
	}{
		{"", TemperatureUnitBoth},
		{"both", TemperatureUnitBoth},
		{"Celsius", TemperatureUnitCelsius},
		{" fahrenheit ", TemperatureUnitFahrenheit},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			unit, err := ParseTemperatureUnit(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, unit)
		})
	}

	_, err := ParseTemperatureUnit("kelvin")
	assert.True(t, errors.IsConfigurationError(err))
}

func TestLocationName(t *testing.T) {
	assert.Equal(t, "Montevideo, UY", LocationName("montevideo", "uy"))
	assert.Equal(t, "Buenos aires, AR", LocationName("BUENOS AIRES", "ar"))
	assert.Equal(t, ", UY", LocationName("", "uy"))
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Broken clouds", capitalize("broken clouds"))
	assert.Equal(t, "Ñandú", capitalize("ñandú"))
	assert.Equal(t, "", capitalize(""))
}

func TestWeatherResult_JSONShape(t *testing.T) {
	result := WeatherResult{
		LocationName:  "Montevideo, UY",
		RequestedTime: "2024-01-01 10:00:00",
		NormalizedWeather: NormalizedWeather{
			Temperature: "84 °F, 29 °C",
			Sunrise:     "06:07",
		},
		Forecast: []ForecastEntry{
			{NormalizedWeather: NormalizedWeather{Temperature: "80 °F, 27 °C"}, Datetime: "2024-01-01 12:00:00"},
		},
	}

	data, err := json.Marshal(result)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "Montevideo, UY", decoded["location_name"])
	assert.Equal(t, "84 °F, 29 °C", decoded["temperature"])
	assert.Equal(t, "06:07", decoded["sunrise"])
	assert.NotContains(t, decoded, "pressure")
	assert.NotContains(t, decoded, "geo_coordinates")

	forecast := decoded["forecast"].([]interface{})
	require.Len(t, forecast, 1)
	item := forecast[0].(map[string]interface{})
	assert.Equal(t, "2024-01-01 12:00:00", item["datetime"])
	assert.NotContains(t, item, "sunrise")
}

func TestWeatherResult_Clone(t *testing.T) {
	original := &WeatherResult{
		LocationName: "Montevideo, UY",
		Forecast:     []ForecastEntry{{Datetime: "a"}},
	}

	cp := original.Clone()
	cp.Forecast[0].Datetime = "b"

	assert.Equal(t, "a", original.Forecast[0].Datetime)
	assert.Nil(t, (*WeatherResult)(nil).Clone())
}
