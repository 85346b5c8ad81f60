package weather

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"

	"wapi.app/internal/ports"
	"wapi.app/pkg/errors"
)

const (
	kelvinOffset           = 273.15
	fahrenheitKelvinOffset = 459.67

	cloudinessMinID = 800
	cloudinessMaxID = 900

	clockFormat = "15:04"
)

// Parser normalizes provider payloads into NormalizedWeather records
type Parser struct {
	unit     TemperatureUnit
	location *time.Location
	logger   ports.Logger
}

// NewParser creates a parser rendering temperatures in unit and clock times in location.
// A nil location means the process local zone.
func NewParser(unit TemperatureUnit, location *time.Location, logger ports.Logger) (*Parser, error) {
	if !unit.IsValid() {
		return nil, errors.NewConfigurationError(fmt.Sprintf("unsupported temperature unit %d", unit), nil)
	}
	if logger == nil {
		return nil, errors.NewConfigurationError("logger is required", nil)
	}
	if location == nil {
		location = time.Local
	}

	return &Parser{
		unit:     unit,
		location: location,
		logger:   logger,
	}, nil
}

// ParseWeather normalizes one payload. Missing or mistyped source fields are logged and omitted.
// Forecast items never carry sunrise, sunset or coordinates.
func (p *Parser) ParseWeather(raw *ports.CurrentWeatherPayload, isForecastItem bool) NormalizedWeather {
	var out NormalizedWeather
	if raw == nil {
		p.logger.Warn("Empty weather payload")
		return out
	}

	for _, field := range raw.Invalid {
		p.logger.Warn("Invalid field in weather payload", ports.F("field", field))
	}

	p.parseMain(raw.Main, &out)
	p.parseCloudiness(raw.Weather, &out)

	if isForecastItem {
		return out
	}

	p.parseSunTimes(raw.Sys, &out)
	p.parseCoordinates(raw.Coord, &out)
	return out
}

// ParseForecast normalizes every forecast item in provider order
func (p *Parser) ParseForecast(raw *ports.ForecastPayload) ([]ForecastEntry, error) {
	if raw == nil || raw.List == nil {
		return nil, errors.NewParseError("forecast payload has no list", nil)
	}

	entries := make([]ForecastEntry, 0, len(raw.List))
	for i, item := range raw.List {
		if !isJSONObject(item) {
			return nil, errors.NewParseError(fmt.Sprintf("forecast item %d is not an object", i), nil)
		}

		var payload ports.ForecastItemPayload
		if err := json.Unmarshal(item, &payload); err != nil {
			return nil, errors.NewParseError(fmt.Sprintf("forecast item %d is malformed", i), err)
		}

		entry := ForecastEntry{
			NormalizedWeather: p.ParseWeather(&payload.CurrentWeatherPayload, true),
		}
		if payload.DtTxt != nil {
			entry.Datetime = *payload.DtTxt
		} else {
			p.logger.Warn("Missing field in forecast item", ports.F("field", "dt_txt"), ports.F("index", i))
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

func (p *Parser) parseMain(main *ports.MainReadings, out *NormalizedWeather) {
	if main == nil {
		main = &ports.MainReadings{}
	}

	if main.Temp != nil {
		out.Temperature = FormatTemperature(*main.Temp, p.unit)
	} else {
		p.warnMissing("main.temp")
	}

	if main.Pressure != nil {
		out.Pressure = formatNumber(*main.Pressure) + " hpa"
	} else {
		p.warnMissing("main.pressure")
	}

	if main.Humidity != nil {
		out.Humidity = formatNumber(*main.Humidity) + "%"
	} else {
		p.warnMissing("main.humidity")
	}
}

func (p *Parser) parseCloudiness(conditions []ports.WeatherCondition, out *NormalizedWeather) {
	for _, c := range conditions {
		if c.ID == nil || *c.ID < cloudinessMinID || *c.ID >= cloudinessMaxID {
			continue
		}
		if c.Description == nil {
			p.warnMissing("weather.description")
			return
		}
		out.Cloudiness = capitalize(*c.Description)
		return
	}
	p.logger.Debug("No cloudiness condition in payload")
}

func (p *Parser) parseSunTimes(sys *ports.SunTimes, out *NormalizedWeather) {
	if sys == nil {
		sys = &ports.SunTimes{}
	}

	if sys.Sunrise != nil {
		out.Sunrise = p.formatClock(*sys.Sunrise)
	} else {
		p.warnMissing("sys.sunrise")
	}

	if sys.Sunset != nil {
		out.Sunset = p.formatClock(*sys.Sunset)
	} else {
		p.warnMissing("sys.sunset")
	}
}

func (p *Parser) parseCoordinates(coord *ports.Coordinates, out *NormalizedWeather) {
	if coord == nil || coord.Lat == nil || coord.Lon == nil {
		p.warnMissing("coord")
		return
	}
	out.GeoCoordinates = fmt.Sprintf("[%.2f, %.2f]", *coord.Lat, *coord.Lon)
}

func (p *Parser) formatClock(unix int64) string {
	return time.Unix(unix, 0).In(p.location).Format(clockFormat)
}

func (p *Parser) warnMissing(field string) {
	p.logger.Warn("Missing field in weather payload", ports.F("field", field))
}

// FormatTemperature renders a Kelvin reading in the requested unit
func FormatTemperature(kelvin float64, unit TemperatureUnit) string {
	celsius := int64(math.Round(kelvin - kelvinOffset))
	fahrenheit := int64(math.Round(kelvin*9/5 - fahrenheitKelvinOffset))

	switch unit {
	case TemperatureUnitCelsius:
		return fmt.Sprintf("%d °C", celsius)
	case TemperatureUnitFahrenheit:
		return fmt.Sprintf("%d °F", fahrenheit)
	default:
		return fmt.Sprintf("%d °F, %d °C", fahrenheit, celsius)
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func isJSONObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}
