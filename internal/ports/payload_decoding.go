package ports

import (
	"encoding/json"
	"fmt"
	"math"
)

// UnmarshalJSON decodes each field on its own so one mistyped value does not
// discard the rest of the payload. Only a body that is not an object fails.
func (p *CurrentWeatherPayload) UnmarshalJSON(data []byte) error {
	obj, err := decodeObject(data)
	if err != nil {
		return err
	}
	d := &fieldDecoder{}
	*p = d.weather(obj)
	p.Invalid = d.invalid
	return nil
}

// UnmarshalJSON decodes the weather fields leniently plus the item's dt_txt
func (p *ForecastItemPayload) UnmarshalJSON(data []byte) error {
	obj, err := decodeObject(data)
	if err != nil {
		return err
	}
	d := &fieldDecoder{}
	p.CurrentWeatherPayload = d.weather(obj)
	p.DtTxt = d.str(obj, "dt_txt", "dt_txt")
	p.Invalid = d.invalid
	return nil
}

func decodeObject(data []byte) (map[string]json.RawMessage, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, fmt.Errorf("weather payload is null")
	}
	return obj, nil
}

type fieldDecoder struct {
	invalid []string
}

func (d *fieldDecoder) reject(path string) {
	d.invalid = append(d.invalid, path)
}

func (d *fieldDecoder) weather(obj map[string]json.RawMessage) CurrentWeatherPayload {
	var out CurrentWeatherPayload
	if name := d.str(obj, "name", "name"); name != nil {
		out.Name = *name
	}

	if main := d.object(obj, "main", "main"); main != nil {
		out.Main = &MainReadings{
			Temp:     d.float(main, "temp", "main.temp"),
			Pressure: d.float(main, "pressure", "main.pressure"),
			Humidity: d.float(main, "humidity", "main.humidity"),
		}
	}

	out.Weather = d.conditions(obj)

	if sys := d.object(obj, "sys", "sys"); sys != nil {
		out.Sys = &SunTimes{
			Sunrise: d.integer(sys, "sunrise", "sys.sunrise"),
			Sunset:  d.integer(sys, "sunset", "sys.sunset"),
		}
	}

	if coord := d.object(obj, "coord", "coord"); coord != nil {
		out.Coord = &Coordinates{
			Lat: d.float(coord, "lat", "coord.lat"),
			Lon: d.float(coord, "lon", "coord.lon"),
		}
	}
	return out
}

func (d *fieldDecoder) conditions(obj map[string]json.RawMessage) []WeatherCondition {
	raw, ok := present(obj, "weather")
	if !ok {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		d.reject("weather")
		return nil
	}

	out := make([]WeatherCondition, 0, len(items))
	for i, item := range items {
		path := fmt.Sprintf("weather[%d]", i)
		var cond map[string]json.RawMessage
		if err := json.Unmarshal(item, &cond); err != nil || cond == nil {
			d.reject(path)
			continue
		}
		var id *int
		if v := d.integer(cond, "id", path+".id"); v != nil {
			n := int(*v)
			id = &n
		}
		out = append(out, WeatherCondition{
			ID:          id,
			Description: d.str(cond, "description", path+".description"),
		})
	}
	return out
}

// object returns nil for an absent, null or non-object value
func (d *fieldDecoder) object(obj map[string]json.RawMessage, key, path string) map[string]json.RawMessage {
	raw, ok := present(obj, key)
	if !ok {
		return nil
	}
	var out map[string]json.RawMessage
	if err := json.Unmarshal(raw, &out); err != nil {
		d.reject(path)
		return nil
	}
	return out
}

func (d *fieldDecoder) float(obj map[string]json.RawMessage, key, path string) *float64 {
	raw, ok := present(obj, key)
	if !ok {
		return nil
	}
	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		d.reject(path)
		return nil
	}
	return &v
}

// integer accepts integral floats such as 803.0
func (d *fieldDecoder) integer(obj map[string]json.RawMessage, key, path string) *int64 {
	v := d.float(obj, key, path)
	if v == nil {
		return nil
	}
	if *v != math.Trunc(*v) || math.Abs(*v) > 1<<53 {
		d.reject(path)
		return nil
	}
	n := int64(*v)
	return &n
}

func (d *fieldDecoder) str(obj map[string]json.RawMessage, key, path string) *string {
	raw, ok := present(obj, key)
	if !ok {
		return nil
	}
	var v string
	if err := json.Unmarshal(raw, &v); err != nil {
		d.reject(path)
		return nil
	}
	return &v
}

// present reports whether key holds a non-null value
func present(obj map[string]json.RawMessage, key string) (json.RawMessage, bool) {
	raw, ok := obj[key]
	if !ok || string(raw) == "null" {
		return nil, false
	}
	return raw, true
}
