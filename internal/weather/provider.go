package weather

import (
	"context"
)

// RawForecast is the forecast response as the API shapes it: each block is a set
// of parallel columns indexed by its Time column. Nulls inside columns decode to nil.
type RawForecast struct {
	Latitude         float64     `json:"latitude"`
	Longitude        float64     `json:"longitude"`
	Timezone         string      `json:"timezone"`
	UTCOffsetSeconds int         `json:"utc_offset_seconds"`
	Current          *RawCurrent `json:"current"`
	Daily            *RawDaily   `json:"daily"`
	Hourly           *RawHourly  `json:"hourly"`
}

type RawCurrent struct {
	Time                string   `json:"time"`
	Temperature2m       *float64 `json:"temperature_2m"`
	ApparentTemperature *float64 `json:"apparent_temperature"`
	RelativeHumidity2m  *float64 `json:"relative_humidity_2m"`
	WindSpeed10m        *float64 `json:"wind_speed_10m"`
	WeatherCode         *int     `json:"weather_code"`
}

type RawDaily struct {
	Time                        []string   `json:"time"`
	Temperature2mMax            []*float64 `json:"temperature_2m_max"`
	Temperature2mMin            []*float64 `json:"temperature_2m_min"`
	WeatherCode                 []*int     `json:"weather_code"`
	PrecipitationProbabilityMax []*float64 `json:"precipitation_probability_max"`
	Sunrise                     []string   `json:"sunrise"`
	Sunset                      []string   `json:"sunset"`
}

type RawHourly struct {
	Time                     []string   `json:"time"`
	Temperature2m            []*float64 `json:"temperature_2m"`
	ApparentTemperature      []*float64 `json:"apparent_temperature"`
	PrecipitationProbability []*float64 `json:"precipitation_probability"`
	WeatherCode              []*int     `json:"weather_code"`
}

// ForecastSource abstracts the forecast service (Open-Meteo).
type ForecastSource interface {
	Name() string
	FetchForecast(ctx context.Context, lat, lon float64) (*RawForecast, error)
}

// GeoCandidate is one result of a geocoding lookup.
type GeoCandidate struct {
	Name      string  `json:"name"`
	Admin1    string  `json:"admin1"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180"`
}

// GeocodingBackend abstracts a forward/reverse geocoding service.
type GeocodingBackend interface {
	Name() string
	Search(ctx context.Context, name string) ([]GeoCandidate, error)
	Reverse(ctx context.Context, lat, lon float64) ([]GeoCandidate, error)
}
