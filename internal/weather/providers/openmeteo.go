package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/i474232898/weather-dashboard/internal/weather"
	"github.com/sony/gobreaker"
)

const defaultForecastURL = "https://api.open-meteo.com/v1/forecast"

// Field lists requested for each forecast block.
var (
	currentFields = []string{"temperature_2m", "apparent_temperature", "relative_humidity_2m", "wind_speed_10m", "weather_code"}
	dailyFields   = []string{"temperature_2m_max", "temperature_2m_min", "weather_code", "precipitation_probability_max", "sunrise", "sunset"}
	hourlyFields  = []string{"temperature_2m", "apparent_temperature", "precipitation_probability", "weather_code"}
)

// OpenMeteoProvider implements weather.ForecastSource for Open-Meteo.
type OpenMeteoProvider struct {
	name    string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

// NewOpenMeteoProvider creates a forecast provider. An empty baseURL selects the public API.
func NewOpenMeteoProvider(httpCfg HTTPClientConfig, baseURL string) *OpenMeteoProvider {
	if baseURL == "" {
		baseURL = defaultForecastURL
	}
	return &OpenMeteoProvider{
		name:    "openmeteo",
		baseURL: baseURL,
		httpCfg: httpCfg,
		circuit: newCircuitBreaker("openmeteo-forecast"),
	}
}

func (p *OpenMeteoProvider) Name() string {
	return p.name
}

// FetchForecast requests current, daily and hourly data in the location's own timezone.
func (p *OpenMeteoProvider) FetchForecast(ctx context.Context, lat, lon float64) (*weather.RawForecast, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", formatCoord(lat))
		values.Set("longitude", formatCoord(lon))
		values.Set("timezone", "auto")
		values.Set("current", strings.Join(currentFields, ","))
		values.Set("daily", strings.Join(dailyFields, ","))
		values.Set("hourly", strings.Join(hourlyFields, ","))

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequest(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", weather.ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	var payload weather.RawForecast
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decode forecast response: %w", weather.ErrRequestFailed, err)
	}
	return &payload, nil
}
