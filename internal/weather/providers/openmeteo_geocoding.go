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

const defaultGeocodingURL = "https://geocoding-api.open-meteo.com/v1"

// OpenMeteoGeocoder implements weather.GeocodingBackend for the Open-Meteo geocoding API.
type OpenMeteoGeocoder struct {
	name     string
	baseURL  string
	language string
	httpCfg  HTTPClientConfig
	circuit  *gobreaker.CircuitBreaker
}

// NewOpenMeteoGeocoder creates a geocoding backend. An empty baseURL selects the public API.
func NewOpenMeteoGeocoder(httpCfg HTTPClientConfig, baseURL string) *OpenMeteoGeocoder {
	if baseURL == "" {
		baseURL = defaultGeocodingURL
	}
	return &OpenMeteoGeocoder{
		name:     "openmeteo-geocoding",
		baseURL:  strings.TrimRight(baseURL, "/"),
		language: "en",
		httpCfg:  httpCfg,
		circuit:  newCircuitBreaker("openmeteo-geocoding"),
	}
}

func (g *OpenMeteoGeocoder) Name() string {
	return g.name
}

// Search performs a forward lookup and returns at most one candidate.
func (g *OpenMeteoGeocoder) Search(ctx context.Context, name string) ([]weather.GeoCandidate, error) {
	values := url.Values{}
	values.Set("name", name)
	values.Set("count", "1")
	values.Set("language", g.language)
	values.Set("format", "json")

	return g.lookup(ctx, "search", values)
}

// Reverse performs a reverse lookup for a coordinate pair.
func (g *OpenMeteoGeocoder) Reverse(ctx context.Context, lat, lon float64) ([]weather.GeoCandidate, error) {
	values := url.Values{}
	values.Set("latitude", formatCoord(lat))
	values.Set("longitude", formatCoord(lon))
	values.Set("count", "1")
	values.Set("language", g.language)

	return g.lookup(ctx, "reverse", values)
}

func (g *OpenMeteoGeocoder) lookup(ctx context.Context, endpoint string, values url.Values) ([]weather.GeoCandidate, error) {
	buildRequest := func() (*http.Request, error) {
		u := fmt.Sprintf("%s/%s?%s", g.baseURL, endpoint, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequest(ctx, g.httpCfg, g.circuit, buildRequest)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", weather.ErrLookupUnavailable, err)
	}
	defer resp.Body.Close()

	// A missing "results" key means no match.
	var payload struct {
		Results []weather.GeoCandidate `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decode %s response: %w", weather.ErrLookupUnavailable, endpoint, err)
	}
	return payload.Results, nil
}
