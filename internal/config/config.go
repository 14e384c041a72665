package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

type AppConfig struct {
	Port string

	// HTTPTimeout bounds every outbound request, body included.
	HTTPTimeout time.Duration

	// RefreshInterval controls how often the shown location is refreshed (0 = never).
	RefreshInterval time.Duration

	Locale string

	ForecastBaseURL  string
	GeocodingBaseURL string

	// GoogleGeocoderAPIKey switches geocoding to Google when set.
	GoogleGeocoderAPIKey string

	// Outbound rate limit shared by all providers.
	OutboundRateLimit float64 // requests per second (0 = unlimited)
	OutboundRateBurst int

	DefaultLocation weather.PlaceLocation
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.Port = getenvDefault("PORT", "8080")
	cfg.Locale = getenvDefault("LOCALE", "en-US")
	cfg.ForecastBaseURL = os.Getenv("FORECAST_BASE_URL")
	cfg.GeocodingBaseURL = os.Getenv("GEOCODING_BASE_URL")
	cfg.GoogleGeocoderAPIKey = os.Getenv("GOOGLE_GEOCODER_API_KEY")

	timeout, err := getenvDuration("HTTP_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("HTTP_TIMEOUT must be positive, got %s", timeout)
	}
	cfg.HTTPTimeout = timeout

	refresh, err := getenvDuration("REFRESH_INTERVAL", "30m")
	if err != nil {
		return nil, err
	}
	cfg.RefreshInterval = refresh

	rps, err := getenvFloat("OUTBOUND_RATE_LIMIT", 5)
	if err != nil {
		return nil, err
	}
	cfg.OutboundRateLimit = rps
	cfg.OutboundRateBurst = getenvInt("OUTBOUND_RATE_BURST", 5)

	loc, err := loadDefaultLocation()
	if err != nil {
		return nil, err
	}
	cfg.DefaultLocation = loc

	return cfg, nil
}

// loadDefaultLocation reads the place shown on startup; New York unless overridden.
func loadDefaultLocation() (weather.PlaceLocation, error) {
	name := getenvDefault("DEFAULT_LOCATION_NAME", "New York")
	admin1 := getenvDefault("DEFAULT_LOCATION_ADMIN1", "New York")
	country := getenvDefault("DEFAULT_LOCATION_COUNTRY", "United States")

	lat, err := getenvFloat("DEFAULT_LOCATION_LAT", 40.7128)
	if err != nil {
		return weather.PlaceLocation{}, err
	}
	lon, err := getenvFloat("DEFAULT_LOCATION_LON", -74.006)
	if err != nil {
		return weather.PlaceLocation{}, err
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return weather.PlaceLocation{}, fmt.Errorf("default location %f,%f is out of range", lat, lon)
	}

	loc := weather.PlaceLocation{
		Name:      name,
		Admin1:    admin1,
		Country:   country,
		Label:     os.Getenv("DEFAULT_LOCATION_LABEL"),
		Latitude:  lat,
		Longitude: lon,
	}
	if loc.Label == "" {
		loc.Label = weather.BuildLabel(name, "", country)
	}
	return loc, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
