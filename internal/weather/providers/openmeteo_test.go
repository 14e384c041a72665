package providers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

const forecastBody = `{
  "timezone": "Europe/Paris",
  "utc_offset_seconds": 3600,
  "current": {"time": "2024-01-15T14:00", "temperature_2m": 8.2, "weather_code": 2},
  "daily": {"time": ["2024-01-15"], "temperature_2m_max": [9.1], "temperature_2m_min": [3.0],
            "weather_code": [2], "precipitation_probability_max": [null],
            "sunrise": ["2024-01-15T08:40"], "sunset": ["2024-01-15T17:20"]},
  "hourly": {"time": ["2024-01-15T14:00"], "temperature_2m": [8.2], "apparent_temperature": [null],
             "precipitation_probability": [0], "weather_code": [2]}
}`

func testHTTPConfig() HTTPClientConfig {
	return NewHTTPClientConfig(&http.Client{Timeout: 5 * time.Second}, 0, 0)
}

func TestOpenMeteoFetchForecast(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		expect := map[string]string{
			"latitude":  "48.8566",
			"longitude": "2.3522",
			"timezone":  "auto",
			"current":   "temperature_2m,apparent_temperature,relative_humidity_2m,wind_speed_10m,weather_code",
			"daily":     "temperature_2m_max,temperature_2m_min,weather_code,precipitation_probability_max,sunrise,sunset",
			"hourly":    "temperature_2m,apparent_temperature,precipitation_probability,weather_code",
		}
		for k, v := range expect {
			if got := q.Get(k); got != v {
				t.Errorf("query %s = %q, want %q", k, got, v)
			}
		}
		if r.Header.Get("Accept") != "application/json" {
			t.Errorf("expected Accept application/json, got %q", r.Header.Get("Accept"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(forecastBody))
	}))
	defer server.Close()

	p := NewOpenMeteoProvider(testHTTPConfig(), server.URL)
	raw, err := p.FetchForecast(context.Background(), 48.8566, 2.3522)
	if err != nil {
		t.Fatalf("FetchForecast returned error: %v", err)
	}

	if raw.Timezone != "Europe/Paris" || raw.UTCOffsetSeconds != 3600 {
		t.Errorf("unexpected timezone %q/%d", raw.Timezone, raw.UTCOffsetSeconds)
	}
	if raw.Current == nil || raw.Daily == nil || raw.Hourly == nil {
		t.Fatal("expected all three blocks")
	}
	if raw.Daily.PrecipitationProbabilityMax[0] != nil {
		t.Error("expected null precipitation to decode as nil")
	}
	if *raw.Hourly.PrecipitationProbability[0] != 0 {
		t.Error("expected zero precipitation to decode as 0")
	}
}

func TestOpenMeteoFetchForecastStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": true, "reason": "Latitude must be in range"}`))
	}))
	defer server.Close()

	p := NewOpenMeteoProvider(testHTTPConfig(), server.URL)
	_, err := p.FetchForecast(context.Background(), 0, 0)
	if !errors.Is(err, weather.ErrRequestFailed) {
		t.Fatalf("expected ErrRequestFailed, got %v", err)
	}
	if !errors.Is(err, errUnexpectedStatus) {
		t.Errorf("expected status error to be wrapped, got %v", err)
	}
}

func TestOpenMeteoFetchForecastNoRetry(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	p := NewOpenMeteoProvider(testHTTPConfig(), server.URL)
	_, err := p.FetchForecast(context.Background(), 0, 0)
	if !errors.Is(err, errServerError) {
		t.Fatalf("expected server error, got %v", err)
	}
	if calls != 1 {
		t.Errorf("expected exactly one request, got %d", calls)
	}
}

func TestOpenMeteoFetchForecastMissingBlockDecodes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"current": {"time": "2024-01-15T14:00"}, "daily": {"time": []}}`))
	}))
	defer server.Close()

	p := NewOpenMeteoProvider(testHTTPConfig(), server.URL)
	raw, err := p.FetchForecast(context.Background(), 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if raw.Hourly != nil {
		t.Error("expected missing hourly block to stay nil")
	}
}

func TestDoRequestCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewOpenMeteoProvider(testHTTPConfig(), "http://127.0.0.1:1")
	_, err := p.FetchForecast(ctx, 0, 0)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestDoRequestWithoutClient(t *testing.T) {
	p := NewOpenMeteoProvider(HTTPClientConfig{}, "http://example.invalid")
	_, err := p.FetchForecast(context.Background(), 0, 0)
	if !errors.Is(err, errNoHTTPClient) {
		t.Fatalf("expected errNoHTTPClient, got %v", err)
	}
}

func TestNewHTTPClientConfigLimiter(t *testing.T) {
	cfg := NewHTTPClientConfig(http.DefaultClient, 0, 0)
	if cfg.Limiter != nil {
		t.Error("expected no limiter when rps is zero")
	}

	cfg = NewHTTPClientConfig(http.DefaultClient, 2, 0)
	if cfg.Limiter == nil {
		t.Fatal("expected limiter")
	}
	if cfg.Limiter.Burst() != 1 {
		t.Errorf("expected burst 1, got %d", cfg.Limiter.Burst())
	}
}

func TestFormatCoord(t *testing.T) {
	tests := []struct {
		input    float64
		expected string
	}{
		{40.7128, "40.7128"},
		{-74.006, "-74.006"},
		{10.0, "10"},
		{0, "0"},
	}

	for _, tt := range tests {
		if got := formatCoord(tt.input); got != tt.expected {
			t.Errorf("formatCoord(%f) = %s, expected %s", tt.input, got, tt.expected)
		}
	}
}

func TestOpenMeteoFetchForecastDecodeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"current": `))
	}))
	defer server.Close()

	p := NewOpenMeteoProvider(testHTTPConfig(), server.URL)
	_, err := p.FetchForecast(context.Background(), 0, 0)
	if !errors.Is(err, weather.ErrRequestFailed) {
		t.Fatalf("expected ErrRequestFailed, got %v", err)
	}
}

func TestCanceledRequestsDoNotTripBreaker(t *testing.T) {
	const canceled = 6

	var calls atomic.Int32
	started := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) <= canceled {
			started <- struct{}{}
			<-r.Context().Done()
			return
		}
		w.Write([]byte(forecastBody))
	}))
	defer server.Close()

	p := NewOpenMeteoProvider(testHTTPConfig(), server.URL)

	for i := 0; i < canceled; i++ {
		ctx, cancel := context.WithCancel(context.Background())
		errCh := make(chan error, 1)
		go func() {
			_, err := p.FetchForecast(ctx, 0, 0)
			errCh <- err
		}()
		<-started
		cancel()
		if err := <-errCh; !errors.Is(err, context.Canceled) {
			t.Fatalf("request %d: expected context.Canceled, got %v", i, err)
		}
	}

	if state := p.circuit.State(); state != gobreaker.StateClosed {
		t.Fatalf("expected closed breaker after cancellations, got %s", state)
	}
	if _, err := p.FetchForecast(context.Background(), 0, 0); err != nil {
		t.Fatalf("expected request after cancellations to succeed, got %v", err)
	}
}

func TestServerErrorsStillTripBreaker(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	p := NewOpenMeteoProvider(testHTTPConfig(), server.URL)
	for i := 0; i < 6; i++ {
		p.FetchForecast(context.Background(), 0, 0)
	}

	_, err := p.FetchForecast(context.Background(), 0, 0)
	if !errors.Is(err, errCircuitOpen) {
		t.Fatalf("expected errCircuitOpen, got %v", err)
	}
}
