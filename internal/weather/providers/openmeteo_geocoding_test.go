package providers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

func TestOpenMeteoGeocoderSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("expected /search, got %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("name") != "Paris" || q.Get("count") != "1" || q.Get("language") != "en" || q.Get("format") != "json" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		w.Write([]byte(`{"results": [{"id": 2988507, "name": "Paris", "admin1": "Île-de-France",
			"country": "France", "latitude": 48.85341, "longitude": 2.3488}], "generationtime_ms": 0.5}`))
	}))
	defer server.Close()

	g := NewOpenMeteoGeocoder(testHTTPConfig(), server.URL+"/")
	results, err := g.Search(context.Background(), "Paris")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	want := weather.GeoCandidate{Name: "Paris", Admin1: "Île-de-France", Country: "France", Latitude: 48.85341, Longitude: 2.3488}
	if results[0] != want {
		t.Errorf("got %+v, want %+v", results[0], want)
	}
}

func TestOpenMeteoGeocoderNoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"generationtime_ms": 0.3}`))
	}))
	defer server.Close()

	g := NewOpenMeteoGeocoder(testHTTPConfig(), server.URL)
	results, err := g.Search(context.Background(), "Zzqqxx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}

	_, err = weather.NewResolver(g).SearchByName(context.Background(), "Zzqqxx")
	if !errors.Is(err, weather.ErrNoMatch) {
		t.Errorf("expected ErrNoMatch, got %v", err)
	}
}

func TestOpenMeteoGeocoderStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	g := NewOpenMeteoGeocoder(testHTTPConfig(), server.URL)
	_, err := g.Search(context.Background(), "Paris")
	if !errors.Is(err, weather.ErrLookupUnavailable) {
		t.Fatalf("expected ErrLookupUnavailable, got %v", err)
	}
}

func TestOpenMeteoGeocoderReverse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/reverse" {
			t.Errorf("expected /reverse, got %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("latitude") != "40.6501" || q.Get("longitude") != "-73.9496" {
			t.Errorf("unexpected coordinates %s", r.URL.RawQuery)
		}
		w.Write([]byte(`{"results": [{"name": "Brooklyn", "admin1": "New York", "country": "United States",
			"latitude": 40.6501, "longitude": -73.9496}]}`))
	}))
	defer server.Close()

	g := NewOpenMeteoGeocoder(testHTTPConfig(), server.URL)
	loc := weather.NewResolver(g).ResolveCoordinates(context.Background(), 40.6501, -73.9496)
	if loc.Label != "Brooklyn, New York, United States" {
		t.Errorf("unexpected label %q", loc.Label)
	}
}

func TestOpenMeteoGeocoderReverseFailureDegrades(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	g := NewOpenMeteoGeocoder(testHTTPConfig(), server.URL)
	loc := weather.NewResolver(g).ResolveCoordinates(context.Background(), 1, 2)
	want := weather.PlaceLocation{Name: "Current location", Label: "Current location", Latitude: 1, Longitude: 2}
	if loc != want {
		t.Errorf("got %+v, want %+v", loc, want)
	}
}
