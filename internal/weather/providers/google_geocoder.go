package providers

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/kelvins/geocoder"

	"github.com/i474232898/weather-dashboard/internal/common"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

// geocoderMu serializes calls because the geocoder package keeps its API key
// in a package-level variable and sends requests through http.DefaultClient.
var geocoderMu sync.Mutex

// GoogleGeocoder implements weather.GeocodingBackend with the Google Geocoding API.
type GoogleGeocoder struct {
	name    string
	apiKey  string
	timeout time.Duration

	// Overridable in tests.
	geocode func(geocoder.Address) (geocoder.Location, error)
	reverse func(geocoder.Location) ([]geocoder.Address, error)
}

// NewGoogleGeocoder creates a Google-backed geocoder. timeout bounds each
// upstream call; zero leaves http.DefaultClient unbounded.
func NewGoogleGeocoder(apiKey string, timeout time.Duration) *GoogleGeocoder {
	return &GoogleGeocoder{
		name:    "google-geocoding",
		apiKey:  apiKey,
		timeout: timeout,
		geocode: geocoder.Geocoding,
		reverse: geocoder.GeocodingReverse,
	}
}

func (g *GoogleGeocoder) Name() string {
	return g.name
}

// Search geocodes the name, then reverse geocodes the hit to learn its region and country.
func (g *GoogleGeocoder) Search(ctx context.Context, name string) ([]weather.GeoCandidate, error) {
	if g.apiKey == "" {
		return nil, fmt.Errorf("%w: google geocoder api key is not configured", weather.ErrLookupUnavailable)
	}

	var loc geocoder.Location
	err := g.call(ctx, func() error {
		var err error
		loc, err = g.geocode(geocoder.Address{City: name})
		return err
	})
	if err != nil {
		if isZeroResults(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %w", weather.ErrLookupUnavailable, err)
	}

	candidate := weather.GeoCandidate{
		Name:      name,
		Latitude:  loc.Latitude,
		Longitude: loc.Longitude,
	}
	if named, err := g.Reverse(ctx, loc.Latitude, loc.Longitude); err == nil && len(named) > 0 {
		candidate.Admin1 = named[0].Admin1
		candidate.Country = named[0].Country
		if named[0].Name != "" {
			candidate.Name = named[0].Name
		}
	}
	return []weather.GeoCandidate{candidate}, nil
}

// Reverse names a coordinate pair using the first address Google returns.
func (g *GoogleGeocoder) Reverse(ctx context.Context, lat, lon float64) ([]weather.GeoCandidate, error) {
	if g.apiKey == "" {
		return nil, fmt.Errorf("%w: google geocoder api key is not configured", weather.ErrLookupUnavailable)
	}

	var addresses []geocoder.Address
	err := g.call(ctx, func() error {
		var err error
		addresses, err = g.reverse(geocoder.Location{Latitude: lat, Longitude: lon})
		return err
	})
	if err != nil {
		if isZeroResults(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %w", weather.ErrLookupUnavailable, err)
	}
	if len(addresses) == 0 {
		return nil, nil
	}

	a := addresses[0]
	name := a.City
	if name == "" {
		name = a.County
	}
	return []weather.GeoCandidate{{
		Name:      name,
		Admin1:    a.State,
		Country:   a.Country,
		Latitude:  lat,
		Longitude: lon,
	}}, nil
}

// call runs fn with the API key and timeout installed and gives up when ctx
// ends first. The timeout also releases geocoderMu when upstream hangs.
func (g *GoogleGeocoder) call(ctx context.Context, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	done := make(chan error, 1)
	go func() { done <- g.locked(fn) }()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		return err
	}
}

// locked runs fn holding geocoderMu; package state is restored before it returns.
func (g *GoogleGeocoder) locked(fn func() error) error {
	geocoderMu.Lock()
	defer geocoderMu.Unlock()

	geocoder.ApiKey = g.apiKey
	if g.timeout > 0 {
		prev := http.DefaultClient.Timeout
		http.DefaultClient.Timeout = g.timeout
		defer func() { http.DefaultClient.Timeout = prev }()
	}
	return fn()
}

func isZeroResults(err error) bool {
	return common.HasAny(err.Error(), "ZERO_RESULTS", "no results")
}
