package weather

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Resolver turns a search text or device coordinates into a PlaceLocation.
type Resolver struct {
	backend GeocodingBackend
}

// NewResolver creates a Resolver on top of a geocoding backend.
func NewResolver(backend GeocodingBackend) *Resolver {
	return &Resolver{backend: backend}
}

// SearchByName resolves free text to the best matching place.
// Blank input fails with ErrEmptyQuery before any lookup is made.
func (r *Resolver) SearchByName(ctx context.Context, text string) (PlaceLocation, error) {
	name := strings.TrimSpace(text)
	if name == "" {
		return PlaceLocation{}, ErrEmptyQuery
	}

	candidates, err := r.backend.Search(ctx, name)
	if err != nil {
		if errors.Is(err, ErrLookupUnavailable) {
			return PlaceLocation{}, err
		}
		return PlaceLocation{}, fmt.Errorf("%w: %w", ErrLookupUnavailable, err)
	}

	match, ok := firstValid(candidates)
	if !ok {
		return PlaceLocation{}, fmt.Errorf("%w: %q", ErrNoMatch, name)
	}

	return NewPlaceLocation(match.Name, match.Admin1, match.Country, match.Latitude, match.Longitude), nil
}

// ResolveCoordinates names a device position. It never fails: when the reverse
// lookup errors or finds nothing, the place is called "Current location".
func (r *Resolver) ResolveCoordinates(ctx context.Context, lat, lon float64) PlaceLocation {
	fallback := PlaceLocation{
		Name:      CurrentLocationName,
		Label:     CurrentLocationName,
		Latitude:  lat,
		Longitude: lon,
	}

	candidates, err := r.backend.Reverse(ctx, lat, lon)
	if err != nil {
		log.Printf("WARN: reverse geocoding via %s failed for %.4f,%.4f: %v", r.backend.Name(), lat, lon, err)
		return fallback
	}
	if len(candidates) == 0 {
		return fallback
	}

	c := candidates[0]
	loc := PlaceLocation{
		Name:      c.Name,
		Country:   c.Country,
		Admin1:    c.Admin1,
		Label:     BuildLabel(c.Name, c.Admin1, c.Country),
		Latitude:  lat,
		Longitude: lon,
	}
	if loc.Name == "" {
		loc.Name = CurrentLocationName
	}
	if loc.Label == "" {
		loc.Label = CurrentLocationName
	}
	return loc
}

// firstValid returns the first candidate with in-range coordinates.
func firstValid(candidates []GeoCandidate) (GeoCandidate, bool) {
	for _, c := range candidates {
		if err := validate.Struct(c); err != nil {
			log.Printf("DEBUG: skipping geocoding candidate %q: %v", c.Name, err)
			continue
		}
		return c, true
	}
	return GeoCandidate{}, false
}
