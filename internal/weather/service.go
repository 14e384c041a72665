package weather

import (
	"context"
	"fmt"
	"log"
)

// Service fetches forecasts and normalizes them into view models.
type Service struct {
	source     ForecastSource
	normalizer *Normalizer
}

// NewService creates a new Service.
func NewService(source ForecastSource, normalizer *Normalizer) *Service {
	return &Service{
		source:     source,
		normalizer: normalizer,
	}
}

// FetchAndNormalize issues one forecast request for loc and reshapes the response.
// The result is complete or an error is returned; there is no partial forecast.
func (s *Service) FetchAndNormalize(ctx context.Context, loc PlaceLocation) (Forecast, error) {
	if err := validate.Struct(loc); err != nil {
		return Forecast{}, fmt.Errorf("invalid location %q: %w", loc.DisplayLabel(), err)
	}

	log.Printf("DEBUG: FetchAndNormalize called for %s (%.4f,%.4f) via %s",
		loc.DisplayLabel(), loc.Latitude, loc.Longitude, s.source.Name())

	raw, err := s.source.FetchForecast(ctx, loc.Latitude, loc.Longitude)
	if err != nil {
		return Forecast{}, err
	}

	forecast, err := s.normalizer.Normalize(loc, raw)
	if err != nil {
		log.Printf("ERROR: forecast for %s could not be normalized: %v", loc.DisplayLabel(), err)
		return Forecast{}, err
	}
	return forecast, nil
}
