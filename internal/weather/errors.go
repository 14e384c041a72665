package weather

import "errors"

var (
	// ErrEmptyQuery is returned when a search text is blank after trimming.
	ErrEmptyQuery = errors.New("empty search query")
	// ErrLookupUnavailable is returned when the geocoding service cannot be used.
	ErrLookupUnavailable = errors.New("location lookup unavailable")
	// ErrNoMatch is returned when forward geocoding finds nothing.
	ErrNoMatch = errors.New("no matching location")
	// ErrRequestFailed is returned when the forecast service answers with a non-success status.
	ErrRequestFailed = errors.New("forecast request failed")
	// ErrIncompleteData is returned when a forecast payload lacks the current, daily or hourly block.
	ErrIncompleteData = errors.New("incomplete weather data")

	ErrGeolocationUnsupported = errors.New("geolocation unsupported")
	ErrGeolocationDenied      = errors.New("geolocation permission denied")
	ErrGeolocationFailed      = errors.New("geolocation failed")
)
