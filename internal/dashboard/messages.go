package dashboard

import (
	"errors"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

// Fallback messages for failures that have no specific wording.
const (
	msgInitialLoadFailed = "Unable to load the initial forecast."
	msgSearchFailed      = "Something went wrong while searching."
	msgLocateFailed      = "We couldn't fetch weather for your location."
	msgRefreshFailed     = "Unable to refresh the forecast right now."
)

var userMessages = []struct {
	err     error
	message string
}{
	{weather.ErrEmptyQuery, "Please enter a city or region to search."},
	{weather.ErrNoMatch, "We couldn't find that location. Try another search."},
	{weather.ErrLookupUnavailable, "Unable to search for that location."},
	{weather.ErrRequestFailed, "Unable to retrieve forecast details right now."},
	{weather.ErrIncompleteData, "Incomplete weather data received."},
	{weather.ErrGeolocationUnsupported, "Your device doesn't support location access."},
	{weather.ErrGeolocationDenied, "Please allow location access to use automatic weather detection."},
	{weather.ErrGeolocationFailed, "We couldn't access your location just now."},
}

// UserMessage maps err to the text shown on the dashboard.
func UserMessage(err error, fallback string) string {
	for _, m := range userMessages {
		if errors.Is(err, m.err) {
			return m.message
		}
	}
	return fallback
}
