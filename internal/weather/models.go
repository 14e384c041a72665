package weather

import (
	"time"

	"github.com/i474232898/weather-dashboard/internal/common"
)

// CurrentLocationName is used when a device position cannot be named.
const CurrentLocationName = "Current location"

// MissingCode marks a weather code the API did not supply.
const MissingCode = -1

// PlaceLocation is a resolved place the dashboard can show weather for.
// Values are never mutated; a new search or relocation replaces them wholesale.
type PlaceLocation struct {
	Name      string  `json:"name"`
	Country   string  `json:"country"`
	Admin1    string  `json:"admin1"`
	Label     string  `json:"label"`
	Latitude  float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180"`
}

// NewPlaceLocation builds a PlaceLocation whose label is derived from its parts.
func NewPlaceLocation(name, admin1, country string, lat, lon float64) PlaceLocation {
	return PlaceLocation{
		Name:      name,
		Country:   country,
		Admin1:    admin1,
		Label:     BuildLabel(name, admin1, country),
		Latitude:  lat,
		Longitude: lon,
	}
}

// BuildLabel joins the non-empty parts with ", ".
func BuildLabel(name, admin1, country string) string {
	return common.JoinNonEmpty(", ", name, admin1, country)
}

// DisplayLabel returns the explicit label, or one derived from name, region and country.
func (l PlaceLocation) DisplayLabel() string {
	if l.Label != "" {
		return l.Label
	}
	return BuildLabel(l.Name, l.Admin1, l.Country)
}

// CurrentSnapshot holds the conditions right now. High, Low, PrecipitationChance,
// Sunrise and Sunset come from today's entry in the daily block.
type CurrentSnapshot struct {
	Time                string   `json:"time"`
	Temperature         *float64 `json:"temperature"`
	ApparentTemperature *float64 `json:"apparentTemperature"`
	Humidity            *float64 `json:"humidity"`
	WindSpeed           *float64 `json:"windSpeed"`
	Code                int      `json:"code"`
	High                *float64 `json:"high"`
	Low                 *float64 `json:"low"`
	PrecipitationChance *float64 `json:"precipitationChance"`
	Sunrise             string   `json:"sunrise"`
	Sunset              string   `json:"sunset"`
}

// DailyEntry is one day of the daily forecast.
type DailyEntry struct {
	Date          string   `json:"date"`
	Label         string   `json:"label"`
	FullLabel     string   `json:"fullLabel"`
	Max           *float64 `json:"max"`
	Min           *float64 `json:"min"`
	Code          int      `json:"code"`
	Precipitation *float64 `json:"precipitation"`
}

// HourlyEntry is one hour of the windowed hourly forecast.
// FeelsLike and Precipitation are nil when the API had no value.
type HourlyEntry struct {
	Time          string   `json:"time"`
	HourLabel     string   `json:"hourLabel"`
	Temperature   *float64 `json:"temperature"`
	FeelsLike     *float64 `json:"feelsLike"`
	Precipitation *float64 `json:"precipitation"`
	Code          int      `json:"code"`
}

// Forecast bundles the three view models produced from one forecast response.
// It is always built and replaced as a whole.
type Forecast struct {
	Location PlaceLocation   `json:"location"`
	Timezone string          `json:"timezone,omitempty"`
	Current  CurrentSnapshot `json:"current"`
	Daily    []DailyEntry    `json:"daily"`
	Hourly   []HourlyEntry   `json:"hourly"`
}

// DashboardState is the single state bundle owned by the dashboard.
type DashboardState struct {
	Query       string        `json:"query"`
	Location    PlaceLocation `json:"location"`
	Forecast    *Forecast     `json:"forecast,omitempty"`
	Loading     bool          `json:"loading"`
	Error       string        `json:"error,omitempty"`
	LastUpdated time.Time     `json:"lastUpdated"`
	RequestID   string        `json:"requestId,omitempty"`
}
