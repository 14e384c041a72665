package weather

import (
	"fmt"
	"time"

	"github.com/sixdouglas/suncalc"
)

const (
	// HoursToShow caps the hourly window.
	HoursToShow = 10
	// DaysToShow caps the daily list on the dashboard.
	DaysToShow = 6
)

const localTimeLayout = "2006-01-02T15:04"

// Normalizer reshapes raw forecast responses into the dashboard view models.
type Normalizer struct {
	formatters *Formatters
	hours      int
}

// NewNormalizer creates a Normalizer that labels dates with the given formatters.
func NewNormalizer(f *Formatters) *Normalizer {
	return &Normalizer{
		formatters: f,
		hours:      HoursToShow,
	}
}

// Normalize builds the current snapshot, daily list and hourly window from raw.
// All three blocks must be present; otherwise ErrIncompleteData is returned and
// nothing is produced.
func (n *Normalizer) Normalize(loc PlaceLocation, raw *RawForecast) (Forecast, error) {
	if raw == nil {
		return Forecast{}, fmt.Errorf("%w: empty payload", ErrIncompleteData)
	}
	switch {
	case raw.Current == nil:
		return Forecast{}, fmt.Errorf("%w: missing current block", ErrIncompleteData)
	case raw.Daily == nil:
		return Forecast{}, fmt.Errorf("%w: missing daily block", ErrIncompleteData)
	case raw.Hourly == nil:
		return Forecast{}, fmt.Errorf("%w: missing hourly block", ErrIncompleteData)
	}

	zone := raw.zone()

	current := normalizeCurrent(raw.Current, raw.Daily)
	if len(raw.Daily.Time) > 0 && (current.Sunrise == "" || current.Sunset == "") {
		fillSunTimes(&current, raw.Daily.Time[0], loc, zone)
	}

	return Forecast{
		Location: loc,
		Timezone: raw.Timezone,
		Current:  current,
		Daily:    n.normalizeDaily(raw.Daily, zone),
		Hourly:   n.normalizeHourly(raw.Hourly, raw.Current.Time, zone),
	}, nil
}

// normalizeCurrent copies the current block and joins today's daily values,
// which the current block does not carry.
func normalizeCurrent(c *RawCurrent, d *RawDaily) CurrentSnapshot {
	const today = 0

	return CurrentSnapshot{
		Time:                c.Time,
		Temperature:         copyFloat(c.Temperature2m),
		ApparentTemperature: copyFloat(c.ApparentTemperature),
		Humidity:            copyFloat(c.RelativeHumidity2m),
		WindSpeed:           copyFloat(c.WindSpeed10m),
		Code:                codeOf(c.WeatherCode),
		High:                floatAt(d.Temperature2mMax, today),
		Low:                 floatAt(d.Temperature2mMin, today),
		PrecipitationChance: floatAt(d.PrecipitationProbabilityMax, today),
		Sunrise:             stringAt(d.Sunrise, today),
		Sunset:              stringAt(d.Sunset, today),
	}
}

func (n *Normalizer) normalizeDaily(d *RawDaily, zone *time.Location) []DailyEntry {
	days := make([]DailyEntry, 0, len(d.Time))
	for i, date := range d.Time {
		entry := DailyEntry{
			Date:          date,
			Label:         date,
			FullLabel:     date,
			Max:           floatAt(d.Temperature2mMax, i),
			Min:           floatAt(d.Temperature2mMin, i),
			Code:          intAt(d.WeatherCode, i),
			Precipitation: floatAt(d.PrecipitationProbabilityMax, i),
		}
		if t, err := ParseLocalTime(date, zone); err == nil {
			entry.Label = n.formatters.ShortWeekday(t)
			entry.FullLabel = n.formatters.LongDate(t)
		}
		days = append(days, entry)
	}
	return days
}

func (n *Normalizer) normalizeHourly(h *RawHourly, now string, zone *time.Location) []HourlyEntry {
	start, end := HourlyWindow(h.Time, now, n.hours)

	hours := make([]HourlyEntry, 0, end-start)
	for i := start; i < end; i++ {
		ts := h.Time[i]
		entry := HourlyEntry{
			Time:          ts,
			HourLabel:     ts,
			Temperature:   floatAt(h.Temperature2m, i),
			FeelsLike:     floatAt(h.ApparentTemperature, i),
			Precipitation: floatAt(h.PrecipitationProbability, i),
			Code:          intAt(h.WeatherCode, i),
		}
		if t, err := ParseLocalTime(ts, zone); err == nil {
			entry.HourLabel = n.formatters.HourMinute(t)
		}
		hours = append(hours, entry)
	}
	return hours
}

// HourlyWindow returns the [start, end) range of times to show: start is the
// index exactly equal to now (0 when there is none) and the range holds at most
// size entries.
func HourlyWindow(times []string, now string, size int) (int, int) {
	start := 0
	for i, ts := range times {
		if ts == now {
			start = i
			break
		}
	}
	end := start + size
	if end > len(times) {
		end = len(times)
	}
	if end < start {
		end = start
	}
	return start, end
}

// fillSunTimes computes sunrise and sunset for the day when the API left them out.
func fillSunTimes(c *CurrentSnapshot, date string, loc PlaceLocation, zone *time.Location) {
	day, err := ParseLocalTime(date, zone)
	if err != nil {
		return
	}
	noon := time.Date(day.Year(), day.Month(), day.Day(), 12, 0, 0, 0, zone)
	times := suncalc.GetTimes(noon, loc.Latitude, loc.Longitude)

	if c.Sunrise == "" {
		if rise := times["sunrise"].Value; !rise.IsZero() {
			c.Sunrise = rise.In(zone).Format(localTimeLayout)
		}
	}
	if c.Sunset == "" {
		if set := times["sunset"].Value; !set.IsZero() {
			c.Sunset = set.In(zone).Format(localTimeLayout)
		}
	}
}

func (r *RawForecast) zone() *time.Location {
	if r.Timezone == "" && r.UTCOffsetSeconds == 0 {
		return time.UTC
	}
	return time.FixedZone(r.Timezone, r.UTCOffsetSeconds)
}

func floatAt(col []*float64, i int) *float64 {
	if i < 0 || i >= len(col) {
		return nil
	}
	return copyFloat(col[i])
}

func intAt(col []*int, i int) int {
	if i < 0 || i >= len(col) {
		return MissingCode
	}
	return codeOf(col[i])
}

func stringAt(col []string, i int) string {
	if i < 0 || i >= len(col) {
		return ""
	}
	return col[i]
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

func codeOf(v *int) int {
	if v == nil {
		return MissingCode
	}
	return *v
}
