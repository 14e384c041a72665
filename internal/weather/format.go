package weather

import (
	"fmt"
	"math"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Placeholder is rendered for values that are missing or not numeric.
const Placeholder = "--"

const (
	shortWeekdayLayout = "Mon"
	longDateLayout     = "Monday, January 2"
	hourMinuteLayout   = "3:04 PM"
)

// localLayouts are the timestamp shapes Open-Meteo returns with timezone=auto.
var localLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02",
}

// Formatters renders numbers and dates for display. Build one at startup and
// share it; it holds no mutable state.
type Formatters struct {
	tag     language.Tag
	printer *message.Printer
}

// NewFormatters creates formatters for a BCP 47 locale such as "en-US".
func NewFormatters(locale string) (*Formatters, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	return &Formatters{
		tag:     tag,
		printer: message.NewPrinter(tag),
	}, nil
}

// MustFormatters is NewFormatters for locales known to be valid.
func MustFormatters(locale string) *Formatters {
	f, err := NewFormatters(locale)
	if err != nil {
		panic(err)
	}
	return f
}

// Locale returns the configured language tag.
func (f *Formatters) Locale() language.Tag {
	return f.tag
}

// Temperature rounds to the nearest integer (halves up) and appends a degree mark.
func (f *Formatters) Temperature(v *float64) string {
	n, ok := roundValue(v)
	if !ok {
		return Placeholder
	}
	return f.printer.Sprintf("%d°", n)
}

// Percent renders a rounded percentage, or the placeholder when missing.
func (f *Formatters) Percent(v *float64) string {
	n, ok := roundValue(v)
	if !ok {
		return Placeholder
	}
	return f.printer.Sprintf("%d%%", n)
}

// PercentOrZero renders a missing percentage as 0%.
func (f *Formatters) PercentOrZero(v *float64) string {
	if _, ok := roundValue(v); !ok {
		return f.printer.Sprintf("%d%%", 0)
	}
	return f.Percent(v)
}

// WindSpeed renders km/h rounded to an integer.
func (f *Formatters) WindSpeed(v *float64) string {
	n, ok := roundValue(v)
	if !ok {
		return Placeholder
	}
	return f.printer.Sprintf("%d km/h", n)
}

func (f *Formatters) ShortWeekday(t time.Time) string {
	return t.Format(shortWeekdayLayout)
}

func (f *Formatters) LongDate(t time.Time) string {
	return t.Format(longDateLayout)
}

func (f *Formatters) HourMinute(t time.Time) string {
	return t.Format(hourMinuteLayout)
}

// HourMinuteString formats a local API timestamp, or returns the placeholder
// when it cannot be parsed.
func (f *Formatters) HourMinuteString(s string, loc *time.Location) string {
	t, err := ParseLocalTime(s, loc)
	if err != nil {
		return Placeholder
	}
	return f.HourMinute(t)
}

// ParseLocalTime parses an API timestamp or date in loc. A nil loc means UTC.
func ParseLocalTime(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	var lastErr error
	for _, layout := range localLayouts {
		t, err := time.ParseInLocation(layout, s, loc)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// FormatTemperature is Temperature without a configured locale.
func FormatTemperature(v *float64) string {
	n, ok := roundValue(v)
	if !ok {
		return Placeholder
	}
	return fmt.Sprintf("%d°", n)
}

func roundValue(v *float64) (int64, bool) {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return 0, false
	}
	return int64(math.Floor(*v + 0.5)), true
}

// Float64Ptr returns a pointer to v.
func Float64Ptr(v float64) *float64 {
	return &v
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int {
	return &v
}
