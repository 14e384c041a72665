package dashboard

import (
	"github.com/i474232898/weather-dashboard/internal/weather"
)

const (
	loadingMessage = "Loading weather..."
	emptyHint      = "Enter a city to explore the forecast."
)

// View is the render-ready dashboard: every value is already formatted.
type View struct {
	Query         string          `json:"query"`
	LocationLabel string          `json:"locationLabel"`
	Theme         weather.Variant `json:"theme"`
	Loading       bool            `json:"loading"`
	Banners       []Banner        `json:"banners,omitempty"`
	Hint          string          `json:"hint,omitempty"`
	LastUpdated   string          `json:"lastUpdated,omitempty"`
	RequestID     string          `json:"requestId,omitempty"`

	Current    *CurrentView `json:"current,omitempty"`
	Highlights []Highlight  `json:"highlights,omitempty"`
	Hourly     []HourView   `json:"hourly,omitempty"`
	Daily      []DayView    `json:"daily,omitempty"`
}

// Banner is a status line shown above the forecast.
type Banner struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type CurrentView struct {
	Condition   string `json:"condition"`
	Icon        string `json:"icon"`
	Temperature string `json:"temperature"`
	High        string `json:"high"`
	Low         string `json:"low"`
	RainChance  string `json:"rainChance"`
}

type Highlight struct {
	Label     string `json:"label"`
	Value     string `json:"value"`
	Secondary string `json:"secondary"`
}

type HourView struct {
	Time          string `json:"time"`
	Label         string `json:"label"`
	Condition     string `json:"condition"`
	Icon          string `json:"icon"`
	Temperature   string `json:"temperature"`
	Precipitation string `json:"precipitation,omitempty"`
}

type DayView struct {
	Date       string `json:"date"`
	Label      string `json:"label"`
	FullLabel  string `json:"fullLabel"`
	Condition  string `json:"condition"`
	Icon       string `json:"icon"`
	High       string `json:"high"`
	Low        string `json:"low"`
	RainChance string `json:"rainChance"`
}

// View renders the current state.
func (d *Dashboard) View() View {
	return Render(d.store.Snapshot(), d.formatters)
}

// Render turns a state bundle into a View.
func Render(st weather.DashboardState, f *weather.Formatters) View {
	v := View{
		Query:         st.Query,
		LocationLabel: st.Location.DisplayLabel(),
		Theme:         weather.VariantDefault,
		Loading:       st.Loading,
		RequestID:     st.RequestID,
	}

	if st.Error != "" {
		v.Banners = append(v.Banners, Banner{Kind: "error", Message: st.Error})
	}
	if st.Loading {
		v.Banners = append(v.Banners, Banner{Kind: "loading", Message: loadingMessage})
	}
	if !st.LastUpdated.IsZero() {
		v.LastUpdated = "Updated " + f.HourMinute(st.LastUpdated.Local())
	}

	if st.Forecast == nil {
		if !st.Loading {
			v.Hint = emptyHint
		}
		return v
	}

	fc := st.Forecast
	v.LocationLabel = fc.Location.DisplayLabel()
	v.Theme = weather.ThemeVariant(fc.Current.Code)
	v.Current = renderCurrent(fc.Current, f)
	v.Highlights = renderHighlights(fc.Current, f)

	for _, h := range fc.Hourly {
		v.Hourly = append(v.Hourly, renderHour(h, f))
	}

	days := fc.Daily
	if len(days) > weather.DaysToShow {
		days = days[:weather.DaysToShow]
	}
	for _, day := range days {
		v.Daily = append(v.Daily, renderDay(day, f))
	}
	return v
}

func renderCurrent(c weather.CurrentSnapshot, f *weather.Formatters) *CurrentView {
	info := weather.Describe(c.Code)
	return &CurrentView{
		Condition:   info.Label,
		Icon:        info.Icon,
		Temperature: f.Temperature(c.Temperature),
		High:        f.Temperature(c.High),
		Low:         f.Temperature(c.Low),
		RainChance:  f.PercentOrZero(c.PrecipitationChance),
	}
}

func renderHighlights(c weather.CurrentSnapshot, f *weather.Formatters) []Highlight {
	return []Highlight{
		{Label: "Sunrise", Value: f.HourMinuteString(c.Sunrise, nil), Secondary: "Start your day"},
		{Label: "Sunset", Value: f.HourMinuteString(c.Sunset, nil), Secondary: "Golden hour"},
		{Label: "Feels like", Value: f.Temperature(c.ApparentTemperature), Secondary: "Apparent temperature"},
		{Label: "Humidity", Value: f.Percent(c.Humidity), Secondary: "Relative"},
		{Label: "Wind", Value: f.WindSpeed(c.WindSpeed), Secondary: "At 10 m"},
		{Label: "Rain chance", Value: f.PercentOrZero(c.PrecipitationChance), Secondary: "Today"},
	}
}

func renderHour(h weather.HourlyEntry, f *weather.Formatters) HourView {
	info := weather.Describe(h.Code)
	hv := HourView{
		Time:        h.Time,
		Label:       h.HourLabel,
		Condition:   info.Label,
		Icon:        info.Icon,
		Temperature: f.Temperature(h.Temperature),
	}
	if h.Precipitation != nil {
		hv.Precipitation = f.Percent(h.Precipitation)
	}
	return hv
}

func renderDay(day weather.DailyEntry, f *weather.Formatters) DayView {
	info := weather.Describe(day.Code)
	return DayView{
		Date:       day.Date,
		Label:      day.Label,
		FullLabel:  day.FullLabel,
		Condition:  info.Label,
		Icon:       info.Icon,
		High:       f.Temperature(day.Max),
		Low:        f.Temperature(day.Min),
		RainChance: f.PercentOrZero(day.Precipitation) + " chance of rain",
	}
}
