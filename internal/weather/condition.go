package weather

import "sort"

// Variant is the theme family a weather condition belongs to.
type Variant string

const (
	VariantDefault Variant = "default"
	VariantClear   Variant = "clear"
	VariantClouds  Variant = "clouds"
	VariantMist    Variant = "mist"
	VariantRain    Variant = "rain"
	VariantSnow    Variant = "snow"
	VariantThunder Variant = "thunder"
)

// ConditionDescriptor is how a WMO weather code is displayed.
type ConditionDescriptor struct {
	Label   string  `json:"label"`
	Icon    string  `json:"icon"`
	Variant Variant `json:"variant"`
}

var unknownCondition = ConditionDescriptor{Label: "Unknown", Icon: "❔", Variant: VariantDefault}

// conditions is keyed by WMO weather interpretation code as used by Open-Meteo.
// Read-only after package init.
var conditions = map[int]ConditionDescriptor{
	0:  {Label: "Clear sky", Icon: "☀️", Variant: VariantClear},
	1:  {Label: "Mainly clear", Icon: "🌤️", Variant: VariantClear},
	2:  {Label: "Partly cloudy", Icon: "⛅", Variant: VariantClouds},
	3:  {Label: "Overcast", Icon: "☁️", Variant: VariantClouds},
	45: {Label: "Foggy", Icon: "🌫️", Variant: VariantMist},
	48: {Label: "Rime fog", Icon: "🌫️", Variant: VariantMist},
	51: {Label: "Light drizzle", Icon: "🌦️", Variant: VariantRain},
	53: {Label: "Drizzle", Icon: "🌦️", Variant: VariantRain},
	55: {Label: "Heavy drizzle", Icon: "🌧️", Variant: VariantRain},
	56: {Label: "Freezing drizzle", Icon: "🌧️", Variant: VariantSnow},
	57: {Label: "Freezing drizzle", Icon: "🌧️", Variant: VariantSnow},
	61: {Label: "Light rain", Icon: "🌧️", Variant: VariantRain},
	63: {Label: "Rain", Icon: "🌧️", Variant: VariantRain},
	65: {Label: "Heavy rain", Icon: "🌧️", Variant: VariantRain},
	66: {Label: "Freezing rain", Icon: "🌨️", Variant: VariantSnow},
	67: {Label: "Freezing rain", Icon: "🌨️", Variant: VariantSnow},
	71: {Label: "Light snow", Icon: "🌨️", Variant: VariantSnow},
	73: {Label: "Snow", Icon: "🌨️", Variant: VariantSnow},
	75: {Label: "Heavy snow", Icon: "❄️", Variant: VariantSnow},
	77: {Label: "Snow grains", Icon: "❄️", Variant: VariantSnow},
	80: {Label: "Light showers", Icon: "🌦️", Variant: VariantRain},
	81: {Label: "Showers", Icon: "🌧️", Variant: VariantRain},
	82: {Label: "Heavy showers", Icon: "🌧️", Variant: VariantRain},
	85: {Label: "Snow showers", Icon: "🌨️", Variant: VariantSnow},
	86: {Label: "Heavy snow showers", Icon: "❄️", Variant: VariantSnow},
	95: {Label: "Thunderstorm", Icon: "⛈️", Variant: VariantThunder},
	96: {Label: "Thunder w/ hail", Icon: "⛈️", Variant: VariantThunder},
	99: {Label: "Severe thunder", Icon: "⛈️", Variant: VariantThunder},
}

// Describe returns the descriptor for a weather code. Codes outside the table
// get the "Unknown" descriptor.
func Describe(code int) ConditionDescriptor {
	if d, ok := conditions[code]; ok {
		return d
	}
	return unknownCondition
}

// ThemeVariant returns the theme variant for a weather code.
func ThemeVariant(code int) Variant {
	return Describe(code).Variant
}

// KnownCodes lists the mapped weather codes in ascending order.
func KnownCodes() []int {
	codes := make([]int, 0, len(conditions))
	for c := range conditions {
		codes = append(codes, c)
	}
	sort.Ints(codes)
	return codes
}
