package observation

import (
	"math"
	"strconv"
)

// Kind describes which widget family edits a field.
type Kind string

const (
	KindText   Kind = "text"
	KindNumber Kind = "number"
	KindSlider Kind = "slider"
)

// Spec carries the native constraints and display convention of a field.
// Min, Max and Step are meaningless for KindText.
type Spec struct {
	Field    Field
	Kind     Kind
	Label    string
	Unit     string
	Min      float64
	Max      float64
	Step     float64
	Required bool

	// Suffix is appended to the formatted value when displayed next to the
	// widget. Decimals is the fixed precision used for display; a negative
	// value prints the shortest exact representation.
	Suffix   string
	Decimals int
}

var specs = map[Field]Spec{
	FieldLocationName: {
		Field: FieldLocationName, Kind: KindText, Label: "Location Name",
		Required: true, Decimals: -1,
	},
	FieldLatitude: {
		Field: FieldLatitude, Kind: KindNumber, Label: "Latitude",
		Min: -90, Max: 90, Step: 0.0001, Required: true, Decimals: -1,
	},
	FieldLongitude: {
		Field: FieldLongitude, Kind: KindNumber, Label: "Longitude",
		Min: -180, Max: 180, Step: 0.0001, Required: true, Decimals: -1,
	},
	FieldTemperature: {
		Field: FieldTemperature, Kind: KindSlider, Label: "Temperature", Unit: "°C",
		Min: -10, Max: 50, Step: 1, Suffix: "°C",
	},
	FieldHumidity: {
		Field: FieldHumidity, Kind: KindSlider, Label: "Humidity", Unit: "%",
		Min: 0, Max: 100, Step: 1, Suffix: "%",
	},
	FieldWindSpeed: {
		Field: FieldWindSpeed, Kind: KindSlider, Label: "Wind Speed", Unit: "km/h",
		Min: 0, Max: 150, Step: 1, Suffix: " km/h",
	},
	FieldCloudCover: {
		Field: FieldCloudCover, Kind: KindSlider, Label: "Cloud Cover", Unit: "%",
		Min: 0, Max: 100, Step: 1, Suffix: "%",
	},
	FieldPrecipitation: {
		Field: FieldPrecipitation, Kind: KindSlider, Label: "Precipitation", Unit: "mm",
		Min: 0, Max: 50, Step: 0.5, Suffix: " mm", Decimals: 1,
	},
	FieldWindDirection: {
		Field: FieldWindDirection, Kind: KindSlider, Label: "Wind Direction", Unit: "°",
		Min: 0, Max: 360, Step: 5, Suffix: "°",
	},
}

// SpecFor returns the constraints of f.
func SpecFor(f Field) (Spec, bool) {
	spec, ok := specs[f]
	return spec, ok
}

// Specs returns the constraints of every field in render order.
func Specs() []Spec {
	out := make([]Spec, 0, len(fieldOrder))
	for _, f := range fieldOrder {
		out = append(out, specs[f])
	}
	return out
}

// LabelWithUnit renders the label the way the form shows it, e.g.
// "Temperature (°C)".
func (s Spec) LabelWithUnit() string {
	if s.Unit == "" {
		return s.Label
	}
	return s.Label + " (" + s.Unit + ")"
}

// InRange reports whether v lies inside the inclusive [Min, Max] domain.
func (s Spec) InRange(v float64) bool {
	if s.Kind == KindText {
		return true
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return false
	}
	return v >= s.Min && v <= s.Max
}

// FormatNumber formats v using the field's display precision without the
// suffix. It is also the value written into input controls.
func (s Spec) FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', s.Decimals, 64)
}

// Display returns the value of f in rec formatted by the field's display
// convention: "25°C", "30%", "15 km/h", "5.0 mm", "180°". Text and
// coordinate fields are returned as entered.
func Display(rec Observation, f Field) string {
	spec, ok := specs[f]
	if !ok {
		return ""
	}
	switch v := Get(rec, f).(type) {
	case string:
		return v
	case float64:
		return spec.FormatNumber(v) + spec.Suffix
	default:
		return ""
	}
}
