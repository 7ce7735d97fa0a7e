package observation

import "fmt"

// WithField returns a copy of rec with f set to value. The input record is
// never modified; on error it is returned unchanged alongside the error.
// The text field accepts a string, every other field a float64.
func WithField(rec Observation, f Field, value any) (Observation, error) {
	spec, ok := specs[f]
	if !ok {
		return rec, fmt.Errorf("%w: %q", ErrUnknownField, f)
	}

	next := rec
	if spec.Kind == KindText {
		s, ok := value.(string)
		if !ok {
			return rec, fmt.Errorf("%w: %s expects string, got %T", ErrValueType, f, value)
		}
		next.LocationName = s
		return next, nil
	}

	n, ok := value.(float64)
	if !ok {
		return rec, fmt.Errorf("%w: %s expects float64, got %T", ErrValueType, f, value)
	}
	*numberRef(&next, f) = n
	return next, nil
}

// Get returns the value of f in rec: a string for the text field, a float64
// otherwise, nil for unknown fields.
func Get(rec Observation, f Field) any {
	if f == FieldLocationName {
		return rec.LocationName
	}
	if ref := numberRef(&rec, f); ref != nil {
		return *ref
	}
	return nil
}

func numberRef(rec *Observation, f Field) *float64 {
	switch f {
	case FieldLatitude:
		return &rec.Latitude
	case FieldLongitude:
		return &rec.Longitude
	case FieldTemperature:
		return &rec.Temperature
	case FieldHumidity:
		return &rec.Humidity
	case FieldWindSpeed:
		return &rec.WindSpeed
	case FieldCloudCover:
		return &rec.CloudCover
	case FieldPrecipitation:
		return &rec.Precipitation
	case FieldWindDirection:
		return &rec.WindDirection
	default:
		return nil
	}
}
