package observation

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefaults(t *testing.T) {
	want := Observation{
		LocationName:  "Forest Area 1",
		Latitude:      37.7749,
		Longitude:     -122.4194,
		Temperature:   25,
		Humidity:      30,
		WindSpeed:     15,
		CloudCover:    40,
		Precipitation: 5,
		WindDirection: 180,
	}
	if diff := cmp.Diff(want, Defaults()); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
	if err := Validate(Defaults()); err != nil {
		t.Fatalf("defaults should satisfy constraints: %v", err)
	}
}

func TestWithField_ChangesExactlyOneField(t *testing.T) {
	base := Defaults()
	for _, f := range Fields() {
		var value any = 1.5
		if f == FieldLocationName {
			value = "Ridge 7"
		}

		next, err := WithField(base, f, value)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", f, err)
		}
		if base != Defaults() {
			t.Fatalf("%s: input record was mutated", f)
		}

		for _, other := range Fields() {
			got, orig := Get(next, other), Get(base, other)
			if other == f {
				if got != value {
					t.Fatalf("%s: want %v, got %v", f, value, got)
				}
				continue
			}
			if got != orig {
				t.Fatalf("%s: field %s changed from %v to %v", f, other, orig, got)
			}
		}
	}
}

func TestWithField_RejectsWrongTypeAndUnknownField(t *testing.T) {
	base := Defaults()

	got, err := WithField(base, FieldTemperature, "hot")
	if !errors.Is(err, ErrValueType) {
		t.Fatalf("expected ErrValueType, got %v", err)
	}
	if got != base {
		t.Fatalf("record changed on type mismatch")
	}

	got, err = WithField(base, FieldLocationName, 3.0)
	if !errors.Is(err, ErrValueType) {
		t.Fatalf("expected ErrValueType, got %v", err)
	}
	if got != base {
		t.Fatalf("record changed on type mismatch")
	}

	_, err = WithField(base, Field("altitude"), 10.0)
	if !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}

func TestParseNumeric(t *testing.T) {
	cases := []struct {
		raw     string
		want    float64
		wantErr bool
	}{
		{raw: "12.5", want: 12.5},
		{raw: " -122.4194 ", want: -122.4194},
		{raw: "1e2", want: 100},
		{raw: "", wantErr: true},
		{raw: "   ", wantErr: true},
		{raw: "abc", wantErr: true},
		{raw: "12abc", wantErr: true},
		{raw: "NaN", wantErr: true},
		{raw: "Inf", wantErr: true},
		{raw: "-infinity", wantErr: true},
		{raw: "1e400", wantErr: true},
	}

	for _, tc := range cases {
		got, err := ParseNumeric(tc.raw)
		if tc.wantErr {
			if !errors.Is(err, ErrNotANumber) {
				t.Fatalf("%q: expected ErrNotANumber, got %v (value %v)", tc.raw, err, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", tc.raw, err)
		}
		if got != tc.want {
			t.Fatalf("%q: want %v, got %v", tc.raw, tc.want, got)
		}
	}
}

func TestDisplay(t *testing.T) {
	rec := Defaults()
	want := map[Field]string{
		FieldLocationName:  "Forest Area 1",
		FieldLatitude:      "37.7749",
		FieldLongitude:     "-122.4194",
		FieldTemperature:   "25°C",
		FieldHumidity:      "30%",
		FieldWindSpeed:     "15 km/h",
		FieldCloudCover:    "40%",
		FieldPrecipitation: "5.0 mm",
		FieldWindDirection: "180°",
	}
	got := make(map[Field]string, len(want))
	for _, f := range Fields() {
		got[f] = Display(rec, f)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("display mismatch (-want +got):\n%s", diff)
	}

	rec.Precipitation = 12.5
	if got := Display(rec, FieldPrecipitation); got != "12.5 mm" {
		t.Fatalf("precipitation display: got %q", got)
	}
}

func TestValidate_InclusiveBoundaries(t *testing.T) {
	accepted := []struct {
		field Field
		value float64
	}{
		{FieldTemperature, -10},
		{FieldTemperature, 50},
		{FieldWindDirection, 360},
		{FieldWindDirection, 0},
		{FieldPrecipitation, 0.5},
		{FieldPrecipitation, 50},
		{FieldLatitude, -90},
		{FieldLongitude, 180},
		{FieldHumidity, 100},
		{FieldWindSpeed, 150},
	}
	for _, tc := range accepted {
		rec, err := WithField(Defaults(), tc.field, tc.value)
		if err != nil {
			t.Fatalf("with field: %v", err)
		}
		if err := Validate(rec); err != nil {
			t.Fatalf("%s=%v should be accepted: %v", tc.field, tc.value, err)
		}
	}
}

func TestValidate_Violations(t *testing.T) {
	cases := []struct {
		name  string
		field Field
		value any
		want  string
	}{
		{"temperature below", FieldTemperature, -11.0, "must be greater than or equal to -10"},
		{"temperature above", FieldTemperature, 51.0, "must be less than or equal to 50"},
		{"wind direction above", FieldWindDirection, 365.0, "must be less than or equal to 360"},
		{"wind direction step", FieldWindDirection, 182.0, "must be a multiple of 5"},
		{"precipitation step", FieldPrecipitation, 2.3, "must be a multiple of 0.5"},
		{"latitude above", FieldLatitude, 90.5, "must be less than or equal to 90"},
		{"latitude nan", FieldLatitude, math.NaN(), "must be a number"},
		{"blank location", FieldLocationName, "", "is required"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, err := WithField(Defaults(), tc.field, tc.value)
			if err != nil {
				t.Fatalf("with field: %v", err)
			}
			err = Validate(rec)
			var verrs ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("expected ValidationErrors, got %v", err)
			}
			want := ValidationErrors{string(tc.field): {tc.want}}
			if diff := cmp.Diff(want, verrs); diff != "" {
				t.Fatalf("validation mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSchema(t *testing.T) {
	s := Schema()
	if len(s.Properties) != len(Fields()) {
		t.Fatalf("expected %d properties, got %d", len(Fields()), len(s.Properties))
	}

	temp := s.Properties["temperature"].Value
	if temp.Min == nil || *temp.Min != -10 || temp.Max == nil || *temp.Max != 50 {
		t.Fatalf("unexpected temperature bounds: %v %v", temp.Min, temp.Max)
	}
	if temp.Default != 25.0 {
		t.Fatalf("unexpected temperature default: %v", temp.Default)
	}

	if lat := s.Properties["latitude"].Value; lat.MultipleOf != nil {
		t.Fatalf("coordinates must not carry a step constraint")
	}

	if err := s.VisitJSON(Defaults().Values()); err != nil {
		t.Fatalf("defaults should validate against the schema: %v", err)
	}
}
