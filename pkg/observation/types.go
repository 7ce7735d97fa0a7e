package observation

// Field names a single member of an Observation using its JSON name.
type Field string

const (
	FieldLocationName  Field = "locationName"
	FieldLatitude      Field = "latitude"
	FieldLongitude     Field = "longitude"
	FieldTemperature   Field = "temperature"
	FieldHumidity      Field = "humidity"
	FieldWindSpeed     Field = "windSpeed"
	FieldCloudCover    Field = "cloudCover"
	FieldPrecipitation Field = "precipitation"
	FieldWindDirection Field = "windDirection"
)

var fieldOrder = []Field{
	FieldLocationName,
	FieldLatitude,
	FieldLongitude,
	FieldTemperature,
	FieldHumidity,
	FieldWindSpeed,
	FieldCloudCover,
	FieldPrecipitation,
	FieldWindDirection,
}

// Fields returns every field in render order.
func Fields() []Field {
	return append([]Field(nil), fieldOrder...)
}

// Valid reports whether f names a known field.
func (f Field) Valid() bool {
	_, ok := specs[f]
	return ok
}

func (f Field) String() string {
	return string(f)
}

// Observation is the flat record of location and weather parameters the form
// collects. Units: temperature °C, humidity and cloud cover %, wind speed
// km/h, precipitation mm, wind direction degrees.
type Observation struct {
	LocationName  string  `json:"locationName"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	Temperature   float64 `json:"temperature"`
	Humidity      float64 `json:"humidity"`
	WindSpeed     float64 `json:"windSpeed"`
	CloudCover    float64 `json:"cloudCover"`
	Precipitation float64 `json:"precipitation"`
	WindDirection float64 `json:"windDirection"`
}

// Defaults returns the record a freshly mounted form starts from.
func Defaults() Observation {
	return Observation{
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
}

// Values flattens the record into a map keyed by field name. Numbers are
// float64 so the map can be validated as decoded JSON.
func (o Observation) Values() map[string]any {
	out := make(map[string]any, len(fieldOrder))
	for _, f := range fieldOrder {
		out[string(f)] = Get(o, f)
	}
	return out
}
