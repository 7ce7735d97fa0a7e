package observation

import (
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
)

var (
	schemaOnce   sync.Once
	recordSchema *openapi3.Schema
	fieldSchemas map[Field]*openapi3.Schema
)

// Schema describes the record as an OpenAPI schema: types, inclusive
// bounds, slider steps as multipleOf, the required location and the
// defaults. The returned value is shared; callers must not mutate it.
func Schema() *openapi3.Schema {
	buildSchemas()
	return recordSchema
}

func fieldSchema(f Field) *openapi3.Schema {
	buildSchemas()
	return fieldSchemas[f]
}

func buildSchemas() {
	schemaOnce.Do(func() {
		defaults := Defaults()
		fieldSchemas = make(map[Field]*openapi3.Schema, len(fieldOrder))

		root := openapi3.NewObjectSchema()
		root.Title = "EnvironmentalObservation"
		root.Description = "Location and weather parameters collected for a fire risk simulation."

		var required []string
		for _, f := range fieldOrder {
			spec := specs[f]
			s := schemaForSpec(spec).WithDefault(Get(defaults, f))
			s.Title = spec.LabelWithUnit()

			fieldSchemas[f] = s
			root.WithProperty(string(f), s)
			if spec.Required || spec.Kind == KindSlider {
				required = append(required, string(f))
			}
		}
		root.Required = required
		recordSchema = root
	})
}

// OnStep reports whether v is a multiple of the field's step, using the same
// multipleOf rule as Validate. Fields without a step accept any value.
func (s Spec) OnStep(v float64) bool {
	if s.Kind != KindSlider || s.Step <= 0 {
		return true
	}
	step := s.Step
	schema := openapi3.NewFloat64Schema()
	schema.MultipleOf = &step
	return schema.VisitJSON(v) == nil
}

func schemaForSpec(spec Spec) *openapi3.Schema {
	if spec.Kind == KindText {
		return openapi3.NewStringSchema().WithMinLength(1)
	}
	s := openapi3.NewFloat64Schema().WithMin(spec.Min).WithMax(spec.Max)
	if spec.Kind == KindSlider && spec.Step > 0 {
		step := spec.Step
		s.MultipleOf = &step
	}
	return s
}
