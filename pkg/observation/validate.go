package observation

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// ValidationErrors maps field names to the constraint messages that block
// submission.
type ValidationErrors map[string][]string

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return "observation: invalid record"
	}
	names := make([]string, 0, len(v))
	for name := range v {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+strings.Join(v[name], "; "))
	}
	return "observation: invalid record: " + strings.Join(parts, ", ")
}

// Validate applies the native input constraints to rec: the location must be
// non-empty, every number finite and inside its inclusive domain, and slider
// values aligned to their step. Cross-field plausibility is not checked.
// It returns nil or a ValidationErrors.
func Validate(rec Observation) error {
	errs := ValidationErrors{}
	for _, f := range fieldOrder {
		if msg := validateField(rec, f); msg != "" {
			errs[string(f)] = append(errs[string(f)], msg)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ValidateField checks a single field of rec against its constraints and
// returns the message describing the violation, or "".
func ValidateField(rec Observation, f Field) string {
	if !f.Valid() {
		return ErrUnknownField.Error()
	}
	return validateField(rec, f)
}

func validateField(rec Observation, f Field) string {
	value := Get(rec, f)
	if n, ok := value.(float64); ok && (math.IsNaN(n) || math.IsInf(n, 0)) {
		return "must be a number"
	}

	err := fieldSchema(f).VisitJSON(value)
	if err == nil {
		return ""
	}
	return constraintMessage(specs[f], err)
}

func constraintMessage(spec Spec, err error) string {
	var schemaErr *openapi3.SchemaError
	if !errors.As(err, &schemaErr) {
		return err.Error()
	}
	switch schemaErr.SchemaField {
	case "minLength":
		return "is required"
	case "minimum":
		return "must be greater than or equal to " + formatBound(spec.Min)
	case "maximum":
		return "must be less than or equal to " + formatBound(spec.Max)
	case "multipleOf":
		return "must be a multiple of " + formatBound(spec.Step)
	default:
		if schemaErr.Reason != "" {
			return schemaErr.Reason
		}
		return fmt.Sprintf("violates %s", schemaErr.SchemaField)
	}
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
