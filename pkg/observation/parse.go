package observation

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseNumeric parses raw text from a numeric input. Blank input, text that
// is not a number, and the NaN/Inf spellings accepted by strconv are all
// rejected with ErrNotANumber so a non-finite value never reaches a record.
func ParseNumeric(raw string) (float64, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, fmt.Errorf("%w: empty input", ErrNotANumber)
	}
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNotANumber, raw)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q", ErrNotANumber, raw)
	}
	return v, nil
}
