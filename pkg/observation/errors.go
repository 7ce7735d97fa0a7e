package observation

import "errors"

var (
	// ErrUnknownField is returned when a field name is not part of the record.
	ErrUnknownField = errors.New("observation: unknown field")
	// ErrValueType is returned when a value does not match the field kind.
	ErrValueType = errors.New("observation: value type mismatch")
	// ErrNotANumber is returned when numeric input does not parse to a
	// finite number.
	ErrNotANumber = errors.New("observation: not a number")
)
