package form

import "errors"

var (
	// ErrSubmitting is returned by Submit when the caller reports that a
	// previous submission is still being processed.
	ErrSubmitting = errors.New("form: submission in progress")
	// ErrOutOfRange is returned when a slider reports a value outside the
	// field's domain.
	ErrOutOfRange = errors.New("form: value out of range")
	// ErrOffStep is returned when a slider reports a value that is not a
	// multiple of the field's step.
	ErrOffStep = errors.New("form: value not on step")
	// ErrWrongWidget is returned when an update targets a field edited by a
	// different widget kind.
	ErrWrongWidget = errors.New("form: field not editable by this widget")
	// ErrMissingCallback is returned by New when no SubmitFunc is provided.
	ErrMissingCallback = errors.New("form: submit callback is required")
)
