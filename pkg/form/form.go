package form

import (
	"fmt"

	"github.com/goliatone/go-fireform/pkg/observation"
)

// SubmitFunc receives the complete record when the user confirms the form.
// It is called synchronously; any asynchronous work is the caller's concern.
type SubmitFunc func(observation.Observation)

// Form is the state holder behind the observation form. It is not safe for
// concurrent use: edits arrive one at a time from a single event source.
type Form struct {
	record       observation.Observation
	onSubmit     SubmitFunc
	presentation Presentation
	fields       map[observation.Field]FieldPresentation
	submissions  int
}

// New creates a form seeded with observation.Defaults.
func New(onSubmit SubmitFunc, options ...Option) (*Form, error) {
	if onSubmit == nil {
		return nil, ErrMissingCallback
	}
	f := &Form{
		record:       observation.Defaults(),
		onSubmit:     onSubmit,
		presentation: DefaultPresentation(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(f)
	}
	return f, nil
}

// Current returns a copy of the record as it stands.
func (f *Form) Current() observation.Observation {
	return f.record
}

// Submissions reports how many submissions reached the callback.
func (f *Form) Submissions() int {
	return f.submissions
}

// Presentation returns the captions in effect.
func (f *Form) Presentation() Presentation {
	return f.presentation
}

// UpdateTextField stores raw verbatim in the text field. A blank value is
// accepted while editing; it blocks Submit instead.
func (f *Form) UpdateTextField(field observation.Field, raw string) error {
	if err := f.expectKind(field, observation.KindText); err != nil {
		return err
	}
	return f.apply(field, raw)
}

// UpdateNumericField parses raw and stores the result. Text that does not
// parse to a finite number is rejected with observation.ErrNotANumber and
// the previous value is kept. A number outside the field's domain is stored,
// as a native number input would hold it, and blocks Submit.
func (f *Form) UpdateNumericField(field observation.Field, raw string) error {
	spec, ok := observation.SpecFor(field)
	if !ok {
		return fmt.Errorf("form: %w: %q", observation.ErrUnknownField, field)
	}
	if spec.Kind == observation.KindText {
		return fmt.Errorf("%w: %s is a text field", ErrWrongWidget, field)
	}
	value, err := observation.ParseNumeric(raw)
	if err != nil {
		return fmt.Errorf("form: %s: %w", field, err)
	}
	return f.apply(field, value)
}

// UpdateSliderField sets a slider field from a widget-confirmed value.
// Sliders only emit in-range numbers on their step, so anything outside the
// domain is rejected with ErrOutOfRange, anything between steps with
// ErrOffStep, and the previous value kept.
func (f *Form) UpdateSliderField(field observation.Field, value float64) error {
	if err := f.expectKind(field, observation.KindSlider); err != nil {
		return err
	}
	spec, _ := observation.SpecFor(field)
	if !spec.InRange(value) {
		return fmt.Errorf("%w: %s=%v outside [%v, %v]", ErrOutOfRange, field, value, spec.Min, spec.Max)
	}
	if !spec.OnStep(value) {
		return fmt.Errorf("%w: %s=%v not a multiple of %v", ErrOffStep, field, value, spec.Step)
	}
	return f.apply(field, value)
}

// UpdateField routes raw widget text to the update operation of the field's
// kind, so a transport that only sees strings gets the same policies:
// text stored verbatim, numbers parsed and kept when out of range, sliders
// parsed and rejected when out of range or off step.
func (f *Form) UpdateField(field observation.Field, raw string) error {
	spec, ok := observation.SpecFor(field)
	if !ok {
		return fmt.Errorf("form: %w: %q", observation.ErrUnknownField, field)
	}
	switch spec.Kind {
	case observation.KindText:
		return f.UpdateTextField(field, raw)
	case observation.KindNumber:
		return f.UpdateNumericField(field, raw)
	default:
		value, err := observation.ParseNumeric(raw)
		if err != nil {
			return fmt.Errorf("form: %s: %w", field, err)
		}
		return f.UpdateSliderField(field, value)
	}
}

// Submit hands a copy of the record to the callback. When isLoading is true
// it returns ErrSubmitting without calling it. A record that violates the
// native constraints yields observation.ValidationErrors and no callback.
// The form keeps its values after a successful submission.
func (f *Form) Submit(isLoading bool) error {
	if isLoading {
		return ErrSubmitting
	}
	if err := observation.Validate(f.record); err != nil {
		return err
	}
	f.submissions++
	f.onSubmit(f.record)
	return nil
}

func (f *Form) apply(field observation.Field, value any) error {
	next, err := observation.WithField(f.record, field, value)
	if err != nil {
		return fmt.Errorf("form: %w", err)
	}
	f.record = next
	return nil
}

func (f *Form) expectKind(field observation.Field, kind observation.Kind) error {
	spec, ok := observation.SpecFor(field)
	if !ok {
		return fmt.Errorf("form: %w: %q", observation.ErrUnknownField, field)
	}
	if spec.Kind != kind {
		return fmt.Errorf("%w: %s is a %s field", ErrWrongWidget, field, spec.Kind)
	}
	return nil
}
