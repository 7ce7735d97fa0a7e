package form

import "github.com/goliatone/go-fireform/pkg/observation"

// Presentation carries the caption text shown around the fields.
type Presentation struct {
	Title        string
	Description  string
	SubmitLabel  string
	LoadingLabel string
}

// DefaultPresentation returns the stock captions.
func DefaultPresentation() Presentation {
	return Presentation{
		Title:        "Fire Risk Simulation",
		Description:  "Enter environmental data to predict fire risk",
		SubmitLabel:  "Run Simulation",
		LoadingLabel: "Processing...",
	}
}

// FieldPresentation overrides how a single field is captioned.
type FieldPresentation struct {
	Label string
	Help  string
	Icon  string
}

// Option configures a Form.
type Option func(*Form)

// WithInitial seeds the form with rec instead of observation.Defaults.
func WithInitial(rec observation.Observation) Option {
	return func(f *Form) {
		f.record = rec
	}
}

// WithPresentation overrides the form captions. Empty values keep the
// defaults.
func WithPresentation(p Presentation) Option {
	return func(f *Form) {
		if p.Title != "" {
			f.presentation.Title = p.Title
		}
		if p.Description != "" {
			f.presentation.Description = p.Description
		}
		if p.SubmitLabel != "" {
			f.presentation.SubmitLabel = p.SubmitLabel
		}
		if p.LoadingLabel != "" {
			f.presentation.LoadingLabel = p.LoadingLabel
		}
	}
}

// WithFieldPresentation overrides the caption of individual fields.
func WithFieldPresentation(fields map[observation.Field]FieldPresentation) Option {
	return func(f *Form) {
		if len(fields) == 0 {
			return
		}
		if f.fields == nil {
			f.fields = make(map[observation.Field]FieldPresentation, len(fields))
		}
		for name, p := range fields {
			f.fields[name] = p
		}
	}
}
