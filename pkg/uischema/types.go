package uischema

import "github.com/goliatone/go-fireform/pkg/observation"

// DefaultFormID names the form defined by the embedded schema.
const DefaultFormID = "fireRisk"

// Store keeps the parsed forms from UI schema documents. It is safe for
// concurrent readers when treated as immutable after construction.
type Store struct {
	forms map[string]Form
}

// Form describes the overrides for one form id.
type Form struct {
	ID     string
	Source string
	Form   FormConfig
	Fields map[observation.Field]FieldConfig
}

// FormConfig captures the captions shown around the fields.
type FormConfig struct {
	Title        string `json:"title" yaml:"title"`
	Description  string `json:"description" yaml:"description"`
	SubmitLabel  string `json:"submitLabel" yaml:"submitLabel"`
	LoadingLabel string `json:"loadingLabel" yaml:"loadingLabel"`
}

// FieldConfig customises how a single field is captioned.
type FieldConfig struct {
	Label    string `json:"label,omitempty" yaml:"label,omitempty"`
	HelpText string `json:"helpText,omitempty" yaml:"helpText,omitempty"`
	Icon     string `json:"icon,omitempty" yaml:"icon,omitempty"`
}
