package form

import (
	"strconv"

	"github.com/goliatone/go-fireform/pkg/observation"
)

// View is a render-ready snapshot of the form. Renderers consume it instead
// of reaching into the holder.
type View struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Fields      []FieldView `json:"fields"`
	SubmitLabel string      `json:"submitLabel"`
	Disabled    bool        `json:"disabled"`
	Loading     bool        `json:"loading"`
}

// FieldView describes one input and the value it currently shows.
type FieldView struct {
	Name     string           `json:"name"`
	Kind     observation.Kind `json:"kind"`
	Label    string           `json:"label"`
	Help     string           `json:"help,omitempty"`
	Icon     string           `json:"icon,omitempty"`
	Min      string           `json:"min,omitempty"`
	Max      string           `json:"max,omitempty"`
	Step     string           `json:"step,omitempty"`
	Required bool             `json:"required"`
	// Value is the raw control value; Display follows the field's display
	// convention and is shown next to sliders.
	Value   string `json:"value"`
	Display string `json:"display"`
}

// View snapshots the form for rendering. isLoading swaps the submit label and
// disables the action.
func (f *Form) View(isLoading bool) View {
	view := View{
		Title:       f.presentation.Title,
		Description: f.presentation.Description,
		SubmitLabel: f.presentation.SubmitLabel,
		Disabled:    isLoading,
		Loading:     isLoading,
	}
	if isLoading {
		view.SubmitLabel = f.presentation.LoadingLabel
	}

	for _, spec := range observation.Specs() {
		view.Fields = append(view.Fields, f.fieldView(spec))
	}
	return view
}

func (f *Form) fieldView(spec observation.Spec) FieldView {
	fv := FieldView{
		Name:     string(spec.Field),
		Kind:     spec.Kind,
		Label:    spec.LabelWithUnit(),
		Required: spec.Required,
		Display:  observation.Display(f.record, spec.Field),
	}

	switch v := observation.Get(f.record, spec.Field).(type) {
	case string:
		fv.Value = v
	case float64:
		fv.Value = spec.FormatNumber(v)
		fv.Min = formatFloat(spec.Min)
		fv.Max = formatFloat(spec.Max)
		fv.Step = formatFloat(spec.Step)
	}

	if p, ok := f.fields[spec.Field]; ok {
		if p.Label != "" {
			fv.Label = p.Label
		}
		fv.Help = p.Help
		fv.Icon = p.Icon
	}
	return fv
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
