package render

// Options describe per-request data renderers use without touching the form
// state.
type Options struct {
	// Loading is the caller-controlled in-progress flag. Renderers disable the
	// submit action and show the loading label while it is set.
	Loading bool
	// Action and Method populate the form element. Method defaults to POST.
	Action string
	Method string
	// Errors carries constraint messages keyed by field name; FormErrors
	// carries messages that do not belong to a single field.
	Errors     map[string][]string
	FormErrors []string
	// Hidden lists extra inputs emitted alongside the visible fields, e.g. a
	// CSRF token. See MergeHiddenFields.
	Hidden map[string]string
	// Notice is an informational banner, e.g. a submission receipt.
	Notice string
}

// FieldErrors returns the messages attached to name.
func (o Options) FieldErrors(name string) []string {
	if len(o.Errors) == 0 {
		return nil
	}
	return o.Errors[name]
}
