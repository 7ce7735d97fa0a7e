package render

import (
	"errors"
	"strings"

	"github.com/goliatone/go-fireform/pkg/form"
	"github.com/goliatone/go-fireform/pkg/observation"
)

// ErrorMapping splits a submission error into field-level and form-level
// messages.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// MapSubmitError converts an error returned by the form holder into messages
// renderers can place. observation.ValidationErrors map onto their fields;
// anything else becomes a form-level message.
func MapSubmitError(err error) ErrorMapping {
	var mapping ErrorMapping
	if err == nil {
		return mapping
	}

	var verrs observation.ValidationErrors
	if errors.As(err, &verrs) {
		mapping.Fields = make(map[string][]string, len(verrs))
		for name, messages := range verrs {
			mapping.Fields[name] = normalizeMessages(messages)
		}
		return mapping
	}

	if errors.Is(err, form.ErrSubmitting) {
		mapping.Form = []string{"A simulation is already running."}
		return mapping
	}
	mapping.Form = normalizeMessages([]string{err.Error()})
	return mapping
}

// MergeFieldErrors combines field error maps, trimming and de-duplicating
// messages while preserving order.
func MergeFieldErrors(maps ...map[string][]string) map[string][]string {
	out := make(map[string][]string)
	for _, m := range maps {
		for name, messages := range m {
			out[name] = append(out[name], messages...)
		}
	}
	for name, messages := range out {
		if normalized := normalizeMessages(messages); normalized != nil {
			out[name] = normalized
		} else {
			delete(out, name)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}
	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
