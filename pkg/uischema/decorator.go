package uischema

import (
	"fmt"

	"github.com/goliatone/go-fireform/pkg/form"
	"github.com/goliatone/go-fireform/pkg/observation"
)

// Decorator turns a stored form configuration into form.Options.
type Decorator struct {
	store *Store
}

// NewDecorator constructs a decorator backed by the supplied store.
func NewDecorator(store *Store) *Decorator {
	return &Decorator{store: store}
}

// Options returns the form options for id. An empty store yields no options;
// a populated store without id is an error.
func (d *Decorator) Options(id string) ([]form.Option, error) {
	if d == nil || d.store.Empty() {
		return nil, nil
	}
	cfg, ok := d.store.Form(id)
	if !ok {
		return nil, fmt.Errorf("uischema: form %q not defined (have %v)", id, d.store.IDs())
	}
	return cfg.Options(), nil
}

// Options converts the configuration into form options.
func (f Form) Options() []form.Option {
	opts := []form.Option{
		form.WithPresentation(form.Presentation{
			Title:        f.Form.Title,
			Description:  f.Form.Description,
			SubmitLabel:  f.Form.SubmitLabel,
			LoadingLabel: f.Form.LoadingLabel,
		}),
	}
	if len(f.Fields) == 0 {
		return opts
	}

	fields := make(map[observation.Field]form.FieldPresentation, len(f.Fields))
	for name, cfg := range f.Fields {
		fields[name] = form.FieldPresentation{
			Label: cfg.Label,
			Help:  cfg.HelpText,
			Icon:  cfg.Icon,
		}
	}
	return append(opts, form.WithFieldPresentation(fields))
}
