package httpform

import (
	"net/http"

	"github.com/goliatone/go-fireform/pkg/form"
)

// Component bundles the submission callback with the handler configuration
// and routing helpers.
type Component struct {
	onSubmit form.SubmitFunc
	opts     Options
}

// New constructs a component with default options plus any overrides.
func New(onSubmit form.SubmitFunc, fns ...OptionFn) *Component {
	return &Component{onSubmit: onSubmit, opts: NewOptions(fns...)}
}

// Options returns a copy of the component configuration.
func (c *Component) Options() Options {
	if c == nil {
		return DefaultOptions()
	}
	return NewOptions(func(o *Options) { *o = c.opts })
}

// Handler returns the form handler.
func (c *Component) Handler() (http.Handler, error) {
	return HandlerWithOptions(c.onSubmit, c.opts)
}

// RegisterRoutes registers the component handlers under basePath on mux.
func (c *Component) RegisterRoutes(mux Mux, basePath string) (string, error) {
	return RegisterRoutesWithOptions(mux, basePath, c.onSubmit, c.opts)
}
