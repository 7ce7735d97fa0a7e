package httpform

import (
	"net/http"

	"github.com/goliatone/go-fireform/pkg/form"
	"github.com/goliatone/go-fireform/pkg/render"
	"github.com/goliatone/go-fireform/pkg/uischema"
)

const (
	defaultRoutePath    = "/simulation"
	defaultMaxBodyBytes = 64 << 10
)

// GuardFunc authorises a request before it reaches the form. Returning an
// HTTPError selects the response status; any other error yields 403.
type GuardFunc func(r *http.Request) error

// LoadingFunc reports whether a simulation is in progress for the request.
type LoadingFunc func(r *http.Request) bool

// HiddenFunc returns extra hidden inputs for the request, e.g. a CSRF token.
type HiddenFunc func(r *http.Request) map[string]string

// Reasons passed to a RejectFunc.
const (
	RejectBusy       = "busy"
	RejectInput      = "input"
	RejectValidation = "validation"
)

// RejectFunc observes a POST that did not reach the submit callback.
type RejectFunc func(r *http.Request, reason string)

type Options struct {
	RoutePath    string
	Renderer     render.Renderer
	Loading      LoadingFunc
	Guard        GuardFunc
	Hidden       HiddenFunc
	Rejected     RejectFunc
	Rerender     bool
	MaxBodyBytes int64

	UISchema *uischema.Store
	FormID   string
	Form     []form.Option
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePath:    defaultRoutePath,
		MaxBodyBytes: defaultMaxBodyBytes,
		FormID:       uischema.DefaultFormID,
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.RoutePath == "" {
		opts.RoutePath = defaultRoutePath
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = defaultMaxBodyBytes
	}
	if opts.FormID == "" {
		opts.FormID = uischema.DefaultFormID
	}
	if opts.Form != nil {
		opts.Form = append([]form.Option{}, opts.Form...)
	}
	return opts
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RoutePath = path
	}
}

// WithRenderer replaces the default HTML renderer.
func WithRenderer(renderer render.Renderer) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Renderer = renderer
	}
}

func WithLoading(fn LoadingFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Loading = fn
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

func WithHidden(fn HiddenFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Hidden = fn
	}
}

// WithUISchema captions the form from the store entry named id. An empty id
// selects uischema.DefaultFormID. Without it the embedded schema is used.
func WithUISchema(store *uischema.Store, id string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.UISchema = store
		o.FormID = id
	}
}

// WithFormOptions passes options to every form holder the handler builds.
func WithFormOptions(opts ...form.Option) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Form = append(o.Form, opts...)
	}
}

// WithRerender answers accepted submissions with the re-rendered form
// instead of a redirect.
func WithRerender(enabled bool) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Rerender = enabled
	}
}

func WithMaxBodyBytes(limit int64) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MaxBodyBytes = limit
	}
}

// WithRejected registers fn to observe refused submissions.
func WithRejected(fn RejectFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Rejected = fn
	}
}
