package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/goliatone/go-fireform/pkg/form"
	"github.com/goliatone/go-fireform/pkg/observation"
	"github.com/goliatone/go-fireform/pkg/render"
	"github.com/goliatone/go-fireform/pkg/renderers/html"
	"github.com/goliatone/go-fireform/pkg/uischema"
)

const defaultRendererName = "html"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithTransformer registers a Transformer that runs on every view before it
// is rendered.
func WithTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// WithUISchemaFS supplies an fs.FS holding UI schema documents. Pass nil to
// disable the embedded defaults.
func WithUISchemaFS(fsys fs.FS) Option {
	return func(o *Orchestrator) {
		o.uiSchemaFS = fsys
		o.uiSchemaSpecified = true
	}
}

// WithFormOptions appends form options applied after the UI schema.
func WithFormOptions(opts ...form.Option) Option {
	return func(o *Orchestrator) {
		o.formOptions = append(o.formOptions, opts...)
	}
}

// Orchestrator renders the observation form with a named renderer. It applies
// defaults (html renderer, embedded UI schema) while remaining open to
// dependency injection.
type Orchestrator struct {
	registry          *render.Registry
	defaultRenderer   string
	initialiseErr     error
	uiSchemaFS        fs.FS
	uiSchemaSpecified bool
	store             *uischema.Store
	formOptions       []form.Option
	transformer       Transformer
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes a single render.
type Request struct {
	// FormID selects the UI schema entry. Empty selects uischema.DefaultFormID.
	FormID string

	// Renderer names the renderer to use. If empty, the orchestrator falls back
	// to the configured default renderer.
	Renderer string

	// Initial seeds the record; nil renders observation.Defaults.
	Initial *observation.Observation

	// RenderOptions carries per-request data such as the loading flag, field
	// errors or hidden inputs.
	RenderOptions render.Options
}

// Generate builds a form holder for the request, captions it from the UI
// schema and renders its view. Rendering never submits.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}

	f, err := o.buildForm(req)
	if err != nil {
		return nil, err
	}

	view := f.View(req.RenderOptions.Loading)
	if o.transformer != nil {
		if err := o.transformer.Transform(ctx, &view); err != nil {
			return nil, fmt.Errorf("orchestrator: transform view: %w", err)
		}
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	output, err := renderer.Render(ctx, view, req.RenderOptions)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

// Renderers lists the registered renderer names.
func (o *Orchestrator) Renderers() []string {
	if o.registry == nil {
		return nil
	}
	return o.registry.List()
}

func (o *Orchestrator) buildForm(req Request) (*form.Form, error) {
	var opts []form.Option
	if o.store != nil {
		id := req.FormID
		if id == "" {
			id = uischema.DefaultFormID
		}
		schemaOpts, err := uischema.NewDecorator(o.store).Options(id)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: %w", err)
		}
		opts = append(opts, schemaOpts...)
	}
	opts = append(opts, o.formOptions...)
	if req.Initial != nil {
		opts = append(opts, form.WithInitial(*req.Initial))
	}

	f, err := form.New(func(observation.Observation) {}, opts...)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: build form: %w", err)
	}
	return f, nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}

	renderer, err := o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.registry == nil {
		o.registry = render.NewRegistry()
		renderer, err := html.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
		} else {
			o.registry.MustRegister(renderer)
		}
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}

	if !o.uiSchemaSpecified && o.uiSchemaFS == nil {
		o.uiSchemaFS = uischema.EmbeddedFS()
	}
	if o.uiSchemaFS == nil {
		return
	}

	store, err := uischema.LoadFS(o.uiSchemaFS)
	if err != nil {
		o.initialiseErr = fmt.Errorf("orchestrator: load ui schema: %w", err)
		return
	}
	if store.Empty() {
		return
	}
	o.store = store
}
