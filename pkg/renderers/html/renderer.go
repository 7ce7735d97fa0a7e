package html

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-fireform/pkg/form"
	"github.com/goliatone/go-fireform/pkg/observation"
	"github.com/goliatone/go-fireform/pkg/render"
	rendertemplate "github.com/goliatone/go-fireform/pkg/render/template"
	gotemplate "github.com/goliatone/go-fireform/pkg/render/template/gotemplate"
	"github.com/goliatone/go-fireform/pkg/uischema"
)

// Option customises the renderer configuration.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	theme            *theme.RendererConfig
	stylesheet       string
	inlineStyles     bool
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS. The bundle
// must provide templates/form.tmpl.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithTheme replaces the default fire palette. The config's CSS variables are
// emitted on the form root.
func WithTheme(t *theme.RendererConfig) Option {
	return func(cfg *config) {
		if t != nil {
			cfg.theme = t
		}
	}
}

// WithStylesheet links an external stylesheet from the rendered markup.
func WithStylesheet(href string) Option {
	return func(cfg *config) {
		cfg.stylesheet = strings.TrimSpace(href)
	}
}

// WithDefaultStyles inlines the bundled stylesheet.
func WithDefaultStyles() Option {
	return func(cfg *config) {
		cfg.inlineStyles = true
	}
}

// Renderer renders the observation form as an HTML fragment.
type Renderer struct {
	templates    rendertemplate.TemplateRenderer
	theme        themeContext
	stylesheet   string
	inlineStyles string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the HTML renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS(), theme: DefaultTheme()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	templates := cfg.templateRenderer
	if templates == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("html renderer: configure template renderer: %w", err)
		}
		templates = engine
	}

	r := &Renderer{
		templates:  templates,
		theme:      buildThemeContext(cfg.theme),
		stylesheet: stylesheetURL(cfg.theme, cfg.stylesheet),
	}
	if cfg.inlineStyles {
		r.inlineStyles = defaultStylesheet()
	}
	return r, nil
}

func (r *Renderer) Name() string {
	return "html"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render writes the form card for view. Loading and errors come from opts so
// the same view can be rendered in any request state.
func (r *Renderer) Render(_ context.Context, view form.View, opts render.Options) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("html renderer: template renderer is nil")
	}

	result, err := r.templates.RenderTemplate("templates/form.tmpl", r.templateData(view, opts))
	if err != nil {
		return nil, fmt.Errorf("html renderer: render template: %w", err)
	}
	return []byte(result), nil
}

type formData struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Action      string       `json:"action"`
	Method      string       `json:"method"`
	SubmitLabel string       `json:"submit_label"`
	Disabled    bool         `json:"disabled"`
	Loading     bool         `json:"loading"`
	Fields      []fieldData  `json:"fields"`
	Hidden      []hiddenData `json:"hidden,omitempty"`
	Errors      []string     `json:"errors,omitempty"`
	Notice      string       `json:"notice,omitempty"`
	Classes     classData    `json:"classes"`
}

type fieldData struct {
	Name      string   `json:"name"`
	ID        string   `json:"id"`
	OutputID  string   `json:"output_id"`
	ErrorID   string   `json:"error_id"`
	InputType string   `json:"input_type"`
	Slider    bool     `json:"slider"`
	Label     string   `json:"label"`
	Help      string   `json:"help,omitempty"`
	Icon      string   `json:"icon,omitempty"`
	Min       string   `json:"min,omitempty"`
	Max       string   `json:"max,omitempty"`
	Step      string   `json:"step,omitempty"`
	Required  bool     `json:"required"`
	Value     string   `json:"value"`
	Display   string   `json:"display"`
	Errors    []string `json:"errors,omitempty"`
}

type hiddenData struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type classData struct {
	Form    string `json:"form"`
	Header  string `json:"header"`
	Grid    string `json:"grid"`
	Field   string `json:"field"`
	Slider  string `json:"slider"`
	Actions string `json:"actions"`
	Errors  string `json:"errors"`
	Notice  string `json:"notice"`
}

func (r *Renderer) templateData(view form.View, opts render.Options) map[string]any {
	loading := view.Loading || opts.Loading
	submitLabel := view.SubmitLabel
	if opts.Loading && !view.Loading {
		submitLabel = form.DefaultPresentation().LoadingLabel
	}

	method := strings.ToUpper(strings.TrimSpace(opts.Method))
	if method == "" {
		method = "POST"
	}

	data := formData{
		Title:       view.Title,
		Description: view.Description,
		Action:      opts.Action,
		Method:      method,
		SubmitLabel: submitLabel,
		Disabled:    view.Disabled || loading,
		Loading:     loading,
		Errors:      opts.FormErrors,
		Notice:      opts.Notice,
		Classes: classData{
			Form:    string(ClassForm),
			Header:  string(ClassHeader),
			Grid:    string(ClassGrid),
			Field:   string(ClassField),
			Slider:  string(ClassSlider),
			Actions: string(ClassActions),
			Errors:  string(ClassErrors),
			Notice:  string(ClassNotice),
		},
	}

	for _, fv := range view.Fields {
		data.Fields = append(data.Fields, buildFieldData(fv, opts.FieldErrors(fv.Name)))
	}
	for _, hidden := range render.SortedHiddenFields(opts.Hidden) {
		data.Hidden = append(data.Hidden, hiddenData{Name: hidden.Name, Value: hidden.Value})
	}

	return map[string]any{
		"form":          data,
		"theme":         r.theme,
		"stylesheet":    r.stylesheet,
		"inline_styles": r.inlineStyles,
	}
}

func buildFieldData(fv form.FieldView, errs []string) fieldData {
	fd := fieldData{
		Name:     fv.Name,
		ID:       controlID(fv.Name),
		OutputID: outputID(fv.Name),
		ErrorID:  errorID(fv.Name),
		Label:    fv.Label,
		Help:     fv.Help,
		Icon:     uischema.SanitizeIcon(fv.Icon),
		Min:      fv.Min,
		Max:      fv.Max,
		Step:     fv.Step,
		Required: fv.Required,
		Value:    fv.Value,
		Display:  fv.Display,
		Errors:   errs,
	}
	switch fv.Kind {
	case observation.KindSlider:
		fd.InputType = "range"
		fd.Slider = true
	case observation.KindNumber:
		fd.InputType = "number"
	default:
		fd.InputType = "text"
	}
	return fd
}
