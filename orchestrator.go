package fireform

import (
	"context"

	"github.com/goliatone/go-fireform/pkg/form"
	"github.com/goliatone/go-fireform/pkg/observation"
	"github.com/goliatone/go-fireform/pkg/orchestrator"
	"github.com/goliatone/go-fireform/pkg/render"
)

// Observation aliases the record the form collects.
type Observation = observation.Observation

// SubmitFunc aliases the submission callback.
type SubmitFunc = form.SubmitFunc

// RenderOptions describes per-request data renderers use to show the loading
// state, field errors, or hidden inputs.
type RenderOptions = render.Options

// NewForm creates a form holder seeded with the default record.
func NewForm(onSubmit SubmitFunc, options ...form.Option) (*form.Form, error) {
	return form.New(onSubmit, options...)
}

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// GenerateHTML renders the default form as HTML. isLoading disables the
// submit action and shows the loading label.
func GenerateHTML(ctx context.Context, isLoading bool, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Renderer:      "html",
		RenderOptions: RenderOptions{Loading: isLoading},
	})
}
