package orchestrator_test

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-fireform/pkg/form"
	"github.com/goliatone/go-fireform/pkg/observation"
	"github.com/goliatone/go-fireform/pkg/orchestrator"
	"github.com/goliatone/go-fireform/pkg/render"
	"github.com/goliatone/go-fireform/pkg/renderers/html"
	"github.com/goliatone/go-fireform/pkg/renderers/tui"
)

type recordingRenderer struct {
	name string
	view form.View
	opts render.Options
}

func (r *recordingRenderer) Name() string        { return r.name }
func (r *recordingRenderer) ContentType() string { return "text/plain" }
func (r *recordingRenderer) Render(_ context.Context, view form.View, opts render.Options) ([]byte, error) {
	r.view = view
	r.opts = opts
	return []byte(r.name), nil
}

func TestGenerate_DefaultsToHTML(t *testing.T) {
	orch := orchestrator.New()

	out, err := orch.Generate(context.Background(), orchestrator.Request{})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	body := string(out)
	for _, want := range []string{
		"Fire Risk Simulation",
		"Enter environmental data to predict fire risk",
		`value="Forest Area 1"`,
		"<svg",
		">Run Simulation</button>",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in output\n%s", want, body)
		}
	}
	if diff := cmp.Diff([]string{"html"}, orch.Renderers()); diff != "" {
		t.Fatalf("renderers mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerate_LoadingAndInitial(t *testing.T) {
	rec := &recordingRenderer{name: "rec"}
	orch := orchestrator.New(
		orchestrator.WithRegistry(render.NewRegistry(rec)),
		orchestrator.WithDefaultRenderer("rec"),
	)

	initial := observation.Defaults()
	initial.Precipitation = 12.5
	_, err := orch.Generate(context.Background(), orchestrator.Request{
		Initial:       &initial,
		RenderOptions: render.Options{Loading: true},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !rec.view.Disabled || rec.view.SubmitLabel != "Processing..." {
		t.Fatalf("expected disabled processing view, got %+v", rec.view)
	}
	if !rec.opts.Loading {
		t.Fatalf("expected loading option forwarded")
	}
	for _, fv := range rec.view.Fields {
		if fv.Name == string(observation.FieldPrecipitation) && fv.Display != "12.5 mm" {
			t.Fatalf("expected initial precipitation, got %q", fv.Display)
		}
	}
}

func TestGenerate_RendererSelection(t *testing.T) {
	driverless, err := tui.New()
	if err != nil {
		t.Fatalf("tui: %v", err)
	}
	page, err := html.New()
	if err != nil {
		t.Fatalf("html: %v", err)
	}
	orch := orchestrator.New(orchestrator.WithRegistry(render.NewRegistry(page, driverless)))

	out, err := orch.Generate(context.Background(), orchestrator.Request{Renderer: "tui"})
	if err != nil {
		t.Fatalf("generate tui: %v", err)
	}
	if !strings.Contains(string(out), "Fire Risk Simulation") || strings.Contains(string(out), "<form") {
		t.Fatalf("expected plain text card\n%s", out)
	}

	if _, err := orch.Generate(context.Background(), orchestrator.Request{Renderer: "pdf"}); err == nil {
		t.Fatalf("expected unknown renderer error")
	}
}

func TestGenerate_TransformerAndUISchema(t *testing.T) {
	rec := &recordingRenderer{name: "rec"}
	files := fstest.MapFS{
		"custom.yaml": {Data: []byte(`
forms:
  ridge:
    form:
      title: Ridge Watch
    fields:
      humidity:
        label: Relative humidity
`)},
	}
	orch := orchestrator.New(
		orchestrator.WithRegistry(render.NewRegistry(rec)),
		orchestrator.WithDefaultRenderer("rec"),
		orchestrator.WithUISchemaFS(files),
		orchestrator.WithTransformer(orchestrator.TransformerFunc(func(_ context.Context, view *form.View) error {
			view.Description = "Field crew entry"
			return nil
		})),
	)

	if _, err := orch.Generate(context.Background(), orchestrator.Request{FormID: "ridge"}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if rec.view.Title != "Ridge Watch" || rec.view.Description != "Field crew entry" {
		t.Fatalf("unexpected captions: %q / %q", rec.view.Title, rec.view.Description)
	}
	var label string
	for _, fv := range rec.view.Fields {
		if fv.Name == string(observation.FieldHumidity) {
			label = fv.Label
		}
	}
	if label != "Relative humidity" {
		t.Fatalf("expected schema label, got %q", label)
	}

	if _, err := orch.Generate(context.Background(), orchestrator.Request{}); err == nil {
		t.Fatalf("expected missing default form error")
	}
}

func TestGenerate_NoUISchema(t *testing.T) {
	rec := &recordingRenderer{name: "rec"}
	orch := orchestrator.New(
		orchestrator.WithRegistry(render.NewRegistry(rec)),
		orchestrator.WithDefaultRenderer("rec"),
		orchestrator.WithUISchemaFS(nil),
	)
	if _, err := orch.Generate(context.Background(), orchestrator.Request{FormID: "anything"}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if rec.view.Title != form.DefaultPresentation().Title {
		t.Fatalf("expected stock title, got %q", rec.view.Title)
	}
}

func TestGenerate_ContextRequired(t *testing.T) {
	orch := orchestrator.New()
	//nolint:staticcheck // nil context is the case under test
	if _, err := orch.Generate(nil, orchestrator.Request{}); err == nil {
		t.Fatalf("expected error for nil context")
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := orch.Generate(ctx, orchestrator.Request{}); err == nil {
		t.Fatalf("expected error for cancelled context")
	}
}
