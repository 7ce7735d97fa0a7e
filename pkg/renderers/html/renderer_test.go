package html_test

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"testing/fstest"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-fireform/pkg/form"
	"github.com/goliatone/go-fireform/pkg/observation"
	"github.com/goliatone/go-fireform/pkg/render"
	gotemplate "github.com/goliatone/go-fireform/pkg/render/template/gotemplate"
	"github.com/goliatone/go-fireform/pkg/renderers/html"
)

func newView(t *testing.T, isLoading bool, opts ...form.Option) form.View {
	t.Helper()
	f, err := form.New(func(observation.Observation) {}, opts...)
	if err != nil {
		t.Fatalf("new form: %v", err)
	}
	return f.View(isLoading)
}

func renderView(t *testing.T, r *html.Renderer, view form.View, opts render.Options) string {
	t.Helper()
	out, err := r.Render(context.Background(), view, opts)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return string(out)
}

func mustRenderer(t *testing.T, opts ...html.Option) *html.Renderer {
	t.Helper()
	r, err := html.New(opts...)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return r
}

func TestRenderer_Metadata(t *testing.T) {
	r := mustRenderer(t)
	if r.Name() != "html" {
		t.Fatalf("unexpected name %q", r.Name())
	}
	if !strings.HasPrefix(r.ContentType(), "text/html") {
		t.Fatalf("unexpected content type %q", r.ContentType())
	}
}

func TestRenderer_DefaultMarkup(t *testing.T) {
	out := renderView(t, mustRenderer(t), newView(t, false), render.Options{Action: "/simulation"})

	wants := []string{
		`<h2>Fire Risk Simulation</h2>`,
		`<p>Enter environmental data to predict fire risk</p>`,
		`action="/simulation" method="POST"`,
		`<input type="text" id="ff-locationName" name="locationName" value="Forest Area 1" required>`,
		`<input type="number" id="ff-latitude" name="latitude" value="37.7749" min="-90" max="90" step="0.0001" required>`,
		`<input type="number" id="ff-longitude" name="longitude" value="-122.4194" min="-180" max="180" step="0.0001" required>`,
		`<input type="range" id="ff-temperature" name="temperature" value="25" min="-10" max="50" step="1"`,
		`<output id="ff-temperature-value" for="ff-temperature">25°C</output>`,
		`<output id="ff-humidity-value" for="ff-humidity">30%</output>`,
		`<output id="ff-windSpeed-value" for="ff-windSpeed">15 km/h</output>`,
		`<output id="ff-cloudCover-value" for="ff-cloudCover">40%</output>`,
		`<input type="range" id="ff-precipitation" name="precipitation" value="5.0" min="0" max="50" step="0.5"`,
		`<output id="ff-precipitation-value" for="ff-precipitation">5.0 mm</output>`,
		`<output id="ff-windDirection-value" for="ff-windDirection">180°</output>`,
		`<button type="submit">Run Simulation</button>`,
		`data-theme="fire"`,
		`--ff-accent: #e4572e`,
	}
	for _, want := range wants {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q\n%s", want, out)
		}
	}
	if strings.Contains(out, "disabled") {
		t.Fatalf("idle form must not be disabled:\n%s", out)
	}
}

func TestRenderer_FieldOrder(t *testing.T) {
	out := renderView(t, mustRenderer(t), newView(t, false), render.Options{})

	re := regexp.MustCompile(`data-field="([A-Za-z]+)"`)
	var got []string
	for _, match := range re.FindAllStringSubmatch(out, -1) {
		got = append(got, match[1])
	}
	var want []string
	for _, f := range observation.Fields() {
		want = append(want, string(f))
	}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("field order mismatch: got %v want %v", got, want)
	}
	if n := strings.Count(out, "<output "); n != 6 {
		t.Fatalf("expected 6 slider outputs, got %d", n)
	}
}

func TestRenderer_Loading(t *testing.T) {
	r := mustRenderer(t)

	fromView := renderView(t, r, newView(t, true), render.Options{})
	fromOptions := renderView(t, r, newView(t, false), render.Options{Loading: true})

	for name, out := range map[string]string{"view": fromView, "options": fromOptions} {
		if !strings.Contains(out, `<button type="submit" disabled>Processing...</button>`) {
			t.Fatalf("%s: expected disabled processing button\n%s", name, out)
		}
		if !strings.Contains(out, `aria-busy="true"`) {
			t.Fatalf("%s: expected aria-busy", name)
		}
	}
}

func TestRenderer_FieldAndFormErrors(t *testing.T) {
	out := renderView(t, mustRenderer(t), newView(t, false), render.Options{
		Errors: map[string][]string{
			"latitude": {"must be less than or equal to 90"},
		},
		FormErrors: []string{"A simulation is already running."},
	})

	if !strings.Contains(out, `aria-invalid="true" aria-describedby="ff-latitude-error"`) {
		t.Fatalf("expected latitude input to reference its error\n%s", out)
	}
	if !strings.Contains(out, `id="ff-latitude-error">must be less than or equal to 90</p>`) {
		t.Fatalf("expected latitude error message\n%s", out)
	}
	if !strings.Contains(out, `<li>A simulation is already running.</li>`) {
		t.Fatalf("expected form-level error\n%s", out)
	}
	if strings.Count(out, "aria-invalid") != 1 {
		t.Fatalf("only latitude should be invalid\n%s", out)
	}
}

func TestRenderer_EscapesValuesAndSanitisesIcons(t *testing.T) {
	rec := observation.Defaults()
	rec.LocationName = `"><script>alert(1)</script>`
	view := newView(t, false,
		form.WithInitial(rec),
		form.WithFieldPresentation(map[observation.Field]form.FieldPresentation{
			observation.FieldTemperature: {Icon: `<svg viewBox="0 0 1 1"><script>x()</script><path d="M0 0"/></svg>`},
		}),
	)

	out := renderView(t, mustRenderer(t), view, render.Options{})
	if strings.Contains(out, "<script>") {
		t.Fatalf("script leaked into output\n%s", out)
	}
	if !strings.Contains(out, "&lt;script&gt;") {
		t.Fatalf("expected escaped location value\n%s", out)
	}
	if !strings.Contains(out, `<span class="fireform-icon"><svg`) {
		t.Fatalf("expected sanitised icon to render\n%s", out)
	}
}

func TestRenderer_HiddenFieldsAndNotice(t *testing.T) {
	out := renderView(t, mustRenderer(t), newView(t, false), render.Options{
		Hidden: render.MergeHiddenFields(nil, render.CSRFToken("_csrf", "tok"), render.Hidden("run", 7)),
		Notice: "Simulation submitted.",
	})
	if !strings.Contains(out, `<input type="hidden" name="_csrf" value="tok">`) {
		t.Fatalf("expected csrf input\n%s", out)
	}
	if !strings.Contains(out, `<input type="hidden" name="run" value="7">`) {
		t.Fatalf("expected run input\n%s", out)
	}
	if !strings.Contains(out, `role="status">Simulation submitted.</p>`) {
		t.Fatalf("expected notice\n%s", out)
	}
}

func TestRenderer_Theme(t *testing.T) {
	r := mustRenderer(t, html.WithTheme(&theme.RendererConfig{
		Theme:   "ember",
		Variant: "dark",
		CSSVars: map[string]string{
			"--ff-accent": "#ff0000",
			"--ff-bad":    "red; background: url(x)",
			"not-a-var":   "blue",
		},
		AssetURL: func(key string) string { return "/themes/ember/" + key },
	}))
	out := renderView(t, r, newView(t, false), render.Options{})

	for _, want := range []string{
		`data-theme="ember"`,
		`data-theme-variant="dark"`,
		`style="--ff-accent: #ff0000"`,
		`<link rel="stylesheet" href="/themes/ember/fireform.css">`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q\n%s", want, out)
		}
	}
}

func TestRenderer_DefaultStyles(t *testing.T) {
	out := renderView(t, mustRenderer(t, html.WithDefaultStyles()), newView(t, false), render.Options{})
	if !strings.Contains(out, "<style>") || !strings.Contains(out, ".fireform-card") {
		t.Fatalf("expected inline stylesheet\n%s", out)
	}
}

func TestRenderer_Registry(t *testing.T) {
	registry := render.NewRegistry(mustRenderer(t))
	got, err := registry.Get("html")
	if err != nil || got.Name() != "html" {
		t.Fatalf("registry lookup failed: %v", err)
	}
}

func TestRenderer_CustomTemplateRenderer(t *testing.T) {
	engine, err := gotemplate.New(
		gotemplate.WithFS(fstest.MapFS{
			"templates/form.tmpl": {Data: []byte(`{{ brand }}|{{ form.submit_label }}|{{ form.fields|length }}`)},
		}),
		gotemplate.WithGlobalData(map[string]any{"brand": "Ridge Ops"}),
	)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	r, err := html.New(html.WithTemplateRenderer(engine))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	got := renderView(t, r, newView(t, false), render.Options{})
	if got != "Ridge Ops|Run Simulation|9" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestRenderer_TemplatesDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "templates"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	tpl := `<section>{{ form.submit_label }}</section>`
	if err := os.WriteFile(filepath.Join(dir, "templates", "form.tmpl"), []byte(tpl), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}

	r, err := html.New(html.WithTemplatesDir(dir))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	got := renderView(t, r, newView(t, true), render.Options{})
	if got != "<section>Processing...</section>" {
		t.Fatalf("unexpected output %q", got)
	}
}
