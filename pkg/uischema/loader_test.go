package uischema_test

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-fireform/pkg/form"
	"github.com/goliatone/go-fireform/pkg/observation"
	"github.com/goliatone/go-fireform/pkg/uischema"
)

func TestLoadDefault(t *testing.T) {
	store, err := uischema.LoadDefault()
	if err != nil {
		t.Fatalf("load default: %v", err)
	}
	cfg, ok := store.Form(uischema.DefaultFormID)
	if !ok {
		t.Fatalf("default form missing, have %v", store.IDs())
	}
	if cfg.Form.Title != "Fire Risk Simulation" {
		t.Fatalf("title mismatch: %q", cfg.Form.Title)
	}
	if cfg.Form.Description != "Enter environmental data to predict fire risk" {
		t.Fatalf("description mismatch: %q", cfg.Form.Description)
	}
	for _, field := range observation.Fields() {
		fc, ok := cfg.Fields[field]
		if !ok {
			t.Fatalf("field %s missing from default schema", field)
		}
		if !strings.Contains(fc.Icon, "<svg") {
			t.Fatalf("field %s icon missing: %q", field, fc.Icon)
		}
	}
}

func TestLoadFS_JSONAndYAML(t *testing.T) {
	files := fstest.MapFS{
		"a.json": {Data: []byte(`{"forms":{"json":{"form":{"title":"From JSON"},"fields":{"humidity":{"label":"RH"}}}}}`)},
		"b.yml": {Data: []byte(`
forms:
  yaml:
    form:
      submitLabel: Go
    fields:
      windSpeed:
        helpText: "  gusts excluded  "
`)},
		"notes.txt": {Data: []byte("ignored")},
	}

	store, err := uischema.LoadFS(files)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff([]string{"json", "yaml"}, store.IDs()); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}

	jsonForm, _ := store.Form("json")
	if jsonForm.Form.Title != "From JSON" || jsonForm.Fields[observation.FieldHumidity].Label != "RH" {
		t.Fatalf("json form not parsed: %#v", jsonForm)
	}
	yamlForm, _ := store.Form("yaml")
	if got := yamlForm.Fields[observation.FieldWindSpeed].HelpText; got != "gusts excluded" {
		t.Fatalf("help text not trimmed: %q", got)
	}
}

func TestLoadFS_Errors(t *testing.T) {
	cases := map[string]fstest.MapFS{
		"unknown field": {"x.yaml": {Data: []byte("forms:\n  f:\n    fields:\n      dewPoint:\n        label: Dew\n")}},
		"duplicate form": {
			"a.yaml": {Data: []byte("forms:\n  f:\n    form:\n      title: A\n")},
			"b.yaml": {Data: []byte("forms:\n  f:\n    form:\n      title: B\n")},
		},
		"empty file": {"x.json": {Data: []byte("  ")}},
		"invalid":    {"x.yaml": {Data: []byte("forms: [")}},
	}
	for name, files := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := uischema.LoadFS(files); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestLoadFS_NilIsEmpty(t *testing.T) {
	store, err := uischema.LoadFS(nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !store.Empty() {
		t.Fatalf("expected empty store")
	}
}

func TestDecorator_Options(t *testing.T) {
	store, err := uischema.LoadDefault()
	if err != nil {
		t.Fatalf("load default: %v", err)
	}
	opts, err := uischema.NewDecorator(store).Options(uischema.DefaultFormID)
	if err != nil {
		t.Fatalf("options: %v", err)
	}

	f, err := form.New(func(observation.Observation) {}, opts...)
	if err != nil {
		t.Fatalf("new form: %v", err)
	}
	view := f.View(false)
	if view.Title != "Fire Risk Simulation" || view.SubmitLabel != "Run Simulation" {
		t.Fatalf("presentation not applied: %#v", view)
	}
	for _, fv := range view.Fields {
		if fv.Icon == "" {
			t.Fatalf("field %s missing icon", fv.Name)
		}
	}
	if got := view.Fields[3].Label; got != "Temperature (°C)" {
		t.Fatalf("label should keep the unit caption, got %q", got)
	}

	if _, err := uischema.NewDecorator(store).Options("missing"); err == nil {
		t.Fatalf("expected error for unknown form id")
	}
	opts, err = uischema.NewDecorator(nil).Options("anything")
	if err != nil || opts != nil {
		t.Fatalf("empty store should yield no options, got %v %v", opts, err)
	}
}
