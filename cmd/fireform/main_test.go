package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRun_UnknownCommand(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if err := run(context.Background(), []string{"simulate"}, &stdout, &stderr); err == nil {
		t.Fatalf("expected error for unknown command")
	}
	if !strings.Contains(stderr.String(), "usage: fireform") {
		t.Fatalf("expected usage on stderr, got %q", stderr.String())
	}
	if err := run(context.Background(), nil, &stdout, &stderr); err == nil {
		t.Fatalf("expected error without command")
	}
}

func TestRun_RenderHTMLToStdout(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if err := run(context.Background(), []string{"render", "-loading"}, &stdout, &stderr); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := stdout.String()
	for _, want := range []string{"Fire Risk Simulation", "<style", `<button type="submit" disabled>Processing...</button>`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output\n%s", want, out)
		}
	}
}

func TestRun_RenderTextToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "form.txt")
	var stdout, stderr bytes.Buffer
	if err := run(context.Background(), []string{"render", "-renderer", "tui", "-output", path}, &stdout, &stderr); err != nil {
		t.Fatalf("render: %v", err)
	}
	if stdout.Len() != 0 {
		t.Fatalf("expected nothing on stdout, got %q", stdout.String())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(data), "[Run Simulation]") {
		t.Fatalf("expected text card\n%s", data)
	}
}

func TestRun_RenderCustomSchema(t *testing.T) {
	dir := t.TempDir()
	doc := "forms:\n  ridge:\n    form:\n      title: Ridge Watch\n"
	if err := os.WriteFile(filepath.Join(dir, "ridge.yaml"), []byte(doc), 0o644); err != nil {
		t.Fatalf("write schema: %v", err)
	}

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"render", "-uischema", dir, "-form", "ridge", "-styles=false"}, &stdout, &stderr)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(stdout.String(), "Ridge Watch") {
		t.Fatalf("expected custom title\n%s", stdout.String())
	}
	if strings.Contains(stdout.String(), "<style") {
		t.Fatalf("expected no inline styles")
	}
}

func TestRun_RenderCustomTemplates(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "templates"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	tpl := `<main>{{ form.title }} ({{ form.fields|length }} fields)</main>`
	if err := os.WriteFile(filepath.Join(dir, "templates", "form.tmpl"), []byte(tpl), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}

	var stdout, stderr bytes.Buffer
	if err := run(context.Background(), []string{"render", "-templates", dir}, &stdout, &stderr); err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := stdout.String(); got != "<main>Fire Risk Simulation (9 fields)</main>" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestRun_PromptRejectsUnknownFormat(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if err := run(context.Background(), []string{"prompt", "-format", "xml"}, &stdout, &stderr); err == nil {
		t.Fatalf("expected unknown format error")
	}
}
