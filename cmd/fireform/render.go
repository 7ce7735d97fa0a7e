package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/goliatone/go-fireform/pkg/orchestrator"
	"github.com/goliatone/go-fireform/pkg/render"
	"github.com/goliatone/go-fireform/pkg/renderers/html"
	"github.com/goliatone/go-fireform/pkg/renderers/tui"
)

func runRender(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	fs.SetOutput(stderr)
	rendererName := fs.String("renderer", "html", "renderer to use: html or tui")
	output := fs.String("output", "", "output file (stdout if empty)")
	loading := fs.Bool("loading", false, "render the processing state")
	schemaDir := fs.String("uischema", "", "directory of UI schema files (embedded default if empty)")
	formID := fs.String("form", "", "UI schema form id")
	inlineStyles := fs.Bool("styles", true, "inline the default stylesheet in HTML output")
	templatesDir := fs.String("templates", "", "directory providing templates/form.tmpl for HTML output")
	if err := fs.Parse(args); err != nil {
		return err
	}

	htmlOpts := []html.Option{html.WithTemplatesDir(*templatesDir)}
	if *inlineStyles {
		htmlOpts = append(htmlOpts, html.WithDefaultStyles())
	}
	page, err := html.New(htmlOpts...)
	if err != nil {
		return err
	}
	text, err := tui.New()
	if err != nil {
		return err
	}

	orchOpts := []orchestrator.Option{
		orchestrator.WithRegistry(render.NewRegistry(page, text)),
	}
	if *schemaDir != "" {
		orchOpts = append(orchOpts, orchestrator.WithUISchemaFS(os.DirFS(*schemaDir)))
	}

	out, err := orchestrator.New(orchOpts...).Generate(ctx, orchestrator.Request{
		FormID:        *formID,
		Renderer:      *rendererName,
		RenderOptions: render.Options{Loading: *loading},
	})
	if err != nil {
		return err
	}

	if *output != "" {
		if err := os.WriteFile(*output, out, 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		fmt.Fprintf(stderr, "Form written to %s\n", *output)
		return nil
	}
	_, err = stdout.Write(out)
	return err
}
