package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"

	"github.com/goliatone/go-fireform/internal/config"
	"github.com/goliatone/go-fireform/internal/sink"
	"github.com/goliatone/go-fireform/pkg/form"
	"github.com/goliatone/go-fireform/pkg/observation"
	"github.com/goliatone/go-fireform/pkg/renderers/tui"
)

func runPrompt(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("prompt", flag.ContinueOnError)
	fs.SetOutput(stderr)
	format := fs.String("format", string(tui.OutputFormatJSON), "output format: json, form or pretty")
	loading := fs.Bool("loading", false, "treat a simulation as already running")
	schemaDir := fs.String("uischema", "", "directory of UI schema files (embedded default if empty)")
	formID := fs.String("form", "", "UI schema form id")
	publish := fs.Bool("publish", false, "deliver the submitted record to the configured sinks")
	if err := fs.Parse(args); err != nil {
		return err
	}

	outputFormat, err := tui.ParseOutputFormat(*format)
	if err != nil {
		return err
	}
	renderer, err := tui.New(tui.WithOutputFormat(outputFormat))
	if err != nil {
		return err
	}

	_, opts, err := schemaOptions(*schemaDir, *formID)
	if err != nil {
		return err
	}

	onSubmit := func(observation.Observation) {}
	var dispatcher *sink.Dispatcher
	if *publish {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		logger := promptLogger(cfg, stderr)
		sinks, _, err := buildSinks(cfg, logger)
		if err != nil {
			return err
		}
		dispatcher = sink.NewDispatcher(sinks, sink.WithTimeout(cfg.SinkTimeout), sink.WithLogger(logger))
		onSubmit = dispatcher.Submit
	}

	f, err := form.New(onSubmit, opts...)
	if err != nil {
		return err
	}

	out, runErr := renderer.Run(ctx, f, *loading)
	if dispatcher != nil {
		if err := dispatcher.Close(context.Background()); err != nil {
			runErr = errors.Join(runErr, err)
		}
	}
	switch {
	case errors.Is(runErr, tui.ErrAborted):
		fmt.Fprintln(stderr, "aborted")
		return nil
	case runErr != nil:
		return runErr
	}

	if _, err := stdout.Write(out); err != nil {
		return err
	}
	if len(out) > 0 && out[len(out)-1] != '\n' {
		fmt.Fprintln(stdout)
	}
	return nil
}

// promptLogger keeps sink logs on stderr so stdout carries only the record.
func promptLogger(cfg *config.Config, stderr io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
}
