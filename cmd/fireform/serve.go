package main

import (
	"context"
	"errors"
	"flag"
	"net/http"

	"github.com/goliatone/go-fireform/internal/config"
	"github.com/goliatone/go-fireform/internal/observability"
	"github.com/goliatone/go-fireform/internal/server"
	"github.com/goliatone/go-fireform/internal/sink"
	"github.com/goliatone/go-fireform/pkg/httpform"
	"github.com/goliatone/go-fireform/pkg/renderers/html"
)

func runServe(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	addr := fs.String("addr", "", "listen address (overrides HTTP_ADDR)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if *addr != "" {
		cfg.HTTPAddr = *addr
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	sinks, history, err := buildSinks(cfg, logger)
	if err != nil {
		return err
	}
	dispatcher := sink.NewDispatcher(sinks,
		sink.WithTimeout(cfg.SinkTimeout),
		sink.WithLogger(logger),
		sink.WithMetrics(metrics),
	)

	store, _, err := schemaOptions(cfg.UISchemaDir, "")
	if err != nil {
		return err
	}
	renderer, err := html.New(html.WithStylesheet(server.AssetsPrefix + html.StylesheetName))
	if err != nil {
		return err
	}

	deps := server.Deps{
		OnSubmit: dispatcher.Submit,
		Ready:    dispatcher,
		Logger:   logger,
		Form: []httpform.OptionFn{
			httpform.WithRenderer(renderer),
			httpform.WithUISchema(store, ""),
			httpform.WithLoading(func(*http.Request) bool { return dispatcher.Busy() }),
			httpform.WithRejected(func(_ *http.Request, reason string) { dispatcher.Reject(reason) }),
		},
	}
	if history != nil {
		deps.History = history
	}

	srv, err := server.NewServer(cfg, deps)
	if err != nil {
		return err
	}

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if err := dispatcher.Close(shutdownCtx); err != nil {
		logger.Error("sink shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
	return nil
}
