package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	fireform "github.com/goliatone/go-fireform"
	"github.com/goliatone/go-fireform/internal/config"
	"github.com/goliatone/go-fireform/internal/sink"
	"github.com/goliatone/go-fireform/pkg/form"
	"github.com/goliatone/go-fireform/pkg/httpform"
)

// AssetsPrefix is where the bundled stylesheet is served.
const AssetsPrefix = "/assets/"

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker = sharedobs.ReadinessChecker

type alwaysReady struct{}

func (alwaysReady) CheckReadiness(context.Context) error { return nil }

// HistoryReader returns the most recent submissions, newest first.
type HistoryReader interface {
	Recent(ctx context.Context, n int) ([]sink.Envelope, error)
}

// Deps are the collaborators the server routes to.
type Deps struct {
	OnSubmit form.SubmitFunc
	Ready    ReadinessChecker
	History  HistoryReader
	Logger   *slog.Logger
	Form     []httpform.OptionFn
}

// Server exposes the observation form plus health, readiness, and metrics
// endpoints.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
	formPath   string
}

// NewServer creates an HTTP server with the form routes, /healthz, /readyz,
// /metrics, the stylesheet under AssetsPrefix and, when a history reader is set, /observations.
func NewServer(cfg *config.Config, deps Deps) (*Server, error) {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	mux := http.NewServeMux()

	formOpts := append([]httpform.OptionFn{httpform.WithRoutePath(cfg.FormRoute)}, deps.Form...)
	formPath, err := httpform.New(deps.OnSubmit, formOpts...).RegisterRoutes(mux, "")
	if err != nil {
		return nil, fmt.Errorf("server: register form: %w", err)
	}

	s := &Server{
		httpServer: &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      withCORS(mux, cfg.CORSAllowedOrigins),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger:   logger,
		formPath: formPath,
	}

	if formPath != "/" {
		mux.Handle("GET /{$}", http.RedirectHandler(formPath, http.StatusFound))
	}
	mux.Handle("GET /healthz", sharedobs.LivenessHandler())
	ready := deps.Ready
	if ready == nil {
		ready = alwaysReady{}
	}
	mux.Handle("GET /readyz", sharedobs.ReadinessHandler(ready))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.Handle("GET "+AssetsPrefix, http.StripPrefix(AssetsPrefix, http.FileServerFS(fireform.AssetsFS())))
	if deps.History != nil {
		mux.HandleFunc("GET /observations", s.handleHistory(deps.History))
	}

	return s, nil
}

// FormPath is the pattern the form is mounted on.
func (s *Server) FormPath() string {
	return s.formPath
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr, "form", s.formPath)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func withCORS(h http.Handler, origins []string) http.Handler {
	if len(origins) == 0 {
		return h
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(h)
}

func (s *Server) handleHistory(history HistoryReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := defaultHistoryLimit
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n <= 0 {
				sharedobs.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "limit must be a positive integer"})
				return
			}
			limit = min(n, maxHistoryLimit)
		}

		envs, err := history.Recent(r.Context(), limit)
		if err != nil {
			s.logger.Error("history query failed", "error", err)
			sharedobs.WriteJSON(w, http.StatusInternalServerError, map[string]string{"error": "history unavailable"})
			return
		}
		if envs == nil {
			envs = []sink.Envelope{}
		}
		sharedobs.WriteJSON(w, http.StatusOK, map[string]any{"observations": envs})
	}
}
