// Package server implements the bloomforge HTTP API.
//
// The API mirrors the pipeline: POST /api/generate runs the full
// generate → solidify → render pipeline and stores the result as a
// design; stored designs can then be fetched, listed, re-solidified,
// and exported in any supported format.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/florelab/bloomforge/pkg/pipeline"
	"github.com/florelab/bloomforge/pkg/preset"
	"github.com/florelab/bloomforge/pkg/store"
)

// Config configures the API server.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string

	// Runner executes pipeline requests.
	Runner *pipeline.Runner

	// Store persists designs. A nil store falls back to in-memory.
	Store store.Store

	// Catalog provides size and material presets. Nil means builtin.
	Catalog *preset.Catalog

	// Logger receives request and lifecycle logs.
	Logger *log.Logger

	// ShutdownTimeout bounds graceful shutdown. Defaults to 10s.
	ShutdownTimeout time.Duration
}

// Server is the bloomforge API server.
type Server struct {
	cfg     Config
	runner  *pipeline.Runner
	store   store.Store
	catalog *preset.Catalog
	logger  *log.Logger
	http    *http.Server
}

// New creates a server with its routes mounted.
func New(cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if cfg.Runner == nil {
		cfg.Runner = pipeline.NewRunner(nil, nil, cfg.Logger)
	}
	if cfg.Store == nil {
		cfg.Store = store.NewMemoryStore()
	}
	if cfg.Catalog == nil {
		cfg.Catalog = preset.Builtin()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}

	s := &Server{
		cfg:     cfg,
		runner:  cfg.Runner,
		store:   cfg.Store,
		catalog: cfg.Catalog,
		logger:  cfg.Logger,
	}
	s.http = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Router builds the chi router with all API routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/generate", s.handleGenerate)
		r.Get("/presets", s.handlePresets)

		r.Route("/designs", func(r chi.Router) {
			r.Get("/", s.handleListDesigns)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetDesign)
				r.Delete("/", s.handleDeleteDesign)
				r.Post("/solidify", s.handleSolidify)
				r.Get("/export/{format}", s.handleExport)
			})
		})
	})

	return r
}

// Start runs the server until ctx is canceled, then shuts down
// gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.http.Addr)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	return s.http.Shutdown(shutdownCtx)
}
