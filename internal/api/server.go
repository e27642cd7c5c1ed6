// Package api serves ontology sessions over HTTP.
//
// Each client creates a session, loads a document into it and then queries
// the session: class graph, branches, labels, axioms, search, positioned
// views and rendered exports. Sessions live in a [session.Store] and expire
// when idle.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/ontoview/internal/config"
	"github.com/matzehuels/ontoview/pkg/pipeline"
	"github.com/matzehuels/ontoview/pkg/session"
)

// Server is the HTTP API server for ontoview.
type Server struct {
	router chi.Router
	runner *pipeline.Runner
	store  session.Store
	logger *log.Logger
	cfg    config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(runner *pipeline.Runner, store session.Store, logger *log.Logger, cfg config.Config) *Server {
	s := &Server{
		runner: runner,
		store:  store,
		logger: logger,
		cfg:    cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.logger))

	r.Get("/health", s.handleHealth)

	r.Route("/api/sessions", func(r chi.Router) {
		r.Post("/", s.handleCreateSession)

		r.Route("/{sessionID}", func(r chi.Router) {
			r.Get("/", s.handleGetSession)
			r.Delete("/", s.handleDeleteSession)
			r.Post("/document", s.handleLoadDocument)
			r.Put("/language", s.handleSetLanguage)

			r.Get("/graph", s.handleGraph)
			r.Get("/branch/{classID}", s.handleBranch)
			r.Get("/classes/{classID}/label", s.handleLabel)
			r.Get("/classes/{classID}/axioms", s.handleAxioms)
			r.Get("/properties/{propertyID}", s.handleProperty)
			r.Get("/search", s.handleSearch)

			r.Get("/view", s.handleView)
			r.Get("/export", s.handleExport)
		})
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully. Expired sessions are swept every cleanup interval.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	if interval := s.cfg.Server.CleanupInterval.Duration; interval > 0 {
		go session.RunCleanup(ctx, s.store, interval)
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting ontoview server", "addr", addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	}
}
