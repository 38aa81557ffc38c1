// Package web serves the catalogue over HTTP: the HTMX-driven page and
// fragments for browsers, and a JSON API under /api for scripting. Import,
// export and report downloads are streamed through the same service layer
// the page uses.
package web

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"crafting-catalogue/internal/config"
	"crafting-catalogue/internal/core"
)

// Server is the HTTP frontend over the catalogue service.
type Server struct {
	service *core.Service
	router  *chi.Mux
	server  *http.Server

	maxImportSize int64
}

// NewServer builds the router and the underlying http.Server from config.
func NewServer(service *core.Service, cfg *config.Config) *Server {
	s := &Server{
		service:       service,
		router:        chi.NewRouter(),
		maxImportSize: cfg.Import.MaxFileSize,
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(middleware.Timeout(cfg.Server.RequestTimeout))

	s.routes()

	s.server = &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return s
}

func (s *Server) routes() {
	// Pages and HTMX fragments
	s.router.Get("/", s.handleDashboard)
	s.router.Get("/components", s.handleComponentsFragment)
	s.router.Post("/components", s.handleCreateFragment)
	s.router.Delete("/components/{id}", s.handleDeleteFragment)
	s.router.Post("/import", s.handleImportFragment)

	// JSON API
	s.router.Route("/api", func(r chi.Router) {
		r.Get("/components", s.handleListComponents)
		r.Post("/components", s.handleCreateComponent)
		r.Get("/components/{id}", s.handleGetComponent)
		r.Put("/components/{id}", s.handleUpdateComponent)
		r.Delete("/components/{id}", s.handleDeleteComponent)

		r.Get("/categories", s.handleCategories)
		r.Get("/stats", s.handleStats)

		r.Get("/settings", s.handleGetSettings)
		r.Put("/settings", s.handleSaveSettings)

		r.Post("/import", s.handleImport)
		r.Get("/export", s.handleExport)
		r.Get("/report", s.handleReport)
	})

	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
}

// Router exposes the handler for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start runs the HTTP server until it is shut down.
func (s *Server) Start() error {
	slog.Info("server listening", "addr", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
