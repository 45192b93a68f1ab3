// Package api serves the rendered documentation site for local preview:
// static pages plus the search index, never computed search results.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the preview HTTP server.
type Server struct {
	router  chi.Router
	log     *slog.Logger
	siteDir string
}

// NewServer creates and configures the preview server for siteDir.
func NewServer(siteDir string, log *slog.Logger) *Server {
	s := &Server{
		log:     log,
		siteDir: siteDir,
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
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)
	r.Handle("/*", http.FileServer(http.Dir(s.siteDir)))

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
