// ABOUTME: Reference record store HTTP server.
// ABOUTME: Wires the chi router, middleware, and exercise and health routes.
package server

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/harperreed/gymbot/internal/storage"
)

// Info is what the health info endpoint reports.
type Info struct {
	Version     string
	Environment string
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	repo   storage.Repository
	log    *log.Logger
	info   Info
	router chi.Router
}

// New creates a new Server with all routes configured.
func New(repo storage.Repository, logger *log.Logger, info Info) *Server {
	if info.Version == "" {
		info.Version = "dev"
	}
	if info.Environment == "" {
		info.Environment = "development"
	}
	s := &Server{
		repo:   repo,
		log:    logger,
		info:   info,
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Route("/api/health", func(r chi.Router) {
		r.Get("/check", s.handleHealthCheck)
		r.Get("/info", s.handleHealthInfo)
	})

	s.router.Route("/api/exercises", func(r chi.Router) {
		r.Get("/", s.handleListExercises)
		r.Post("/", s.handleCreateExercise)
		r.Get("/grouped", s.handleGroupedByCategory)
		r.Get("/grouped/week", s.handleGroupedByWeek)
		r.Get("/week/{week}", s.handleExercisesByWeek)
		r.Get("/category/{category}", s.handleExercisesByCategory)
		r.Get("/{id}", s.handleGetExercise)
		r.Put("/{id}", s.handleUpdateExercise)
		r.Delete("/{id}", s.handleDeleteExercise)
	})
}
