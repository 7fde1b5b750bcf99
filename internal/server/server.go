// Package server exposes the voice pipeline, timers, and recipe catalog
// over HTTP.
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/kfarah/kitchenbuddy/internal/domain"
	"github.com/kfarah/kitchenbuddy/internal/logger"
	"github.com/kfarah/kitchenbuddy/internal/pipeline"
	"github.com/kfarah/kitchenbuddy/internal/timer"
)

// Option configures the server.
type Option func(*Server)

// WithResponder enables the direct AI query endpoint.
func WithResponder(r domain.Responder) Option {
	return func(s *Server) { s.responder = r }
}

// Server holds the HTTP handlers and their dependencies.
type Server struct {
	pipeline  *pipeline.Pipeline
	recipes   domain.RecipeSource
	sessions  domain.SessionStore
	timers    *timer.Manager
	responder domain.Responder
	log       *logger.Logger
}

// New creates a server with the given dependencies and options.
func New(p *pipeline.Pipeline, recipes domain.RecipeSource, sessions domain.SessionStore, timers *timer.Manager, log *logger.Logger, opts ...Option) *Server {
	s := &Server{
		pipeline: p,
		recipes:  recipes,
		sessions: sessions,
		timers:   timers,
		log:      log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router builds the chi router with all routes and middleware.
func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Use(s.requireUser)

		r.Post("/voice/command", s.handleVoiceCommand)
		r.Post("/voice/transcribe", s.handleTranscribe)
		r.Get("/voice/status", s.handleVoiceStatus)

		r.Post("/ai/query", s.handleAIQuery)

		r.Route("/timers", func(r chi.Router) {
			r.Get("/{id}", s.handleTimerStatus)
			r.Delete("/{id}", s.handleTimerStop)
		})

		r.Get("/recipes", s.handleRecipeList)
		r.Get("/recipes/{id}", s.handleRecipeGet)
		r.Get("/search", s.handleSearch)
	})

	return r
}

// requestLogger logs one line per request through the app logger.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Debug("%s %s -> %d (%s)", r.Method, r.URL.Path, ww.Status(), time.Since(start).Round(time.Millisecond))
	})
}
