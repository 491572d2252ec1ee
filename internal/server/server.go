// Package server exposes the document comprehension API over HTTP.
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/docsage/docsage/internal/assist"
	"github.com/docsage/docsage/internal/store"
)

// Server wires the store and assist service into HTTP handlers.
type Server struct {
	store store.Store
	svc   assist.Service
}

// New creates a Server.
func New(st store.Store, svc assist.Service) *Server {
	return &Server{store: st, svc: svc}
}

// Router builds the chi router with CORS, panic recovery, and request
// logging applied to every route.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))
	r.Use(logRequests)

	r.Get("/health", s.handleHealth)
	r.Post("/upload", s.handleUpload)
	r.Post("/ask", s.handleAsk)
	r.Post("/challenge", s.handleChallenge)
	r.Post("/evaluate", s.handleEvaluate)
	r.Get("/documents", s.handleListDocuments)
	r.Get("/document/{documentID}", s.handleGetDocument)
	r.Delete("/document/{documentID}", s.handleDeleteDocument)

	return r
}

// logRequests logs one line per request with method, path, status, and
// duration.
func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		zap.L().Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	})
}
