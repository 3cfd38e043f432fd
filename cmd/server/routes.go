package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/Simplici0/marsloop/internal/auth"
	"github.com/Simplici0/marsloop/internal/regolith"
	"github.com/Simplici0/marsloop/internal/sources"
	"github.com/Simplici0/marsloop/internal/store"
)

type server struct {
	auth     *auth.Service
	store    *store.Store
	regolith regolith.Source
	gatherer sources.Gatherer
	logger   *zap.Logger
}

func newRouter(s *server) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Post("/login", s.handleLogin)
		r.Post("/logout", s.handleLogout)

		r.Get("/regolith", s.handleRegolithProfile)
		r.Get("/regolith/sites", s.handleRegolithSites)
		r.Get("/filament", s.handleFilament)
		r.Post("/evaluate", s.handleEvaluate)
		r.Get("/runs", s.handleRunsList)
		r.Get("/runs/{id}", s.handleRunDetail)
		r.Get("/regional", s.handleRegional)

		r.Group(func(r chi.Router) {
			r.Use(s.auth.Require)
			r.Put("/regolith/{site}", s.handleRegolithUpsert)
			r.Put("/filament", s.handleFilamentUpdate)
		})
	})

	return r
}

func (s *server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}
