// Package server exposes the intake pipeline over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/docuscan/docintake/internal/common"
	"github.com/docuscan/docintake/internal/docstore"
	"github.com/docuscan/docintake/internal/export"
	"github.com/docuscan/docintake/internal/pipeline"
	"github.com/docuscan/docintake/internal/repository"
)

type Service struct {
	logger   *slog.Logger
	store    *docstore.Store
	pipe     *pipeline.Pipeline
	sink     repository.ExtractionRepository // nil when no database is configured
	exporter *export.Service                 // nil when no database is configured
}

func NewService(logger *slog.Logger, store *docstore.Store, pipe *pipeline.Pipeline, sink repository.ExtractionRepository, exporter *export.Service) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		logger:   logger,
		store:    store,
		pipe:     pipe,
		sink:     sink,
		exporter: exporter,
	}
}

// Routes builds the router. All API endpoints live under /api.
func (s *Service) Routes() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/documents", s.handleUpload)
		r.Get("/documents/{id}", s.handleGetDocument)
		r.Put("/documents/{id}/text", s.handleSaveText)
		r.Post("/detect", s.handleDetect)
		r.Post("/extract/{id}", s.handleExtract)
		r.Get("/export.xlsx", s.handleExport)
	})

	return r
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// logRequests logs one line per request with the chi request id.
func (s *Service) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		r = r.WithContext(common.WithRequestID(r.Context(), middleware.GetReqID(r.Context())))
		next.ServeHTTP(ww, r)
		s.logger.Info("http.request",
			"req_id", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps application errors to HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, common.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, common.ErrNoText):
		status = http.StatusConflict
	case errors.Is(err, common.ErrInvalidInput):
		status = http.StatusBadRequest
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
