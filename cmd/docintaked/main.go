// docintaked is the document intake daemon: it stores uploads, caches OCR
// text, and serves the understanding pipeline over HTTP. A Postgres DSN
// enables persistence of extraction results and XLSX export.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/docuscan/docintake/internal/common"
	"github.com/docuscan/docintake/internal/docstore"
	"github.com/docuscan/docintake/internal/enrich"
	"github.com/docuscan/docintake/internal/enrich/openai"
	"github.com/docuscan/docintake/internal/export"
	"github.com/docuscan/docintake/internal/pipeline"
	"github.com/docuscan/docintake/internal/repository"
	"github.com/docuscan/docintake/internal/server"
)

func main() {
	cfg := common.LoadConfig()
	logger := newLogger(cfg.Log)
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := docstore.Open(cfg.Store.DBPath, cfg.Store.UploadDir, logger)
	if err != nil {
		logger.Error("failed to open document store", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	// Optional Postgres sink for extraction results.
	var (
		sink     repository.ExtractionRepository
		exporter *export.Service
	)
	if cfg.Database.DSN != "" {
		pool, err := repository.Open(ctx, repository.Config{
			DSN:              cfg.Database.DSN,
			MaxConns:         cfg.Database.MaxConns,
			MinConns:         cfg.Database.MinConns,
			MaxConnLifetime:  cfg.Database.MaxConnLifetime,
			MaxConnIdleTime:  cfg.Database.MaxConnIdleTime,
			DialTimeout:      cfg.Database.DialTimeout,
			StatementTimeout: cfg.Database.StatementTimeout,
		}, logger)
		if err != nil {
			logger.Error("failed to open database", "error", err)
			os.Exit(1)
		}
		defer repository.Close(pool, logger)

		if err := repository.HealthCheck(ctx, pool, cfg.Database.DialTimeout, logger); err != nil {
			logger.Error("database health check failed", "error", err)
			os.Exit(1)
		}
		if err := repository.EnsureSchema(ctx, pool, cfg.Enrich.EmbedDim); err != nil {
			logger.Error("failed to ensure database schema", "error", err)
			os.Exit(1)
		}
		sink = repository.NewExtractionRepository(pool, logger)
		exporter = export.NewService(sink, logger)
	}

	pipe := pipeline.New(logger, pipeline.Config{
		MinConfidence:   cfg.Pipeline.MinConfidence,
		SummarySentence: cfg.Pipeline.SummarySentence,
		NotesKeyPoints:  cfg.Pipeline.NotesKeyPoints,
	}, nil, newSummarizer(cfg, logger), newEmbedder(cfg, logger))

	svc := server.NewService(logger, store, pipe, sink, exporter)
	srv := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: svc.Routes(),
	}

	go func() {
		logger.Info("http.listen", "addr", cfg.Server.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
	logger.Info("stopped")
}

// newSummarizer picks the OpenAI-compatible summarizer when an API key is
// configured, the deterministic heuristic otherwise.
func newSummarizer(cfg *common.Config, logger *slog.Logger) enrich.Summarizer {
	if cfg.Enrich.APIKey != "" {
		return openai.New(openai.Config{
			BaseURL:    cfg.Enrich.BaseURL,
			APIKey:     cfg.Enrich.APIKey,
			Model:      cfg.Enrich.Model,
			EmbedModel: cfg.Enrich.EmbedModel,
			Timeout:    cfg.Enrich.Timeout,
		}, logger)
	}
	return &enrich.HeuristicSummarizer{MaxSentences: cfg.Pipeline.SummarySentence}
}

func newEmbedder(cfg *common.Config, logger *slog.Logger) enrich.Embedder {
	if cfg.Enrich.APIKey != "" {
		return openai.New(openai.Config{
			BaseURL:    cfg.Enrich.BaseURL,
			APIKey:     cfg.Enrich.APIKey,
			Model:      cfg.Enrich.Model,
			EmbedModel: cfg.Enrich.EmbedModel,
			Timeout:    cfg.Enrich.Timeout,
		}, logger)
	}
	return &enrich.HashEmbedder{Dim: cfg.Enrich.EmbedDim}
}

func newLogger(cfg common.LogConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "text" {
		return slog.New(slog.NewTextHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, opts))
}
