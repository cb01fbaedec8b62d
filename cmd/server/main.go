package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/p-n-ai/studymate/internal/ai"
	"github.com/p-n-ai/studymate/internal/app"
	"github.com/p-n-ai/studymate/internal/platform/cache"
	"github.com/p-n-ai/studymate/internal/platform/config"
	"github.com/p-n-ai/studymate/internal/platform/database"
	"github.com/p-n-ai/studymate/internal/progress"
	"github.com/p-n-ai/studymate/internal/study"
	"github.com/p-n-ai/studymate/internal/syllabus"
	"github.com/p-n-ai/studymate/internal/web"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(newLogger(cfg.Log))

	syl, err := syllabus.Load()
	if err != nil {
		slog.Error("failed to load syllabus", "error", err)
		os.Exit(1)
	}

	startCtx, cancelStart := context.WithTimeout(context.Background(), 15*time.Second)
	backend, events, err := openBackend(startCtx, cfg)
	cancelStart()
	if err != nil {
		slog.Error("failed to open progress backend", "backend", cfg.Progress.Backend, "error", err)
		os.Exit(1)
	}
	store := progress.Open(context.Background(), backend)

	ctrl := app.New(app.Config{
		Syllabus:  syl,
		Generator: study.NewGenerator(newProvider(cfg), cfg.Exam.Name),
		Store:     store,
		Events:    events,
		Debounce:  cfg.Scroll.Debounce,
		Settle:    cfg.Scroll.Settle,
	})

	handler := web.NewRouter(web.Config{
		Controller:  ctrl,
		Syllabus:    syl,
		Exam:        cfg.Exam.Name,
		CORSOrigins: cfg.Server.CORSOrigins,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGTERM/SIGINT.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	go func() {
		slog.Info("server starting",
			"addr", srv.Addr,
			"backend", cfg.Progress.Backend,
			"ai_configured", cfg.HasAIProvider(),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
	ctrl.Flush(shutdownCtx)
	if err := ctrl.Shutdown(shutdownCtx); err != nil {
		slog.Error("generations still running at shutdown", "error", err)
	}
	if err := store.Close(); err != nil {
		slog.Error("failed to close progress backend", "error", err)
	}
}

// newLogger builds the process logger from config.
func newLogger(cfg config.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     parseLevel(cfg.Level),
		AddSource: cfg.AddSource,
	}
	if cfg.Format == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// newProvider returns nil when no API key is configured; generation then
// reports a configuration error per request.
func newProvider(cfg *config.Config) ai.Provider {
	if !cfg.HasAIProvider() {
		slog.Warn("STUDY_AI_GOOGLE_API_KEY is not set, generation is disabled")
		return nil
	}
	return ai.NewGoogleProvider(cfg.AI.Google.APIKey,
		ai.WithGoogleBaseURL(cfg.AI.Google.BaseURL),
		ai.WithGoogleModel(cfg.AI.Google.Model),
	)
}

// openBackend connects the configured progress backend. Study events are
// recorded only when postgres is available.
func openBackend(ctx context.Context, cfg *config.Config) (progress.Backend, app.EventLogger, error) {
	switch cfg.Progress.Backend {
	case config.BackendMemory:
		return progress.NewMemoryBackend(), app.NopEventLogger{}, nil
	case config.BackendFile:
		b, err := progress.NewFileBackend(cfg.Progress.Path)
		if err != nil {
			return nil, nil, err
		}
		return b, app.NopEventLogger{}, nil
	case config.BackendSQLite:
		b, err := progress.NewSQLiteBackend(cfg.SQLite.Path)
		if err != nil {
			return nil, nil, err
		}
		return b, app.NopEventLogger{}, nil
	case config.BackendRedis:
		c, err := cache.New(ctx, cfg.Cache.URL, cfg.Progress.Namespace)
		if err != nil {
			return nil, nil, err
		}
		return progress.NewRedisBackend(c), app.NopEventLogger{}, nil
	case config.BackendPostgres:
		db, err := database.New(ctx, cfg.Database.URL, cfg.Database.MaxConns, cfg.Database.MinConns)
		if err != nil {
			return nil, nil, err
		}
		events, err := app.NewPostgresEventLogger(ctx, db.Pool)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		return progress.NewPostgresBackend(db), events, nil
	default:
		return nil, nil, fmt.Errorf("unknown progress backend %q", cfg.Progress.Backend)
	}
}
