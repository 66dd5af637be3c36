// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/starford/ehwaz/internal/api"
	"github.com/starford/ehwaz/internal/export"
	"github.com/starford/ehwaz/internal/journal"
	"github.com/starford/ehwaz/internal/site"
	"github.com/starford/ehwaz/internal/sse"
	"github.com/starford/ehwaz/internal/vault"
)

// Run starts the application with the given options: a full export of
// the vault into the site tree, then, in watch mode, an incremental
// re-export loop with an optional status server.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	logger := app.logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: cfg.App.LogLevel,
		}))
	}
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("vault_path", cfg.Vault.Path),
		slog.String("site_path", cfg.Site.Path),
		slog.Bool("watch", cfg.Watch),
		slog.String("log_level", cfg.App.LogLevel.String()))

	// Resolve the source vault; a missing vault is a configuration error.
	v, err := vault.NewFS(cfg.Vault.Path, cfg.Vault.AssetsDir)
	if err != nil {
		return fmt.Errorf("init vault: %w", err)
	}

	// Ensure the site root exists, then wipe and recreate the two output
	// roots to establish a known-empty baseline.
	if err := os.MkdirAll(cfg.Site.Path, 0o755); err != nil {
		return fmt.Errorf("create site dir: %w", err)
	}
	s, err := site.New(cfg.Site.Path, cfg.Site.PostsDir, cfg.Site.AssetsDir)
	if err != nil {
		return fmt.Errorf("init site: %w", err)
	}
	if err := s.Reset(); err != nil {
		return fmt.Errorf("reset site: %w", err)
	}

	var rec journal.Recorder
	if cfg.Journal.Path != "" {
		db, jErr := journal.Open(cfg.Journal.Path)
		if jErr != nil {
			return fmt.Errorf("init journal: %w", jErr)
		}
		defer db.Close()
		rec = db
	}

	if !cfg.Watch {
		exp := export.New(v, s, rec, logger, nil)
		if err := exp.ExportAll(); err != nil {
			return fmt.Errorf("export: %w", err)
		}
		logger.Info("Export complete")
		return nil
	}

	// Watch mode: SSE broker feeds export events to the status server.
	broker := sse.NewBroker()
	defer broker.Close()

	exp := export.New(v, s, rec, logger, func(kind, path, slugName string) {
		broker.PublishExportEvent(kind, path, slugName)
	})

	if err := exp.ExportAll(); err != nil {
		return fmt.Errorf("initial export: %w", err)
	}

	logger.Info("Watching vault", slog.String("root", v.Root()))

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gCtx := errgroup.WithContext(watchCtx)

	g.Go(func() error {
		return export.Watch(gCtx, exp, logger)
	})

	var httpServer *http.Server
	if cfg.App.HTTP.Enabled && rec != nil {
		r := chi.NewRouter()
		r.Use(middleware.RequestID)
		r.Use(middleware.RealIP)
		r.Use(middleware.Logger)
		r.Use(middleware.Recoverer)

		// Health check endpoints.
		r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		})
		r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		})

		r.Mount("/api", api.NewRouter(rec, http.HandlerFunc(broker.ServeHTTP), broker.ClientCount))

		httpServer = &http.Server{
			Addr:    cfg.App.HTTP.Address(),
			Handler: r,
		}

		g.Go(func() error {
			logger.Info("Starting status server", slog.String("address", cfg.App.HTTP.Address()))
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("status server error: %w", err)
			}
			return nil
		})
	}

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		cancel()

		if httpServer != nil {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer shutdownCancel()
			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				logger.Error("Status server shutdown error", slog.String("error", err.Error()))
			}
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Stopped successfully")
	return nil
}
