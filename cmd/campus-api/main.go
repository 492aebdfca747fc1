// main is the entry point of the campus API.
//
// STARTUP SEQUENCE:
//  1. Load configuration (YAML file and/or environment)
//  2. Initialise the logger
//  3. Open the record store (memory or sqlite)
//  4. Build the router (routes + logging, metrics, CORS)
//  5. Serve HTTP until an OS signal (Ctrl+C / kill) arrives
//  6. Gracefully shut down: finish in-flight requests, then close storage
//
// RUNNING THE SERVER:
//
//	go run ./cmd/campus-api --config=config/local.yaml
//
// or (with the environment variable):
//
//	CONFIG_PATH=config/local.yaml go run ./cmd/campus-api
//
// or with no file at all, everything from the environment:
//
//	HTTP_SERVER_ADDR=:8000 STORAGE_DRIVER=sqlite go run ./cmd/campus-api
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/aanand-mishra/campus-api/internal/config"
	"github.com/aanand-mishra/campus-api/internal/http/router"
	"github.com/aanand-mishra/campus-api/internal/storage"
	"github.com/aanand-mishra/campus-api/internal/storage/memory"
	"github.com/aanand-mishra/campus-api/internal/storage/sqlite"
)

const version = "0.2.0"

func main() {
	// ── 1. Load Config ────────────────────────────────────────────────────
	cfg := config.MustLoad()

	// ── 2. Initialise Logger ──────────────────────────────────────────────
	// SetDefault makes the handlers' package-level slog calls use it too.
	log := setupLogger(cfg.Env)
	slog.SetDefault(log)

	log.Info("starting campus-api",
		slog.String("env", cfg.Env),
		slog.String("version", version),
	)

	if err := run(cfg, log); err != nil {
		log.Error("campus-api stopped with an error", slog.String("error", err.Error()))
		os.Exit(1)
	}
	log.Info("server stopped gracefully")
}

func run(cfg *config.Config, log *slog.Logger) error {
	// ── 3. Initialise Storage ─────────────────────────────────────────────
	// The rest of the program only sees the storage.Storage interface.
	store, err := setupStorage(cfg)
	if err != nil {
		return fmt.Errorf("initialise storage: %w", err)
	}
	defer store.Close()

	log.Info("storage initialised",
		slog.String("driver", cfg.Storage.Driver),
		slog.String("path", cfg.Storage.Path))

	// ── 4. Create the HTTP Server ─────────────────────────────────────────
	server := &http.Server{
		Addr:         cfg.HTTPServer.Addr,
		Handler:      router.New(cfg, store, router.Options{Logger: log}),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	// ── 5. Serve until a signal arrives ───────────────────────────────────
	// NotifyContext cancels ctx on SIGINT/SIGTERM. The errgroup runs the
	// server and the shutdown watcher; if ListenAndServe fails first (port
	// in use), gctx is cancelled and the watcher exits too.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("server started", slog.String("address", cfg.HTTPServer.Addr))
		// ListenAndServe returns http.ErrServerClosed after Shutdown.
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	// ── 6. Graceful Shutdown ──────────────────────────────────────────────
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown signal received, stopping server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		// Shutdown stops accepting connections and waits for active
		// requests, up to ShutdownTimeout.
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// setupStorage opens the backend named by cfg.Storage.Driver.
func setupStorage(cfg *config.Config) (storage.Storage, error) {
	switch cfg.Storage.Driver {
	case config.DriverSQLite:
		return sqlite.New(cfg)
	case config.DriverMemory:
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// setupLogger returns a *slog.Logger configured for the given environment.
//
// Development (dev): human-readable text output at DEBUG level.
// Staging: JSON at DEBUG level.
// Production (prod): machine-readable JSON output at INFO level.
func setupLogger(env string) *slog.Logger {
	switch env {
	case config.EnvProd:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	case config.EnvStaging:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}
