package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/pflag"

	"github.com/cimillas/event-tickets/internal/app"
	"github.com/cimillas/event-tickets/internal/clock"
	"github.com/cimillas/event-tickets/internal/config"
	"github.com/cimillas/event-tickets/internal/storage/postgres"
	"github.com/cimillas/event-tickets/internal/storage/sqlite"
	transporthttp "github.com/cimillas/event-tickets/internal/transport/http"
	"github.com/cimillas/event-tickets/migrations"
)

const startupTimeout = 5 * time.Second

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	logger := newLogger(cfg)
	if cfg.EnvFile != "" {
		logger.Info("loaded env file", "path", cfg.EnvFile)
	} else {
		logger.Warn(".env not found in current or parent directories")
	}
	for _, key := range cfg.Defaulted {
		logger.Warn("setting not provided, using default", "key", key)
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("api stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *slog.Logger) error {
	startupCtx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	store, err := openStore(startupCtx, cfg, logger)
	if err != nil {
		return err
	}
	defer store.close()

	handler := transporthttp.NewRouter(transporthttp.RouterConfig{
		Events:         app.NewEventService(store.events),
		Tickets:        app.NewTicketService(store.tickets, clock.NewSystem()),
		Store:          store.pinger,
		Logger:         logger,
		CORSOrigins:    cfg.CORSOrigins,
		RequestTimeout: cfg.RequestTimeout,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("api listening", "addr", server.Addr, "storage", cfg.Storage)

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- server.ListenAndServe()
	}()

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: %w", err)
		}
	case <-stopCtx.Done():
		logger.Info("shutdown signal received, stopping server")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

type backend struct {
	events  app.EventRepository
	tickets app.TicketRepository
	pinger  transporthttp.Pinger
	close   func()
}

func openStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (backend, error) {
	switch cfg.Storage {
	case config.StorageSQLite:
		store, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return backend{}, fmt.Errorf("open sqlite: %w", err)
		}
		logger.Info("using sqlite storage", "path", cfg.SQLitePath)
		return backend{
			events:  sqlite.NewEventRepository(store),
			tickets: sqlite.NewTicketRepository(store),
			pinger:  store,
			close:   func() { _ = store.Close() },
		}, nil

	default:
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return backend{}, fmt.Errorf("connect to db: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return backend{}, fmt.Errorf("db ping: %w", err)
		}
		if err := migrations.Apply(ctx, pool); err != nil {
			pool.Close()
			return backend{}, fmt.Errorf("apply migrations: %w", err)
		}
		logger.Info("using postgres storage")
		return backend{
			events:  postgres.NewEventRepository(pool),
			tickets: postgres.NewTicketRepository(pool),
			pinger:  pool,
			close:   pool.Close,
		}, nil
	}
}

func newLogger(cfg config.Config) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
