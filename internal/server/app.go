// Package server initializes and runs the HTTP API server. It wires the
// configured storage backend to the in-memory store, hydrates state at
// startup, subscribes the persistence bridge, and handles graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/complianceos/complianceos/internal/config"
	"github.com/complianceos/complianceos/internal/logging"
	"github.com/complianceos/complianceos/internal/models"
	"github.com/complianceos/complianceos/internal/storage"
	"github.com/complianceos/complianceos/internal/store"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	store   *store.Store
	storage storage.Storage
}

func NewApp(c *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLogLevel(c.LogLevel)}))
	logger := logging.NewSlogLogger(sl)

	st, err := newStorage(c)
	if err != nil {
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	s := store.New(logger)

	return &App{config: c, logger: logger, store: s, storage: st}, nil
}

func parseLogLevel(name string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func newStorage(c *config.Config) (storage.Storage, error) {
	switch c.StorageBackend {
	case config.BackendBadger:
		return storage.NewBadgerStorage(c.DataPath)
	case config.BackendFile:
		return storage.NewFileStorage(c.DataPath)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", c.StorageBackend)
	}
}

// hydrate restores the persisted snapshot into the store. A missing or
// corrupt snapshot is not fatal: the app starts with empty state and logs
// what happened.
func (app *App) hydrate(ctx context.Context) {
	snap, ok, err := app.storage.Load(ctx)
	if err != nil {
		app.logger.Error(ctx, "snapshot load failed, starting empty", "error", err.Error())
		return
	}
	if !ok {
		app.logger.Info(ctx, "no persisted snapshot, starting empty")
		return
	}
	app.store.ReplaceState(snap)
	app.logger.Info(ctx, "store hydrated",
		"customers", len(snap.Customers),
		"questionnaires", len(snap.Questionnaires),
		"answers", len(snap.Answers),
		"tasks", len(snap.Tasks),
		"obligations", len(snap.Obligations),
		"agreements", len(snap.Agreements),
	)
}

// subscribePersistence saves the full snapshot after every mutation.
// Save errors are logged and never surfaced to the caller: the in-memory
// state is already committed by the time the listener runs.
func (app *App) subscribePersistence(ctx context.Context) {
	app.store.Subscribe(func(snap models.Snapshot) {
		if err := app.storage.Save(ctx, snap); err != nil {
			app.logger.Error(ctx, "snapshot save failed", "error", err.Error())
		}
	})
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	app.hydrate(ctx)
	app.subscribePersistence(ctx)

	router := NewRouter(app.store, app.logger, app.config.CORSOrigins)

	srv := &http.Server{
		Addr:    app.config.EndpointAddrHTTP,
		Handler: router,
	}

	go func() {
		app.logger.Info(ctx, "HTTP server listening", "addr", app.config.EndpointAddrHTTP)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	<-ctx.Done()

	app.logger.Info(ctx, "Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), app.config.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		app.logger.Error(shutdownCtx, "server shutdown error", "error", err.Error())
	}

	if err := app.storage.Close(); err != nil {
		app.logger.Error(shutdownCtx, "storage close error", "error", err.Error())
	}
}
