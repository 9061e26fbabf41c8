// Package server initializes and runs the paperdrop intake server: it wires
// configuration, the database, the file store and the HTTP endpoint, and
// handles graceful shutdown.
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
	"time"

	"github.com/juralis/paperdrop/internal/logging"
	"github.com/juralis/paperdrop/internal/server/api"
	"github.com/juralis/paperdrop/internal/server/config"
	"github.com/juralis/paperdrop/internal/server/db"
	"github.com/juralis/paperdrop/internal/server/services"
	"github.com/juralis/paperdrop/internal/server/storage"
	"github.com/juralis/paperdrop/internal/server/storage/local"
	"github.com/juralis/paperdrop/internal/server/storage/s3"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config  *config.Config
	logger  logging.Logger
	manager db.RepositoryManager
	handler http.Handler
}

func NewApp(cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	manager, err := newRepositoryManager(cfg)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	store, err := newFileStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("file store init error: %w", err)
	}

	docs := services.NewDocuments(manager.Documents(), manager.Projects(), store, logger)
	prj := services.NewProjects(manager.Projects())

	handler := api.NewRouter(docs, prj, api.Options{
		Logger:         logger,
		APIKey:         cfg.APIKey,
		MaxUploadBytes: cfg.MaxUploadBytes,
	})

	return &App{config: cfg, logger: logger, manager: manager, handler: handler}, nil
}

func newRepositoryManager(cfg *config.Config) (db.RepositoryManager, error) {
	if cfg.Storage == config.StorageMemory || cfg.DatabaseDSN == "" {
		return db.NewInMemoryRepositoryManager(), nil
	}
	return db.NewPostgresRepositoryManager(cfg.DatabaseDSN)
}

func newFileStore(cfg *config.Config) (storage.FileStore, error) {
	switch cfg.Storage {
	case config.StorageS3:
		return s3.New(context.Background(), s3.Options{
			Bucket:       cfg.S3Bucket,
			Prefix:       cfg.S3Prefix,
			Region:       cfg.S3Region,
			BaseEndpoint: cfg.S3BaseEndpoint,
			AccessKey:    cfg.S3AccessKey,
			SecretKey:    cfg.S3SecretKey,
		})
	case config.StorageMemory:
		dir, err := os.MkdirTemp("", "paperdrop-*")
		if err != nil {
			return nil, err
		}
		return local.New(dir)
	default:
		return local.New(cfg.DataDir)
	}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
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

	app.initSignalHandler(cancelFunc)

	srv := &http.Server{Addr: app.config.Addr, Handler: app.handler}

	go func() {
		app.logger.Info(ctx, "starting server", "addr", app.config.Addr, "storage", app.config.Storage)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.logger.Error(ctx, "server error", "error", err)
			cancelFunc()
		}
	}()

	<-ctx.Done()

	app.logger.Info(ctx, "shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		app.logger.Error(shutdownCtx, "shutdown error", "error", err)
	}
	if err := app.manager.Close(); err != nil {
		app.logger.Error(shutdownCtx, "db close error", "error", err)
	}
}
