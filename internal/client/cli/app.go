// Package cli implements the paperdrop client commands: capturing documents
// into the durable local queue and draining it to the server.
package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/juralis/paperdrop/internal/client/client"
	"github.com/juralis/paperdrop/internal/client/config"
	"github.com/juralis/paperdrop/internal/client/services"
	"github.com/juralis/paperdrop/internal/logging"
)

// App bundles everything the commands need.
type App struct {
	cfg     *config.Config
	repos   *client.Repositories
	engine  *services.SyncEngine
	prober  *services.Prober
	watcher *services.Watcher
	logger  logging.Logger
}

// NewApp opens the local queue database and wires the sync machinery.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	repos, err := client.InitDatabase(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}

	httpClient := client.NewHTTPClient(cfg.ServerURL, cfg.APIKey, cfg.UploadTimeout)
	engine := services.NewSyncEngine(repos.Uploads, httpClient, logger)
	prober := services.NewProber(httpClient, logger, cfg.ProbeInterval, cfg.ProbeMaxWait)
	watcher := services.NewWatcher(engine, prober, logger, cfg.SyncSchedule)

	return &App{
		cfg:     cfg,
		repos:   repos,
		engine:  engine,
		prober:  prober,
		watcher: watcher,
		logger:  logger,
	}, nil
}

func (a *App) Close() error {
	return a.repos.DB.Close()
}
