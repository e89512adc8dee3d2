package cmd

import (
	"context"
	"fmt"

	"github.com/kasuboski/tapas/config"
	"github.com/kasuboski/tapas/pkg/download"
	mio "github.com/kasuboski/tapas/pkg/io"
	"github.com/kasuboski/tapas/pkg/logger"
	"github.com/kasuboski/tapas/pkg/manager"
	"github.com/kasuboski/tapas/pkg/progress"
	"github.com/kasuboski/tapas/pkg/storage/sqlite"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// newManager reads the configuration, migrates the database and wires the manager
func newManager(ctx context.Context) (config.Config, manager.MediaManager, error) {
	log := logger.FromCtx(ctx)

	cfg, err := config.New(viper.GetViper())
	if err != nil {
		return cfg, manager.MediaManager{}, fmt.Errorf("failed to read configurations: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, manager.MediaManager{}, fmt.Errorf("invalid configuration: %w", err)
	}

	store, err := sqlite.New(ctx, cfg.Storage.FilePath)
	if err != nil {
		return cfg, manager.MediaManager{}, fmt.Errorf("failed to create storage connection: %w", err)
	}

	if err := store.RunMigrations(ctx); err != nil {
		return cfg, manager.MediaManager{}, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Debugw("storage ready", zap.String("path", cfg.Storage.FilePath))

	fs := &mio.MediaFileSystem{}
	launcher := download.NewLauncher(cfg.Download, download.NewProcessSpawner(fs), fs)
	m := manager.New(store, launcher, progress.NewEstimator(fs), fs, cfg.Library, cfg.Download)

	return cfg, m, nil
}
