package cmd

import (
	"context"
	"fmt"

	"sheet-merger/core/config"
	"sheet-merger/core/database"
	"sheet-merger/core/history"
	"sheet-merger/core/storage"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// dependencies holds the optional collaborators of the merge service.
type dependencies struct {
	client storage.Client
	repo   *history.Repository
	db     *gorm.DB
}

// openDependencies connects to history and, when withStorage is set, to
// object storage. History failures only disable history; storage failures
// are returned since exports were explicitly asked for.
func openDependencies(ctx context.Context, cfg *config.Config, l *zap.Logger, withStorage bool) (*dependencies, error) {
	deps := &dependencies{}

	if cfg.Merge.History {
		db, err := database.Connect(cfg.Database)
		if err != nil {
			l.Warn("Run history disabled: database connection failed", zap.Error(err))
		} else {
			repo := history.NewRepository(db)
			if err := repo.Migrate(); err != nil {
				l.Warn("Run history disabled: migration failed", zap.Error(err))
			} else {
				deps.db = db
				deps.repo = repo
			}
		}
	}

	if withStorage {
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to storage: %w", err)
		}
		if err := storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region); err != nil {
			return nil, err
		}
		deps.client = client
	}

	return deps, nil
}

// Close releases the database connection.
func (d *dependencies) Close() {
	if d.db == nil {
		return
	}
	if sqlDB, err := d.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
