package main

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/jonathan/job-board/internal/blob"
	"github.com/jonathan/job-board/internal/config"
	"github.com/jonathan/job-board/internal/db"
	"github.com/jonathan/job-board/internal/db/sqlitedb"
	"github.com/jonathan/job-board/internal/logger"
	"go.uber.org/zap"
)

// openStore connects to Postgres, or opens SQLite for sqlite: and file: URLs.
func openStore(ctx context.Context, databaseURL string) (db.Store, error) {
	if config.IsSQLiteURL(databaseURL) {
		store, err := sqlitedb.Open(ctx, config.SQLitePath(databaseURL))
		if err != nil {
			return nil, err
		}
		return store, nil
	}

	store, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	return store, nil
}

// openBlobs builds the resume store selected by cfg.Upload.Driver.
func openBlobs(ctx context.Context, cfg *config.UploadConfig) (blob.Store, error) {
	switch cfg.Driver {
	case config.UploadDriverLocal:
		store, err := blob.NewLocalStore(cfg.Dir, cfg.PublicBaseURL)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.UploadDriverGCS:
		// Relative base URLs only make sense for the local driver.
		base := cfg.PublicBaseURL
		if strings.HasPrefix(base, "/") {
			base = ""
		}
		store, err := blob.NewGCSStore(ctx, cfg.Bucket, base)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, errors.Newf("unknown upload driver %q", cfg.Driver)
	}
}

// setup loads configuration, builds the logger and opens the store. The
// returned cleanup closes the store and flushes the logger.
func setup(ctx context.Context) (*config.Config, db.Store, *zap.Logger, func(), error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	log, err := logger.New(cfg.LogJSON, cfg.Debug)
	if err != nil {
		return nil, nil, nil, nil, errors.Wrap(err, "failed to create logger")
	}

	store, err := openStore(ctx, cfg.DatabaseURL)
	if err != nil {
		_ = log.Sync()
		return nil, nil, nil, nil, err
	}

	cleanup := func() {
		store.Close()
		_ = log.Sync()
	}
	return cfg, store, log, cleanup, nil
}
