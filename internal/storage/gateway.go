// Package storage selects the persistence backend once at start and exposes
// it as a repository.Factory.
package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/config"
	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/domain/repository"
	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/storage/local"
	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/storage/objectstore"
	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/storage/postgres"
)

type remoteGateway struct {
	*postgres.Storage
	receipts *objectstore.Uploader
}

func (g *remoteGateway) Receipts() repository.ReceiptStore {
	return g.receipts
}

type localGateway struct {
	*local.Storage
	receipts *local.DiskStore
}

func (g *localGateway) Receipts() repository.ReceiptStore {
	return g.receipts
}

// Open connects the backend named by cfg.StorageBackend.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (repository.Factory, error) {
	switch cfg.StorageBackend {
	case config.BackendRemote:
		return openRemote(ctx, cfg, logger)
	case config.BackendLocal:
		return openLocal(ctx, cfg, logger)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

func openRemote(ctx context.Context, cfg *config.Config, logger *slog.Logger) (repository.Factory, error) {
	if cfg.AutoMigrate {
		if err := postgres.Migrate(ctx, cfg.DatabaseURI, logger); err != nil {
			return nil, err
		}
	}

	db, err := postgres.New(ctx, cfg.DatabaseURI, logger)
	if err != nil {
		return nil, err
	}

	uploader, err := objectstore.NewUploader(ctx, cfg.S3, logger)
	if err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("using remote storage", slog.String("bucket", cfg.S3.Bucket))
	return &remoteGateway{Storage: db, receipts: uploader}, nil
}

func openLocal(ctx context.Context, cfg *config.Config, logger *slog.Logger) (repository.Factory, error) {
	db, err := local.New(ctx, cfg.LocalDatabasePath, logger)
	if err != nil {
		return nil, err
	}

	disk, err := local.NewDiskStore(cfg.ReceiptsDir, cfg.PublicBaseURL, logger)
	if err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("using local storage", slog.String("db", cfg.LocalDatabasePath), slog.String("receipts", cfg.ReceiptsDir))
	return &localGateway{Storage: db, receipts: disk}, nil
}
