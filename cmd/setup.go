package cmd

import (
	"context"
	"fmt"

	"cloud-sync/adapters/gormstore"
	"cloud-sync/adapters/miniostore"
	"cloud-sync/core/config"
	"cloud-sync/core/database"
	"cloud-sync/core/metadata"
	"cloud-sync/core/storage"
	"cloud-sync/core/syncer"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// buildEngine wires the configured stores into a ready sync engine.
// The local side is the relational database, the cloud side the object
// store; the bucket is created if it does not exist yet.
func buildEngine(ctx context.Context, cfg *config.Config, logg *zap.Logger) (*syncer.CloudSync[metadata.Metadata, []byte], error) {
	strategy, err := syncer.ParseStrategy(cfg.Sync.Strategy)
	if err != nil {
		return nil, err
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	local := gormstore.New(db)
	if err := local.AutoMigrate(); err != nil {
		return nil, fmt.Errorf("migrate sync_records: %w", err)
	}

	store, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	exists, err := store.BucketExists(ctx, cfg.Storage.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		opts := minio.MakeBucketOptions{Region: cfg.Storage.Region}
		if err := store.MakeBucket(ctx, cfg.Storage.Bucket, opts); err != nil {
			return nil, fmt.Errorf("create bucket %q: %w", cfg.Storage.Bucket, err)
		}
		logg.Info("Created bucket", zap.String("bucket", cfg.Storage.Bucket))
	}
	cloud := miniostore.New(store, cfg.Storage.Bucket, cfg.Sync.Prefix)

	engine := syncer.New(syncer.Spec[metadata.Metadata, []byte]{
		Local:           local,
		Cloud:           cloud,
		Strategy:        strategy,
		PropagateErrors: cfg.Sync.PropagateErrors,
		Logger:          logg,
	})
	return engine, nil
}
