package checks

import (
	"context"
	"fmt"

	"catalog-sync/core/storage"

	"go.uber.org/zap"
)

// StorageReport is the result of checking the snapshot bucket.
type StorageReport struct {
	Bucket string `json:"bucket"`
	Exists bool   `json:"exists"`
}

// CheckStorage reports whether the snapshot bucket exists.
func CheckStorage(ctx context.Context, client storage.Client, bucket string) (*StorageReport, error) {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	return &StorageReport{Bucket: bucket, Exists: exists}, nil
}

// FixStorage creates the snapshot bucket when it is missing.
func FixStorage(ctx context.Context, client storage.Client, bucket, region string, logger *zap.Logger) error {
	if err := storage.EnsureBucket(ctx, client, bucket, region); err != nil {
		return err
	}
	logger.Info("Snapshot bucket ready", zap.String("bucket", bucket))
	return nil
}
