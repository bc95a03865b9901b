package integrity

import (
	"context"
	"errors"

	"catalog-sync/core/storage"
	"catalog-sync/feature/integrity/checks"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrStorageDisabled is returned when snapshots are not kept in object storage.
var ErrStorageDisabled = errors.New("object storage is not configured")

// Service handles integrity checks.
type Service struct {
	client storage.Client
	bucket string
	region string
	db     *gorm.DB
	models []any
	logger *zap.Logger
}

// NewService creates a new integrity service. client may be nil when the
// snapshot backend does not use object storage.
func NewService(client storage.Client, bucket, region string, db *gorm.DB, models []any, logger *zap.Logger) *Service {
	return &Service{
		client: client,
		bucket: bucket,
		region: region,
		db:     db,
		models: models,
		logger: logger,
	}
}

// CheckSchema compares the database tables with the models the sync stores use.
func (s *Service) CheckSchema() (*checks.SchemaReport, error) {
	return checks.CheckSchema(s.db, s.models)
}

// CheckStorage reports whether the snapshot bucket exists.
func (s *Service) CheckStorage(ctx context.Context) (*checks.StorageReport, error) {
	if s.client == nil {
		return nil, ErrStorageDisabled
	}
	return checks.CheckStorage(ctx, s.client, s.bucket)
}

// FixStorage creates the snapshot bucket.
func (s *Service) FixStorage(ctx context.Context) error {
	if s.client == nil {
		return ErrStorageDisabled
	}
	return checks.FixStorage(ctx, s.client, s.bucket, s.region, s.logger)
}
