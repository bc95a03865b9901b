package snapshot

import (
	"context"
	"fmt"

	"catalog-sync/core/storage"

	"gorm.io/gorm"
)

// Store keeps the last successfully processed document per key.
type Store interface {
	// Get returns the stored content and whether a snapshot exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Put replaces the snapshot for key. Readers see either the old or the new content.
	Put(ctx context.Context, key string, data []byte) error
}

// Key builds the snapshot key for a job and source.
func Key(job, source string) string {
	return job + "/" + source
}

// Backends carries the handles a backend may need.
type Backends struct {
	Client storage.Client
	Bucket string
	DB     *gorm.DB
}

// New returns the store selected by cfg.Backend.
func New(cfg Config, b Backends) (Store, error) {
	switch cfg.Backend {
	case "", "file":
		return NewFileStore(cfg.Dir), nil
	case "s3":
		if b.Client == nil {
			return nil, fmt.Errorf("snapshot backend s3 requires a storage client")
		}
		return NewObjectStore(b.Client, b.Bucket, cfg.Prefix), nil
	case "database":
		if b.DB == nil {
			return nil, fmt.Errorf("snapshot backend database requires a database connection")
		}
		return NewDBStore(b.DB), nil
	}
	return nil, fmt.Errorf("unknown snapshot backend %q", cfg.Backend)
}
