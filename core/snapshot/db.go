package snapshot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Record is one stored snapshot row.
type Record struct {
	Key       string `gorm:"column:snapshot_key;primaryKey;size:191"`
	Content   []byte `gorm:"column:content"`
	UpdatedAt time.Time
}

// TableName overrides the table name used by Record.
func (Record) TableName() string {
	return "sync_snapshots"
}

// DBStore keeps snapshots in the sync_snapshots table.
type DBStore struct {
	db *gorm.DB
}

// NewDBStore creates a database-backed store.
func NewDBStore(db *gorm.DB) *DBStore {
	return &DBStore{db: db}
}

// Migrate creates the sync_snapshots table.
func (s *DBStore) Migrate() error {
	return s.db.AutoMigrate(&Record{})
}

// Get loads the snapshot row for key.
func (s *DBStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var rec Record
	err := s.db.WithContext(ctx).Where("snapshot_key = ?", key).Take(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to load snapshot %s: %w", key, err)
	}
	return rec.Content, true, nil
}

// Put upserts the snapshot row in a single statement.
func (s *DBStore) Put(ctx context.Context, key string, data []byte) error {
	rec := Record{Key: key, Content: data, UpdatedAt: time.Now()}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "snapshot_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"content", "updated_at"}),
	}).Create(&rec).Error
	if err != nil {
		return fmt.Errorf("failed to save snapshot %s: %w", key, err)
	}
	return nil
}
