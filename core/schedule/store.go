package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"catalog-sync/core/reconcile"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StateStore persists job run state across restarts.
type StateStore interface {
	Load(ctx context.Context, job string) (*JobRunState, error)
	Save(ctx context.Context, state JobRunState) error
}

// RunRecord is the sync_job_runs row.
type RunRecord struct {
	Job        string `gorm:"column:job;primaryKey;size:64"`
	RunID      string `gorm:"column:run_id;size:36"`
	Status     string `gorm:"column:status;size:16"`
	LastRunAt  *time.Time
	FinishedAt *time.Time
	Total      int    `gorm:"column:total_records"`
	Updated    int    `gorm:"column:records_updated"`
	Added      int    `gorm:"column:records_added"`
	Skipped    int    `gorm:"column:records_skipped"`
	Errors     int    `gorm:"column:records_errors"`
	LastError  string `gorm:"column:last_error;type:text"`
}

// TableName overrides the table name used by RunRecord.
func (RunRecord) TableName() string {
	return "sync_job_runs"
}

// GormStateStore keeps run state in the database.
type GormStateStore struct {
	db *gorm.DB
}

// NewGormStateStore creates a database-backed state store.
func NewGormStateStore(db *gorm.DB) *GormStateStore {
	return &GormStateStore{db: db}
}

// Migrate creates the sync_job_runs table.
func (s *GormStateStore) Migrate() error {
	return s.db.AutoMigrate(&RunRecord{})
}

// Load returns the persisted state, or nil when the job never ran.
func (s *GormStateStore) Load(ctx context.Context, job string) (*JobRunState, error) {
	var rec RunRecord
	err := s.db.WithContext(ctx).Where("job = ?", job).Take(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load run state for %s: %w", job, err)
	}
	return &JobRunState{
		Job:        rec.Job,
		RunID:      rec.RunID,
		Status:     Status(rec.Status),
		LastRunAt:  rec.LastRunAt,
		FinishedAt: rec.FinishedAt,
		Stats: reconcile.Stats{
			Total:   rec.Total,
			Updated: rec.Updated,
			Added:   rec.Added,
			Skipped: rec.Skipped,
			Errors:  rec.Errors,
		},
		LastError: rec.LastError,
	}, nil
}

// Save upserts the state row for the job.
func (s *GormStateStore) Save(ctx context.Context, state JobRunState) error {
	rec := RunRecord{
		Job:        state.Job,
		RunID:      state.RunID,
		Status:     string(state.Status),
		LastRunAt:  state.LastRunAt,
		FinishedAt: state.FinishedAt,
		Total:      state.Stats.Total,
		Updated:    state.Stats.Updated,
		Added:      state.Stats.Added,
		Skipped:    state.Stats.Skipped,
		Errors:     state.Stats.Errors,
		LastError:  state.LastError,
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "job"}},
		UpdateAll: true,
	}).Create(&rec).Error
	if err != nil {
		return fmt.Errorf("failed to save run state for %s: %w", state.Job, err)
	}
	return nil
}
