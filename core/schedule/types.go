package schedule

import (
	"context"
	"errors"
	"time"

	"catalog-sync/core/reconcile"
)

var (
	// ErrAlreadyRunning is returned when a job is triggered while its own run is active.
	ErrAlreadyRunning = errors.New("job already running")
	// ErrDeferred is returned when a job yields to another job that is running.
	ErrDeferred = errors.New("job deferred")
	// ErrUnknownJob is returned for a job name that was never registered.
	ErrUnknownJob = errors.New("unknown job")
	// ErrDisabled is returned when a job has no configured sources.
	ErrDisabled = errors.New("job disabled")
)

// Status is the lifecycle state of a job.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusRunning   Status = "running"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// JobRunState describes the last run of a job.
type JobRunState struct {
	Job        string          `json:"job"`
	RunID      string          `json:"run_id,omitempty"`
	Status     Status          `json:"status"`
	Running    bool            `json:"running"`
	Enabled    bool            `json:"enabled"`
	LastRunAt  *time.Time      `json:"last_run_at,omitempty"`
	FinishedAt *time.Time      `json:"finished_at,omitempty"`
	NextRunAt  *time.Time      `json:"next_run_at,omitempty"`
	Stats      reconcile.Stats `json:"stats"`
	LastError  string          `json:"last_error,omitempty"`
}

// SourceReport is the outcome of one source within a run.
type SourceReport struct {
	Source string
	// SnapshotKey and Content are committed to the snapshot store when Err is nil.
	// An empty key means nothing to commit.
	SnapshotKey string
	Content     []byte
	Stats       reconcile.Stats
	Err         error
}

// Report is what a job returns from one run.
type Report struct {
	Sources []SourceReport
	// Err is a failure that is not tied to a single source.
	Err error
}

// Job is a unit of scheduled work.
type Job interface {
	Name() string
	Run(ctx context.Context) Report
}
