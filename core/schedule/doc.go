// Package schedule runs the sync jobs on their cadences.
//
// # Triggers
//
// Daily fires at a wall-clock time in a location; Interval fires at a fixed period.
// Resolve builds both from Config, falling back to 02:00 and 1h on invalid input.
//
// # Tasks
//
// A Task owns one timer goroutine. Runs happen inside that goroutine, so a job never
// overlaps itself through its timer. Reschedule replaces the timer without touching a
// run in progress.
//
// # Scheduler
//
// The Scheduler wraps every run, timer or manual, in the same guards:
//
//   - a job does not start while its own run is active (ErrAlreadyRunning);
//   - a job registered with DefersTo does not start while the other job runs (ErrDeferred).
//
// Each run gets a uuid, is persisted as running, and ends as succeeded or failed.
// Snapshots are committed only for sources that finished without error. Panics inside
// a job become a failed run. On Start, a state left running by a crash is reset to idle.
package schedule
