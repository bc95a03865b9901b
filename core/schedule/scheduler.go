package schedule

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"catalog-sync/core/logger"
	"catalog-sync/core/reconcile"
	"catalog-sync/core/snapshot"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Option configures a registered job.
type Option func(*handle)

// Disabled registers a job without a timer. Manual triggers return ErrDisabled.
func Disabled() Option {
	return func(h *handle) { h.enabled = false }
}

// DefersTo makes the job skip a run while the named job is running.
func DefersTo(job string) Option {
	return func(h *handle) { h.defersTo = job }
}

type handle struct {
	job      Job
	task     *Task
	enabled  bool
	defersTo string
	running  atomic.Bool

	mu    sync.RWMutex
	state JobRunState
}

func (h *handle) snapshotState() JobRunState {
	h.mu.RLock()
	defer h.mu.RUnlock()
	st := h.state
	st.Running = h.running.Load()
	st.Enabled = h.enabled
	if next := h.task.Next(); !next.IsZero() {
		st.NextRunAt = &next
	}
	return st
}

func (h *handle) setState(st JobRunState) {
	h.mu.Lock()
	h.state = st
	h.mu.Unlock()
}

// Scheduler owns the job timers, the run guards and the persisted run state.
type Scheduler struct {
	states    StateStore
	snapshots snapshot.Store
	logger    *zap.Logger

	mu      sync.RWMutex
	jobs    map[string]*handle
	order   []string
	ctx     context.Context
	cancel  context.CancelFunc
	started bool
}

// New creates a scheduler with no jobs.
func New(states StateStore, snapshots snapshot.Store, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		states:    states,
		snapshots: snapshots,
		logger:    logger,
		jobs:      make(map[string]*handle),
	}
}

// Register adds a job with its trigger. It must be called before Start.
func (s *Scheduler) Register(job Job, trigger Trigger, opts ...Option) {
	h := &handle{
		job:     job,
		enabled: true,
		state:   JobRunState{Job: job.Name(), Status: StatusIdle},
	}
	for _, opt := range opts {
		opt(h)
	}
	h.task = NewTask(trigger, func(ctx context.Context) {
		if _, err := s.execute(ctx, h); err != nil {
			s.logger.Info("Scheduled run skipped", zap.String("job", job.Name()), zap.Error(err))
		}
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.jobs[job.Name()]; !exists {
		s.order = append(s.order, job.Name())
	}
	s.jobs[job.Name()] = h
}

// Start restores persisted state and starts the timers of enabled jobs.
// A state left "running" by a crashed process is reset to idle.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return nil
	}
	s.ctx, s.cancel = context.WithCancel(ctx)

	for _, name := range s.order {
		h := s.jobs[name]
		st, err := s.states.Load(ctx, name)
		if err != nil {
			return err
		}
		if st != nil {
			if st.Status == StatusRunning {
				s.logger.Warn("Resetting stale running state", zap.String("job", name), zap.String("run_id", st.RunID))
				st.Status = StatusIdle
				st.LastError = "interrupted by restart"
				if err := s.states.Save(ctx, *st); err != nil {
					return err
				}
			}
			h.setState(*st)
		}
		if h.enabled {
			h.task.Start(s.ctx)
			s.logger.Info("Scheduled job", zap.String("job", name), zap.Stringer("trigger", h.task.Trigger()))
		} else {
			s.logger.Info("Job disabled: no configured sources", zap.String("job", name))
		}
	}
	s.started = true
	return nil
}

// Stop cancels the timers and any run in progress, then waits for the loops to exit.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	handles := make([]*handle, 0, len(s.jobs))
	for _, h := range s.jobs {
		handles = append(handles, h)
	}
	s.started = false
	s.mu.Unlock()

	for _, h := range handles {
		h.task.Stop()
		h.task.Wait()
	}
}

// Reschedule swaps the trigger of a job. Run state and any active run are left alone.
func (s *Scheduler) Reschedule(name string, trigger Trigger) error {
	h, err := s.lookup(name)
	if err != nil {
		return err
	}
	h.task.Reschedule(trigger)
	s.logger.Info("Rescheduled job", zap.String("job", name), zap.Stringer("trigger", trigger))
	return nil
}

// Run triggers a job now, in the caller's goroutine, under the same guards as timer runs.
func (s *Scheduler) Run(ctx context.Context, name string) (reconcile.SyncResult, error) {
	h, err := s.lookup(name)
	if err != nil {
		return reconcile.SyncResult{Message: err.Error()}, err
	}
	if !h.enabled {
		err := fmt.Errorf("%w: %s", ErrDisabled, name)
		return reconcile.SyncResult{Message: err.Error()}, err
	}
	return s.execute(ctx, h)
}

// State returns the current state of a job.
func (s *Scheduler) State(name string) (JobRunState, error) {
	h, err := s.lookup(name)
	if err != nil {
		return JobRunState{}, err
	}
	return h.snapshotState(), nil
}

func (s *Scheduler) lookup(name string) (*handle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, ok := s.jobs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownJob, name)
	}
	return h, nil
}

func (s *Scheduler) isRunning(name string) bool {
	s.mu.RLock()
	h, ok := s.jobs[name]
	s.mu.RUnlock()
	return ok && h.running.Load()
}

func (s *Scheduler) execute(ctx context.Context, h *handle) (reconcile.SyncResult, error) {
	name := h.job.Name()
	if h.defersTo != "" && s.isRunning(h.defersTo) {
		err := fmt.Errorf("%w: %s yields to running %s", ErrDeferred, name, h.defersTo)
		return reconcile.SyncResult{Message: err.Error()}, err
	}
	if !h.running.CompareAndSwap(false, true) {
		err := fmt.Errorf("%w: %s", ErrAlreadyRunning, name)
		return reconcile.SyncResult{Message: err.Error()}, err
	}
	defer h.running.Store(false)

	started := time.Now()
	state := JobRunState{Job: name, RunID: uuid.NewString(), Status: StatusRunning, LastRunAt: &started}
	h.setState(state)
	l := logger.WithJob(s.logger, name, "").With(zap.String("run_id", state.RunID))
	if err := s.states.Save(ctx, state); err != nil {
		l.Error("Failed to persist running state", zap.Error(err))
	}
	l.Info("Job started")

	report := s.runJob(ctx, h.job)

	var failures []string
	if report.Err != nil {
		failures = append(failures, report.Err.Error())
	}
	for _, src := range report.Sources {
		state.Stats.Merge(src.Stats)
		sl := l.With(zap.String("source", src.Source))
		if src.Err != nil {
			sl.Error("Source failed", zap.Error(src.Err))
			failures = append(failures, src.Source+": "+src.Err.Error())
			continue
		}
		if src.SnapshotKey == "" {
			continue
		}
		if err := s.snapshots.Put(ctx, src.SnapshotKey, src.Content); err != nil {
			sl.Error("Failed to commit snapshot", zap.Error(err))
			failures = append(failures, src.Source+": "+err.Error())
		}
	}

	finished := time.Now()
	state.FinishedAt = &finished
	result := reconcile.SyncResult{Stats: state.Stats}
	if len(failures) == 0 {
		state.Status = StatusSucceeded
		result.Success = true
		result.Message = fmt.Sprintf("%s sync completed: %d added, %d updated, %d skipped, %d errors",
			name, state.Stats.Added, state.Stats.Updated, state.Stats.Skipped, state.Stats.Errors)
	} else {
		state.Status = StatusFailed
		state.LastError = strings.Join(failures, "; ")
		result.Message = fmt.Sprintf("%s sync failed: %s", name, state.LastError)
	}

	h.setState(state)
	// Persist even when the run context was cancelled.
	if err := s.states.Save(context.WithoutCancel(ctx), state); err != nil {
		l.Error("Failed to persist run state", zap.Error(err))
	}

	l.Info("Job finished",
		zap.String("status", string(state.Status)),
		zap.Duration("duration", finished.Sub(started)),
		zap.Int("total", state.Stats.Total),
		zap.Int("added", state.Stats.Added),
		zap.Int("updated", state.Stats.Updated),
		zap.Int("skipped", state.Stats.Skipped),
		zap.Int("errors", state.Stats.Errors))
	return result, nil
}

func (s *Scheduler) runJob(ctx context.Context, job Job) (report Report) {
	defer func() {
		if r := recover(); r != nil {
			report = Report{Err: fmt.Errorf("job panicked: %v", r)}
		}
	}()
	if err := ctx.Err(); err != nil {
		return Report{Err: err}
	}
	return job.Run(ctx)
}
