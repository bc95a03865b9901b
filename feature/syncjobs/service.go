package syncjobs

import (
	"context"
	"errors"
	"sync"

	"catalog-sync/core/feed"
	"catalog-sync/core/reconcile"
	"catalog-sync/core/schedule"
	"catalog-sync/feature/catalog"
	"catalog-sync/feature/inventory"

	"go.uber.org/zap"
)

// SourcedJob is a job that reads from named vendor sources.
type SourcedJob interface {
	schedule.Job
	Sources() []string
}

// Registration pairs a job with the source view it resolves feeds through.
type Registration struct {
	Job     SourcedJob
	Sources feed.Sources
}

// Status is the state of both sync jobs.
type Status struct {
	CatalogSync   schedule.JobRunState `json:"catalog_sync"`
	InventorySync schedule.JobRunState `json:"inventory_sync"`
}

// Service is the control surface of the sync engine.
type Service struct {
	scheduler *schedule.Scheduler
	catalog   Registration
	inventory Registration
	cfg       schedule.Config
	logger    *zap.Logger

	mu          sync.Mutex
	ctx         context.Context
	initialized bool
}

// ErrAlreadyInitialized is returned by a second call to Initialize.
var ErrAlreadyInitialized = errors.New("sync service already initialized")

// NewService creates the service. Nothing is scheduled until Initialize.
func NewService(scheduler *schedule.Scheduler, cfg schedule.Config, catalogJob, inventoryJob Registration, logger *zap.Logger) *Service {
	return &Service{
		scheduler: scheduler,
		catalog:   catalogJob,
		inventory: inventoryJob,
		cfg:       cfg,
		logger:    logger,
		ctx:       context.Background(),
	}
}

// Initialize registers both jobs and starts their timers. A job none of whose sources
// is configured stays disabled. The inventory job yields to a running catalog job.
func (s *Service) Initialize(ctx context.Context) error {
	s.mu.Lock()
	if s.initialized {
		s.mu.Unlock()
		return ErrAlreadyInitialized
	}
	s.initialized = true
	s.mu.Unlock()

	triggers := schedule.Resolve(s.cfg, s.logger)

	s.scheduler.Register(s.catalog.Job, triggers.Catalog, s.enabled(ctx, s.catalog)...)
	inventoryOpts := append(s.enabled(ctx, s.inventory), schedule.DefersTo(catalog.JobName))
	s.scheduler.Register(s.inventory.Job, triggers.Inventory, inventoryOpts...)

	s.mu.Lock()
	s.ctx = ctx
	s.mu.Unlock()
	return s.scheduler.Start(ctx)
}

func (s *Service) enabled(ctx context.Context, r Registration) []schedule.Option {
	if feed.Configured(ctx, r.Sources, r.Job.Sources()) {
		return nil
	}
	return []schedule.Option{schedule.Disabled()}
}

// UpdateSchedule applies a new cadence without touching run state.
func (s *Service) UpdateSchedule(cfg schedule.Config) error {
	triggers := schedule.Resolve(cfg, s.logger)
	if err := s.scheduler.Reschedule(catalog.JobName, triggers.Catalog); err != nil {
		return err
	}
	if err := s.scheduler.Reschedule(inventory.JobName, triggers.Inventory); err != nil {
		return err
	}
	s.mu.Lock()
	s.cfg = cfg
	s.mu.Unlock()
	return nil
}

// GetStatus returns the state of both jobs.
func (s *Service) GetStatus() Status {
	var st Status
	st.CatalogSync, _ = s.scheduler.State(catalog.JobName)
	st.InventorySync, _ = s.scheduler.State(inventory.JobName)
	return st
}

// TriggerManually runs a job now and waits for it. Guard refusals come back as an
// unsuccessful result.
func (s *Service) TriggerManually(ctx context.Context, job string) reconcile.SyncResult {
	result, _ := s.Trigger(ctx, job)
	return result
}

// Trigger is TriggerManually with the guard error exposed.
func (s *Service) Trigger(ctx context.Context, job string) (reconcile.SyncResult, error) {
	result, err := s.scheduler.Run(ctx, job)
	if err != nil {
		s.logger.Info("Manual trigger refused", zap.String("job", job), zap.Error(err))
	}
	return result, err
}

// TriggerAsync starts a job in the background under the service context.
func (s *Service) TriggerAsync(job string) {
	s.mu.Lock()
	ctx := s.ctx
	s.mu.Unlock()
	go s.Trigger(ctx, job)
}

// Shutdown stops the timers and cancels runs in progress.
func (s *Service) Shutdown() {
	s.scheduler.Stop()
}

// IsRefusal reports whether err is a guard refusal rather than a job failure.
func IsRefusal(err error) bool {
	return errors.Is(err, schedule.ErrAlreadyRunning) ||
		errors.Is(err, schedule.ErrDeferred) ||
		errors.Is(err, schedule.ErrDisabled)
}
