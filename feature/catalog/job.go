package catalog

import (
	"context"
	"errors"

	"catalog-sync/core/feed"
	"catalog-sync/core/fetch"
	"catalog-sync/core/logger"
	"catalog-sync/core/reconcile"
	"catalog-sync/core/schedule"
	"catalog-sync/core/tabular"

	"go.uber.org/zap"
)

// FeedLoader produces the changed rows of a feed.
type FeedLoader interface {
	Load(ctx context.Context, job string, rc fetch.RemoteConfig, opts tabular.Options) (*feed.Changes, error)
}

// Job is the daily catalog sync.
type Job struct {
	sources    []string
	provider   feed.Sources
	loader     FeedLoader
	reconciler *Reconciler
	priorities PriorityResolver
	logger     *zap.Logger
}

// NewJob creates the catalog job.
func NewJob(sources []string, provider feed.Sources, loader FeedLoader, reconciler *Reconciler, priorities PriorityResolver, logger *zap.Logger) *Job {
	return &Job{
		sources:    sources,
		provider:   provider,
		loader:     loader,
		reconciler: reconciler,
		priorities: priorities,
		logger:     logger,
	}
}

// Name returns the job name.
func (j *Job) Name() string {
	return JobName
}

// Sources returns the configured source names.
func (j *Job) Sources() []string {
	return j.sources
}

// Run processes every source in order. Priorities are re-read at the start of each run.
func (j *Job) Run(ctx context.Context) schedule.Report {
	j.priorities.Reset()

	var report schedule.Report
	for _, source := range j.sources {
		if err := ctx.Err(); err != nil {
			report.Err = err
			break
		}
		report.Sources = append(report.Sources, j.runSource(ctx, source))
	}
	return report
}

func (j *Job) runSource(ctx context.Context, source string) schedule.SourceReport {
	l := logger.WithJob(j.logger, JobName, source)
	rep := schedule.SourceReport{Source: source}

	rc, err := j.provider.GetRemoteConfig(ctx, source)
	if err != nil {
		rep.Err = err
		return rep
	}
	if rc == nil {
		l.Warn("Source has no catalog feed configured, skipping")
		return rep
	}

	changes, err := j.loader.Load(ctx, JobName, *rc, j.provider.ParseOptions(source))
	if err != nil {
		rep.Err = err
		return rep
	}
	rep.SnapshotKey = changes.Key
	rep.Content = changes.Content

	if changes.Diff.Stats.Removed > 0 {
		// Catalog records are never deleted
		l.Info("Lines dropped from feed", zap.Int("removed", changes.Diff.Stats.Removed))
	}
	if !changes.Diff.HasChanges {
		l.Info("No changes since last snapshot")
		return rep
	}

	cols := DefaultColumns.Merge(j.provider.Columns(source))
	required := make([]string, 0, len(RequiredFields))
	for _, f := range RequiredFields {
		required = append(required, cols.Column(f))
	}
	if err := changes.Document.Require(required...); err != nil {
		rep.Err = err
		return rep
	}

	stats := reconcile.Stats{
		Total:  len(changes.Document.Rows) + len(changes.Document.Malformed),
		Errors: len(changes.Document.Malformed),
	}
	results := Decode(changes.Document, cols)
	records := make([]Record, 0, len(results))
	for _, res := range results {
		switch {
		case res.Err == nil:
			records = append(records, res.Record)
		case errors.Is(res.Err, tabular.ErrMissingValue):
			stats.Skipped++
		default:
			l.Warn("Rejected row", zap.Int("line", res.Line), zap.Error(res.Err))
			stats.Errors++
		}
	}

	applied := j.reconciler.Reconcile(ctx, source, records)
	applied.Total = 0
	stats.Merge(applied)
	rep.Stats = stats

	l.Info("Catalog source reconciled",
		zap.Int("total", stats.Total),
		zap.Int("added", stats.Added),
		zap.Int("updated", stats.Updated),
		zap.Int("skipped", stats.Skipped),
		zap.Int("errors", stats.Errors))
	return rep
}
