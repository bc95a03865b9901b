package catalog

import (
	"context"
	"strings"

	"catalog-sync/core/reconcile"

	"go.uber.org/zap"
)

// PriorityResolver resolves source priorities for a run.
type PriorityResolver interface {
	PriorityOf(ctx context.Context, source string) int
	Reset()
}

// Reconciler merges vendor records into the shared catalog.
type Reconciler struct {
	store      Store
	priorities PriorityResolver
	logger     *zap.Logger
}

// NewReconciler creates a catalog reconciler.
func NewReconciler(store Store, priorities PriorityResolver, logger *zap.Logger) *Reconciler {
	return &Reconciler{store: store, priorities: priorities, logger: logger}
}

// Reconcile applies records from source in order. A failing record is counted and logged;
// it never stops the batch.
func (r *Reconciler) Reconcile(ctx context.Context, source string, records []Record) reconcile.Stats {
	stats := reconcile.Stats{Total: len(records)}
	l := r.logger.With(zap.String("source", source))
	incoming := -1

	for _, rec := range records {
		rec.UPC = strings.TrimSpace(rec.UPC)
		rec.Source = source
		if !ValidUPC(rec.UPC) {
			stats.Skipped++
			continue
		}

		existing, err := r.store.FindByKey(ctx, rec.UPC)
		if err != nil {
			l.Error("Catalog lookup failed", zap.String("upc", rec.UPC), zap.Error(err))
			stats.Errors++
			continue
		}

		if existing == nil {
			if err := r.store.Insert(ctx, rec); err != nil {
				l.Error("Catalog insert failed", zap.String("upc", rec.UPC), zap.Error(err))
				stats.Errors++
				continue
			}
			stats.Added++
			continue
		}

		current := existing.Record()
		sameSource := strings.EqualFold(current.Source, source)
		if sameSource {
			// Keep the stored spelling so a case-only difference is not a write.
			rec.Source = current.Source
		} else {
			if incoming < 0 {
				incoming = r.priorities.PriorityOf(ctx, source)
			}
			incumbent := r.priorities.PriorityOf(ctx, current.Source)
			if !reconcile.CanOverwrite(incoming, incumbent, false) {
				l.Debug("Lower priority, keeping incumbent",
					zap.String("upc", rec.UPC),
					zap.String("incumbent", current.Source),
					zap.Int("priority", incoming),
					zap.Int("incumbent_priority", incumbent))
				stats.Skipped++
				continue
			}
		}

		if sameContent(current, rec) {
			stats.Skipped++
			continue
		}

		if err := r.store.Update(ctx, existing.ID, fields(rec)); err != nil {
			l.Error("Catalog update failed", zap.String("upc", rec.UPC), zap.Error(err))
			stats.Errors++
			continue
		}
		stats.Updated++
	}

	return stats
}
