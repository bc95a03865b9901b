package inventory

import (
	"context"

	"catalog-sync/core/reconcile"

	"go.uber.org/zap"
)

// Reconciler applies vendor stock lines to inventory_items in bulk.
type Reconciler struct {
	store  Store
	logger *zap.Logger
}

// NewReconciler creates an inventory reconciler.
func NewReconciler(store Store, logger *zap.Logger) *Reconciler {
	return &Reconciler{store: store, logger: logger}
}

// ReconcileBulk inserts new SKUs and updates changed quantities. Only a failure to read
// the current inventory is returned as an error; failed writes are counted.
func (r *Reconciler) ReconcileBulk(ctx context.Context, source string, records []Record) (reconcile.Stats, error) {
	return r.ReconcileReplace(ctx, source, records, nil)
}

// ReconcileReplace is ReconcileBulk for full-replace feeds: SKUs in removed that are absent
// from records are set to quantity 0.
func (r *Reconciler) ReconcileReplace(ctx context.Context, source string, records []Record, removed []string) (reconcile.Stats, error) {
	stats := reconcile.Stats{Total: len(records)}
	l := r.logger.With(zap.String("source", source))

	existing, err := r.store.ListBySource(ctx, source)
	if err != nil {
		return stats, err
	}

	plan := BuildPlan(source, existing, records, removed)
	stats.Skipped = len(plan.Skips)

	if len(plan.Inserts) > 0 {
		if err := r.store.BulkInsert(ctx, reconcile.Records(plan.Inserts)); err != nil {
			l.Error("Bulk insert failed", zap.Int("count", len(plan.Inserts)), zap.Error(err))
			stats.Errors += len(plan.Inserts)
		} else {
			stats.Added = len(plan.Inserts)
		}
	}

	if len(plan.Updates) > 0 {
		if err := r.store.BulkUpdateQuantity(ctx, quantityUpdates(plan.Updates)); err != nil {
			l.Error("Bulk update failed", zap.Int("count", len(plan.Updates)), zap.Error(err))
			stats.Errors += len(plan.Updates)
		} else {
			stats.Updated = len(plan.Updates)
		}
	}

	return stats, nil
}
