// Package reconcile holds what the catalog and inventory reconcilers share.
//
// # Counters
//
// Stats is reported per source and merged per job. Its JSON form uses the
// total_records / records_updated / records_added / records_skipped / records_errors
// names expected by callers of the scheduler API, and SyncResult wraps it.
//
// # Overwrite policy
//
// CanOverwrite is the single rule deciding whether one source may rewrite a record
// owned by another: strictly lower priority wins, ties keep the incumbent, and a
// source may always update its own records.
//
// # Plans
//
// Bulk reconcilers first partition incoming records into a Plan of inserts, updates
// and skips, then apply each group with one store call.
//
//	var plan reconcile.Plan[Item]
//	plan.Add(reconcile.Action[Item]{Type: reconcile.ActionInsert, Key: sku, Record: item})
//	store.BulkInsert(ctx, reconcile.Records(plan.Inserts))
package reconcile
