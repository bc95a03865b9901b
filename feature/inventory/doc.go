// Package inventory applies vendor stock feeds to inventory_items, one row per
// (source, SKU).
//
// A run lists the stored items of a source once, plans inserts, quantity updates and
// no-ops, then writes inserts as one batched insert and updates in one transaction.
// Unchanged quantities cause no writes. With zero_missing enabled, SKUs that dropped
// out of a feed are set to quantity 0; items are never deleted.
package inventory
