// Package catalog merges vendor catalog feeds into catalog_products, one row per UPC.
//
// # Rules
//
// For each record, in feed order:
//
//  1. A blank or placeholder UPC (N/A, NA, NONE, NULL, -, all zeros) is skipped.
//  2. An unknown UPC is inserted and attributed to the source.
//  3. A UPC owned by another source is only rewritten when the incoming source has a
//     strictly lower priority value. The incumbent wins ties.
//  4. A rewrite whose tracked fields (name, brand, MPN, category, description, source)
//     already match is skipped without touching the row.
//
// Records are never deleted. Store failures count as errors for that record only.
package catalog
