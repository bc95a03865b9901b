// Package tabular parses delimited vendor feeds into typed records.
//
// Parsing is tolerant: each data line is split on its own, malformed lines are dropped
// and reported as RowError values, and only a structurally broken document (no header,
// or a header lacking a required column) yields a ParseError that aborts the run.
//
// # Header Repair
//
// Headers are trimmed, stripped of a UTF-8 BOM and of stray double quotes, and matched
// case-insensitively. A header that fails strict CSV parsing (one vendor variant leaves a
// quote unbalanced) is re-split on the delimiter.
//
// # Typed Decoding
//
// Decode maps rows to records of a document kind through a ColumnMap, keeping a per-row
// error instead of failing the batch:
//
//	doc, err := tabular.Parse(lines, tabular.Options{Delimiter: ','})
//	results := tabular.Decode(doc, func(r tabular.Row) (Item, error) { ... })
package tabular
