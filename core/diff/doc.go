// Package diff reduces a freshly fetched feed to the lines that changed since the last
// successfully processed snapshot.
//
// Feeds are header-first, newline-delimited tables. Comparison is exact, line by line,
// against a set built from the previous snapshot: a modified record shows up as a new
// line because its content differs, so modified and added rows are reported alike.
// The header is always the first returned line so the parser has column names.
//
// Without a previous snapshot (first sync of a source) every line is returned.
// Lines that disappeared are counted and returned separately; the catalog path only
// logs them, the inventory path can optionally zero their quantities.
package diff
