// Package feed turns a remote feed into the parsed set of rows that changed since the
// last successful run.
//
// Load fetches the document, reads the snapshot for "<job>/<source>", diffs the two and
// parses the header plus changed lines. Committing the new snapshot is left to the
// caller, which does so only after the rows were reconciled.
package feed
