// Package integrity checks the infrastructure the sync jobs depend on.
//
// # Checks Provided
//
//   - Schema: every sync table carries the columns its store reads and writes.
//   - Storage: the snapshot bucket exists when snapshots live in object storage.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/schema : Runs the schema check.
//   - GET /integrity/storage : Runs the storage check (supports ?fix=true).
package integrity
