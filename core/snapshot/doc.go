// Package snapshot stores the last successfully processed document per job and source.
//
// Keys have the form "<job>/<source>". A missing key means the next run bootstraps and
// treats every line as changed. Three backends implement Store:
//
//   - FileStore: one file per key, replaced by rename.
//   - ObjectStore: one object per key in the configured bucket (minio-go).
//   - DBStore: one row per key in sync_snapshots (gorm upsert).
//
// Snapshots are written only after a source was processed successfully.
package snapshot
