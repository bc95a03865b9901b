// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind a small Client interface. The sync engine uses it
// in two places: as a snapshot backend (the last processed feed per job and source) and
// as the "s3" feed transport for vendors that drop their files into a bucket.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (see core/storage/mocks).
//
// # Error Helpers
//
// IsNotFound and IsAccessDenied translate S3 error codes so callers can tell a missing
// snapshot or feed object from a credential problem.
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	err = storage.EnsureBucket(ctx, client, config.Bucket, config.Region)
package storage
