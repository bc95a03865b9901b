package snapshot

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"catalog-sync/core/storage"

	"github.com/minio/minio-go/v7"
)

// ObjectStore keeps snapshots as objects in a bucket.
type ObjectStore struct {
	client storage.Client
	bucket string
	prefix string
}

// NewObjectStore creates an object-storage-backed store.
func NewObjectStore(client storage.Client, bucket, prefix string) *ObjectStore {
	return &ObjectStore{client: client, bucket: bucket, prefix: prefix}
}

func (s *ObjectStore) objectName(key string) string {
	return s.prefix + key + ".csv"
}

// Get downloads the snapshot object for key.
func (s *ObjectStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, s.objectName(key), minio.GetObjectOptions{})
	if err != nil {
		if storage.IsNotFound(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get snapshot %s: %w", key, err)
	}
	defer obj.Close()

	// The minio client reports a missing key on first read
	data, err := io.ReadAll(obj)
	if err != nil {
		if storage.IsNotFound(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read snapshot %s: %w", key, err)
	}
	return data, true, nil
}

// Put uploads the snapshot in one request. Object storage replaces whole objects atomically.
func (s *ObjectStore) Put(ctx context.Context, key string, data []byte) error {
	_, err := s.client.PutObject(ctx, s.bucket, s.objectName(key), bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "text/csv",
	})
	if err != nil {
		return fmt.Errorf("failed to put snapshot %s: %w", key, err)
	}
	return nil
}
