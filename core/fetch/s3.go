package fetch

import (
	"context"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"

	"catalog-sync/core/storage"

	"github.com/minio/minio-go/v7"
)

// S3Transport downloads feeds from S3-compatible object storage.
// RemotePath is "<bucket>/<object key>"; Host and Port name the endpoint,
// User and Secret are the access key pair.
type S3Transport struct {
	UseSSL         bool
	TimeoutSeconds int
	// NewClient builds a client per source; defaults to storage.NewClient.
	NewClient func(cfg storage.Config) (storage.Client, error)
}

// Download reads the object into w.
func (t *S3Transport) Download(ctx context.Context, rc RemoteConfig, w io.Writer) error {
	bucket, key, ok := strings.Cut(strings.TrimPrefix(rc.RemotePath, "/"), "/")
	if !ok || bucket == "" || key == "" {
		return Classify(KindNotFound, fmt.Errorf("remote path %q must be <bucket>/<key>", rc.RemotePath))
	}

	endpoint := rc.Host
	if rc.Port != 0 {
		endpoint = net.JoinHostPort(rc.Host, strconv.Itoa(rc.Port))
	}
	newClient := t.NewClient
	if newClient == nil {
		newClient = storage.NewClient
	}
	client, err := newClient(storage.Config{
		Endpoint:       endpoint,
		AccessKey:      rc.User,
		SecretKey:      rc.Secret,
		UseSSL:         t.UseSSL,
		TimeoutSeconds: t.TimeoutSeconds,
	})
	if err != nil {
		return fmt.Errorf("source %s: %w", rc.Source, err)
	}

	obj, err := client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return classifyS3(fmt.Errorf("failed to get %s/%s: %w", bucket, key, err))
	}
	defer obj.Close()

	if _, err := io.Copy(w, obj); err != nil {
		return classifyS3(fmt.Errorf("failed to read %s/%s: %w", bucket, key, err))
	}
	return nil
}

func classifyS3(err error) error {
	switch {
	case storage.IsNotFound(err):
		return Classify(KindNotFound, err)
	case storage.IsAccessDenied(err):
		return Classify(KindAuth, err)
	}
	return Classify(KindTransient, err)
}
