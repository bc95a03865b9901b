package feed

import (
	"context"

	"catalog-sync/core/fetch"
	"catalog-sync/core/tabular"
)

// Sources resolves per-source settings for one job.
type Sources interface {
	// GetRemoteConfig returns nil when the source is not configured for the job.
	GetRemoteConfig(ctx context.Context, source string) (*fetch.RemoteConfig, error)
	ParseOptions(source string) tabular.Options
	Columns(source string) map[string]string
}

// Configured reports whether at least one of the named sources has a remote config.
func Configured(ctx context.Context, s Sources, names []string) bool {
	for _, name := range names {
		if rc, err := s.GetRemoteConfig(ctx, name); err == nil && rc != nil {
			return true
		}
	}
	return false
}
