package feed

import (
	"context"
	"fmt"

	"catalog-sync/core/diff"
	"catalog-sync/core/fetch"
	"catalog-sync/core/snapshot"
	"catalog-sync/core/tabular"

	"go.uber.org/zap"
)

// Fetcher retrieves a remote feed.
type Fetcher interface {
	Fetch(ctx context.Context, rc fetch.RemoteConfig) ([]byte, error)
}

// Changes is what a job needs to process one feed.
type Changes struct {
	// Key is the snapshot key to commit once the feed was processed.
	Key string
	// Content is the raw fetched document.
	Content []byte
	Diff    diff.Result
	// Document holds the header and the changed rows.
	Document *tabular.Document
	// Removed holds the header and the rows dropped since the last snapshot. Nil when none.
	Removed *tabular.Document
}

// Loader fetches a feed, compares it with its snapshot and parses the changed lines.
type Loader struct {
	fetcher   Fetcher
	snapshots snapshot.Store
	logger    *zap.Logger
}

// NewLoader creates a feed loader.
func NewLoader(fetcher Fetcher, snapshots snapshot.Store, logger *zap.Logger) *Loader {
	return &Loader{fetcher: fetcher, snapshots: snapshots, logger: logger}
}

// Load runs fetch, diff and parse for one (job, source) pair. The snapshot is never written here.
func (l *Loader) Load(ctx context.Context, job string, rc fetch.RemoteConfig, opts tabular.Options) (*Changes, error) {
	key := snapshot.Key(job, rc.Source)

	content, err := l.fetcher.Fetch(ctx, rc)
	if err != nil {
		return nil, err
	}

	previous, hasPrevious, err := l.snapshots.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	result := diff.Diff(content, previous, hasPrevious)
	l.logger.Info("Compared feed with snapshot",
		zap.String("snapshot", key),
		zap.Bool("bootstrap", result.Bootstrap),
		zap.Int("total", result.Stats.Total),
		zap.Int("changed", result.Stats.Changed),
		zap.Int("unchanged", result.Stats.Unchanged),
		zap.Int("removed", result.Stats.Removed))

	doc, err := tabular.Parse(result.Lines, opts)
	if err != nil {
		return nil, err
	}
	for _, bad := range doc.Malformed {
		l.logger.Warn("Dropped malformed line", zap.String("snapshot", key), zap.Int("line", bad.Line), zap.Error(bad.Err))
	}

	changes := &Changes{Key: key, Content: content, Diff: result, Document: doc}
	if len(result.Removed) > 0 {
		lines := append([]string{result.Header}, result.Removed...)
		if removed, err := tabular.Parse(lines, opts); err == nil {
			changes.Removed = removed
		}
	}
	return changes, nil
}
