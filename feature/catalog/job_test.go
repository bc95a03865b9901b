package catalog

import (
	"context"
	"errors"
	"testing"

	"catalog-sync/core/feed"
	"catalog-sync/core/fetch"
	"catalog-sync/core/reconcile"
	"catalog-sync/core/snapshot"
	"catalog-sync/core/tabular"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeFetcher map[string]string

func (f fakeFetcher) Fetch(_ context.Context, rc fetch.RemoteConfig) ([]byte, error) {
	body, ok := f[rc.Source]
	if !ok {
		return nil, &fetch.FetchError{Source: rc.Source, Kind: fetch.KindNotFound, Attempts: 1, Err: errors.New("550")}
	}
	return []byte(body), nil
}

type fakeSources struct {
	columns map[string]map[string]string
	missing map[string]bool
}

func (f fakeSources) GetRemoteConfig(_ context.Context, source string) (*fetch.RemoteConfig, error) {
	if f.missing[source] {
		return nil, nil
	}
	return &fetch.RemoteConfig{Source: source, Protocol: "ftp", RemotePath: "/" + source + ".csv"}, nil
}
func (f fakeSources) ParseOptions(string) tabular.Options     { return tabular.Options{} }
func (f fakeSources) Columns(source string) map[string]string { return f.columns[source] }

func newTestJob(t *testing.T, sources []string, feeds fakeFetcher, src fakeSources) (*Job, snapshot.Store, *GormStore) {
	snaps := snapshot.NewFileStore(t.TempDir())
	store := newSQLiteStore(t)
	loader := feed.NewLoader(feeds, snaps, zap.NewNop())
	job := NewJob(sources, src, loader, NewReconciler(store, priorities, zap.NewNop()), priorities, zap.NewNop())
	return job, snaps, store
}

func TestJob_IncrementalRunCreatesOnlyNewRecord(t *testing.T) {
	feeds := fakeFetcher{"good": "UPC,NAME\n111,Widget\n222,Gadget\n"}
	job, snaps, store := newTestJob(t, []string{"good"}, feeds, fakeSources{})
	ctx := context.Background()
	require.NoError(t, snaps.Put(ctx, "catalog/good", []byte("UPC,NAME\n111,Widget\n")))

	report := job.Run(ctx)

	require.Len(t, report.Sources, 1)
	rep := report.Sources[0]
	require.NoError(t, rep.Err)
	assert.Equal(t, "catalog/good", rep.SnapshotKey)
	assert.Equal(t, feeds["good"], string(rep.Content))
	assert.Equal(t, reconcile.Stats{Total: 1, Added: 1}, rep.Stats)

	p, _ := store.FindByKey(ctx, "111")
	assert.Nil(t, p, "unchanged line was not reprocessed")
	p, _ = store.FindByKey(ctx, "222")
	require.NotNil(t, p)
	assert.Equal(t, "Gadget", p.Record().Name)
}

func TestJob_CountsSkippedAndMalformedRows(t *testing.T) {
	feeds := fakeFetcher{"good": "EAN,Title\n111,Widget\n,No code\n\"333,Broken\nNA,Placeholder\n"}
	src := fakeSources{columns: map[string]map[string]string{"good": {"upc": "EAN", "name": "Title"}}}
	job, _, _ := newTestJob(t, []string{"good"}, feeds, src)

	report := job.Run(context.Background())

	require.Len(t, report.Sources, 1)
	require.NoError(t, report.Sources[0].Err)
	assert.Equal(t, reconcile.Stats{Total: 4, Added: 1, Skipped: 2, Errors: 1}, report.Sources[0].Stats)
}

func TestJob_SourceFailuresAreIsolated(t *testing.T) {
	feeds := fakeFetcher{"good": "upc,name\n111,Widget\n", "fair": "sku,qty\nA,1\n"}
	src := fakeSources{missing: map[string]bool{"unset": true}}
	job, _, _ := newTestJob(t, []string{"poor", "fair", "unset", "good"}, feeds, src)

	report := job.Run(context.Background())

	require.Len(t, report.Sources, 4)

	var fe *fetch.FetchError
	assert.True(t, errors.As(report.Sources[0].Err, &fe), "fetch failure")
	assert.ErrorIs(t, report.Sources[1].Err, tabular.ErrMissingColumn)
	assert.NoError(t, report.Sources[2].Err)
	assert.Empty(t, report.Sources[2].SnapshotKey, "unconfigured source commits nothing")
	assert.NoError(t, report.Sources[3].Err)
	assert.Equal(t, 1, report.Sources[3].Stats.Added)
}

func TestJob_NoChanges(t *testing.T) {
	feeds := fakeFetcher{"good": "upc,name\n111,Widget\n"}
	job, snaps, _ := newTestJob(t, []string{"good"}, feeds, fakeSources{})
	require.NoError(t, snaps.Put(context.Background(), "catalog/good", []byte("upc,name\r\n111,Widget\r\n")))

	report := job.Run(context.Background())

	require.NoError(t, report.Sources[0].Err)
	assert.Equal(t, reconcile.Stats{}, report.Sources[0].Stats)
	assert.Equal(t, "catalog/good", report.Sources[0].SnapshotKey)
}

func TestJob_Name(t *testing.T) {
	job := NewJob([]string{"a"}, fakeSources{}, nil, nil, priorities, zap.NewNop())
	assert.Equal(t, "catalog", job.Name())
	assert.Equal(t, []string{"a"}, job.Sources())
}
