package feed

import (
	"context"
	"errors"
	"testing"

	"catalog-sync/core/fetch"
	"catalog-sync/core/snapshot"
	"catalog-sync/core/tabular"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type staticFetcher struct {
	data []byte
	err  error
}

func (f staticFetcher) Fetch(context.Context, fetch.RemoteConfig) ([]byte, error) {
	return f.data, f.err
}

var acme = fetch.RemoteConfig{Source: "acme", Protocol: "ftp"}

func TestLoad_Bootstrap(t *testing.T) {
	store := snapshot.NewFileStore(t.TempDir())
	loader := NewLoader(staticFetcher{data: []byte("upc,name\n1,a\n2,b\n")}, store, zap.NewNop())

	changes, err := loader.Load(context.Background(), "catalog", acme, tabular.Options{})

	require.NoError(t, err)
	assert.Equal(t, "catalog/acme", changes.Key)
	assert.True(t, changes.Diff.Bootstrap)
	assert.Len(t, changes.Document.Rows, 2)
	assert.Nil(t, changes.Removed)

	_, ok, _ := store.Get(context.Background(), changes.Key)
	assert.False(t, ok, "loading never commits the snapshot")
}

func TestLoad_Incremental(t *testing.T) {
	store := snapshot.NewFileStore(t.TempDir())
	require.NoError(t, store.Put(context.Background(), "inventory/acme", []byte("sku,quantity\nA,1\nB,2\nC,3\n")))
	loader := NewLoader(staticFetcher{data: []byte("sku,quantity\nA,1\nB,5\n")}, store, zap.NewNop())

	changes, err := loader.Load(context.Background(), "inventory", acme, tabular.Options{})

	require.NoError(t, err)
	require.Len(t, changes.Document.Rows, 1)
	assert.Equal(t, "B", changes.Document.Rows[0].Get("sku"))
	require.NotNil(t, changes.Removed)
	assert.Len(t, changes.Removed.Rows, 2)
}

func TestLoad_Errors(t *testing.T) {
	store := snapshot.NewFileStore(t.TempDir())

	_, err := NewLoader(staticFetcher{err: errors.New("boom")}, store, zap.NewNop()).
		Load(context.Background(), "catalog", acme, tabular.Options{})
	assert.EqualError(t, err, "boom")

	_, err = NewLoader(staticFetcher{data: []byte("")}, store, zap.NewNop()).
		Load(context.Background(), "catalog", acme, tabular.Options{})
	assert.ErrorIs(t, err, tabular.ErrEmptyDocument)
}

type mapSources map[string]*fetch.RemoteConfig

func (m mapSources) GetRemoteConfig(_ context.Context, source string) (*fetch.RemoteConfig, error) {
	return m[source], nil
}
func (m mapSources) ParseOptions(string) tabular.Options { return tabular.Options{} }
func (m mapSources) Columns(string) map[string]string    { return nil }

func TestConfigured(t *testing.T) {
	s := mapSources{"acme": &acme}
	assert.True(t, Configured(context.Background(), s, []string{"globex", "acme"}))
	assert.False(t, Configured(context.Background(), s, []string{"globex"}))
	assert.False(t, Configured(context.Background(), s, nil))
}
