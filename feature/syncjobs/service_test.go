package syncjobs

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"catalog-sync/core/database"
	"catalog-sync/core/fetch"
	"catalog-sync/core/reconcile"
	"catalog-sync/core/schedule"
	"catalog-sync/core/snapshot"
	"catalog-sync/core/tabular"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeJob struct {
	name    string
	sources []string
	gate    chan struct{}
	entered chan struct{}
}

func (j *fakeJob) Name() string      { return j.name }
func (j *fakeJob) Sources() []string { return j.sources }
func (j *fakeJob) Run(ctx context.Context) schedule.Report {
	if j.entered != nil {
		j.entered <- struct{}{}
	}
	if j.gate != nil {
		select {
		case <-j.gate:
		case <-ctx.Done():
		}
	}
	return schedule.Report{Sources: []schedule.SourceReport{{
		Source: "acme", SnapshotKey: j.name + "/acme", Content: []byte("h\n"),
		Stats: reconcile.Stats{Total: 2, Added: 1, Skipped: 1},
	}}}
}

type configured map[string]bool

func (c configured) GetRemoteConfig(_ context.Context, source string) (*fetch.RemoteConfig, error) {
	if !c[source] {
		return nil, nil
	}
	return &fetch.RemoteConfig{Source: source}, nil
}
func (c configured) ParseOptions(string) tabular.Options { return tabular.Options{} }
func (c configured) Columns(string) map[string]string    { return nil }

type fixture struct {
	service   *Service
	app       *fiber.App
	catalog   *fakeJob
	inventory *fakeJob
}

func newFixture(t *testing.T, inventoryConfigured bool) *fixture {
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	states := schedule.NewGormStateStore(db)
	require.NoError(t, states.Migrate())

	logger := zap.NewNop()
	scheduler := schedule.New(states, snapshot.NewFileStore(t.TempDir()), logger)
	f := &fixture{
		catalog:   &fakeJob{name: "catalog", sources: []string{"acme"}},
		inventory: &fakeJob{name: "inventory", sources: []string{"acme"}},
	}
	f.service = NewService(scheduler, schedule.Config{CatalogTime: "02:00", InventoryInterval: "1h", Timezone: "UTC"},
		Registration{Job: f.catalog, Sources: configured{"acme": true}},
		Registration{Job: f.inventory, Sources: configured{"acme": inventoryConfigured}},
		logger)

	f.app = fiber.New()
	require.NoError(t, NewFeature(f.service, logger).Load(f.app))
	return f
}

func TestInitializeAndStatus(t *testing.T) {
	f := newFixture(t, false)
	require.NoError(t, f.service.Initialize(context.Background()))
	defer f.service.Shutdown()

	st := f.service.GetStatus()
	assert.Equal(t, schedule.StatusIdle, st.CatalogSync.Status)
	assert.True(t, st.CatalogSync.Enabled)
	assert.False(t, st.InventorySync.Enabled, "no configured inventory source")

	result := f.service.TriggerManually(context.Background(), "inventory")
	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "disabled")
}

func TestInitialize_Twice(t *testing.T) {
	f := newFixture(t, true)
	require.NoError(t, f.service.Initialize(context.Background()))
	defer f.service.Shutdown()

	err := f.service.Initialize(context.Background())
	assert.ErrorIs(t, err, ErrAlreadyInitialized)
	assert.True(t, f.service.GetStatus().CatalogSync.Enabled)
}

func TestTriggerManually(t *testing.T) {
	f := newFixture(t, true)
	require.NoError(t, f.service.Initialize(context.Background()))
	defer f.service.Shutdown()

	result := f.service.TriggerManually(context.Background(), "catalog")

	assert.True(t, result.Success)
	assert.Equal(t, reconcile.Stats{Total: 2, Added: 1, Skipped: 1}, result.Stats)
	assert.Equal(t, schedule.StatusSucceeded, f.service.GetStatus().CatalogSync.Status)

	result = f.service.TriggerManually(context.Background(), "billing")
	assert.False(t, result.Success)
}

func TestUpdateSchedule(t *testing.T) {
	f := newFixture(t, true)
	require.NoError(t, f.service.Initialize(context.Background()))
	defer f.service.Shutdown()

	before := f.service.GetStatus().InventorySync
	require.NoError(t, f.service.UpdateSchedule(schedule.Config{CatalogTime: "03:15", InventoryInterval: "5m", Timezone: "UTC"}))

	assert.Eventually(t, func() bool {
		next := f.service.GetStatus().InventorySync.NextRunAt
		return next != nil && time.Until(*next) <= 5*time.Minute
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, before.Status, f.service.GetStatus().InventorySync.Status)
}

func TestHandleStatus(t *testing.T) {
	f := newFixture(t, true)
	require.NoError(t, f.service.Initialize(context.Background()))
	defer f.service.Shutdown()

	resp, err := f.app.Test(httptest.NewRequest("GET", "/sync/status", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "idle", body["catalog_sync"]["status"])
	assert.Equal(t, "inventory", body["inventory_sync"]["job"])
}

func TestHandleTrigger(t *testing.T) {
	f := newFixture(t, true)
	require.NoError(t, f.service.Initialize(context.Background()))
	defer f.service.Shutdown()

	resp, err := f.app.Test(httptest.NewRequest("POST", "/sync/inventory/trigger", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	var result reconcile.SyncResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.True(t, result.Success)
	assert.Equal(t, 1, result.Stats.Added)

	resp, err = f.app.Test(httptest.NewRequest("POST", "/sync/billing/trigger", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestHandleTrigger_ConflictWhileCatalogRuns(t *testing.T) {
	f := newFixture(t, true)
	f.catalog.gate = make(chan struct{})
	f.catalog.entered = make(chan struct{}, 1)
	require.NoError(t, f.service.Initialize(context.Background()))
	defer f.service.Shutdown()

	resp, err := f.app.Test(httptest.NewRequest("POST", "/sync/catalog/trigger?async=true", nil))
	require.NoError(t, err)
	assert.Equal(t, 202, resp.StatusCode)
	<-f.catalog.entered

	resp, err = f.app.Test(httptest.NewRequest("POST", "/sync/inventory/trigger", nil))
	require.NoError(t, err)
	assert.Equal(t, 409, resp.StatusCode, "inventory defers to catalog")

	resp, err = f.app.Test(httptest.NewRequest("POST", "/sync/catalog/trigger", nil))
	require.NoError(t, err)
	assert.Equal(t, 409, resp.StatusCode, "catalog does not overlap itself")

	close(f.catalog.gate)
	assert.Eventually(t, func() bool {
		return f.service.GetStatus().CatalogSync.Status == schedule.StatusSucceeded
	}, 2*time.Second, 5*time.Millisecond)
}
