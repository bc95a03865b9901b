package cmd

import (
	"fmt"
	"net/http"
	"time"

	"catalog-sync/core/config"
	"catalog-sync/core/database"
	"catalog-sync/core/feed"
	"catalog-sync/core/fetch"
	"catalog-sync/core/logger"
	"catalog-sync/core/schedule"
	"catalog-sync/core/snapshot"
	"catalog-sync/core/storage"
	"catalog-sync/feature/catalog"
	"catalog-sync/feature/integrity"
	"catalog-sync/feature/inventory"
	"catalog-sync/feature/priority"
	"catalog-sync/feature/sources"
	"catalog-sync/feature/syncjobs"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// app holds every component the commands share. Build it once per process.
type app struct {
	cfg       *config.Config
	logger    *zap.Logger
	db        *gorm.DB
	storage   storage.Client
	states    *schedule.GormStateStore
	service   *syncjobs.Service
	integrity *integrity.Feature
}

func newApp(path string) (*app, error) {
	// 1. Load Configuration
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	// 2. Initialize Logger
	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	// 3. Connect to Database
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, err
	}
	logg.Info("Connected to catalog database", zap.String("driver", cfg.Database.Driver))

	// 4. Initialize Storage (only snapshots use the shared bucket)
	var store storage.Client
	if cfg.Snapshot.Backend == "s3" {
		if store, err = storage.NewClient(cfg.Storage); err != nil {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
	}

	// 5. Engine tables
	states := schedule.NewGormStateStore(db)
	if err := states.Migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate run state: %w", err)
	}
	priorityTable := priority.NewDBTable(db)
	if err := priorityTable.Migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate source priorities: %w", err)
	}
	if cfg.Snapshot.Backend == "database" {
		if err := snapshot.NewDBStore(db).Migrate(); err != nil {
			return nil, fmt.Errorf("failed to migrate snapshots: %w", err)
		}
	}

	snapshots, err := snapshot.New(cfg.Snapshot, snapshot.Backends{
		Client: store,
		Bucket: cfg.Storage.Bucket,
		DB:     db,
	})
	if err != nil {
		return nil, err
	}

	// 6. Feed pipeline
	timeout := time.Duration(cfg.Fetch.TimeoutSeconds) * time.Second
	httpTransport := &fetch.HTTPTransport{Client: &http.Client{Timeout: timeout}, Scheme: "https"}
	fetcher := fetch.New(cfg.Fetch, logg, map[string]fetch.Transport{
		"ftp":   &fetch.FTPTransport{Timeout: timeout},
		"http":  &fetch.HTTPTransport{Client: httpTransport.Client, Scheme: "http"},
		"https": httpTransport,
		"s3":    &fetch.S3Transport{UseSSL: cfg.Storage.UseSSL, TimeoutSeconds: cfg.Storage.TimeoutSeconds},
	})
	loader := feed.NewLoader(fetcher, snapshots, logg)

	provider := sources.NewProvider(cfg.Sources)
	resolver := priority.NewResolver(priority.Chain{priorityTable, provider.Priorities()}, cfg.Priority, logg)

	// 7. Jobs
	catalogProvider := provider.ForJob(catalog.JobName)
	catalogJob := catalog.NewJob(cfg.Catalog.Sources, catalogProvider, loader,
		catalog.NewReconciler(catalog.NewGormStore(db), resolver, logg), resolver, logg)

	inventoryProvider := provider.ForJob(inventory.JobName)
	inventoryJob := inventory.NewJob(cfg.Inventory, inventoryProvider, loader,
		inventory.NewReconciler(inventory.NewGormStore(db, cfg.Inventory.BatchSize), logg), logg)

	scheduler := schedule.New(states, snapshots, logg)
	service := syncjobs.NewService(scheduler, cfg.Schedule,
		syncjobs.Registration{Job: catalogJob, Sources: catalogProvider},
		syncjobs.Registration{Job: inventoryJob, Sources: inventoryProvider},
		logg)

	return &app{
		cfg:       cfg,
		logger:    logg,
		db:        db,
		storage:   store,
		states:    states,
		service:   service,
		integrity: integrity.NewFeature(store, cfg.Storage.Bucket, cfg.Storage.Region, db, schemaModels(cfg.Snapshot.Backend), logg),
	}, nil
}

// schemaModels lists the models whose tables the integrity check inspects.
func schemaModels(snapshotBackend string) []any {
	models := []any{&catalog.Product{}, &inventory.Item{}, &priority.SourcePriority{}, &schedule.RunRecord{}}
	if snapshotBackend == "database" {
		models = append(models, &snapshot.Record{})
	}
	return models
}
