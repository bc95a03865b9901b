// Package config provides configuration management for the sync engine.
//
// It utilizes Viper for loading configuration from environment variables
// and an optional config.yaml file.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: ops HTTP server settings
//   - Database: connection details of the collaborator database
//   - Storage: S3/MinIO credentials for object storage snapshots and feeds
//   - Fetch, Snapshot, Schedule, Priority: engine settings
//   - Catalog, Inventory: the sources each job syncs
//   - Sources: per-source connection settings (config file only)
//
// Scalar keys can be overridden with environment variables (SCHEDULE_CATALOG_TIME -> schedule.catalog_time).
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Schedule.CatalogTime)
package config
