// Package database handles database connections and schema inspection.
//
// It provides a wrapper around GORM (Go Object Relational Mapping) to configure
// MySQL, PostgreSQL or SQLite connections based on the application's configuration.
//
// # Connect
//
// Connect establishes a connection to the catalog database. The catalog, inventory and
// source priority tables are owned by the surrounding platform; this service only reads
// and writes rows and creates its own bookkeeping tables (run state, snapshots).
//
// # Schema Inspection
//
// GetTableColumns lists the columns of a table so the schema check can verify that the
// collaborator tables carry every column the stores write.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	columns, err := database.GetTableColumns(db, "catalog_products")
package database
