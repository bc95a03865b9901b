package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetTableColumns(t *testing.T) {
	// Setup In-Memory DB
	cfg := Config{
		Driver: "sqlite",
		Name:   ":memory:",
	}
	db, err := Connect(cfg)
	assert.NoError(t, err)
	assert.NotNil(t, db)

	err = db.Exec("CREATE TABLE catalog_products (id INTEGER PRIMARY KEY, upc TEXT, name TEXT)").Error
	assert.NoError(t, err)

	columns, err := GetTableColumns(db, "catalog_products")
	assert.NoError(t, err)
	assert.Len(t, columns, 3)

	// Map columns to map for easy assertion
	colMap := make(map[string]string)
	for _, col := range columns {
		colMap[col.Field] = col.Type
	}

	assert.Equal(t, "integer", colMap["id"])
	assert.Equal(t, "text", colMap["upc"])
	assert.Equal(t, "text", colMap["name"])

	// PRAGMA table_info returns an empty result for a non-existent table in SQLite
	cols, err := GetTableColumns(db, "non_existent")
	assert.NoError(t, err)
	assert.Empty(t, cols)
}

func TestMissingColumns(t *testing.T) {
	db, err := Connect(Config{Driver: "sqlite", Name: ":memory:"})
	assert.NoError(t, err)
	assert.NoError(t, db.Exec("CREATE TABLE inventory_items (id INTEGER PRIMARY KEY, source_id TEXT, quantity INTEGER)").Error)

	missing, err := MissingColumns(db, "inventory_items", []string{"source_id", "vendor_sku", "Quantity"})
	assert.NoError(t, err)
	assert.Equal(t, []string{"vendor_sku"}, missing)

	missing, err = MissingColumns(db, "absent_table", []string{"id"})
	assert.NoError(t, err)
	assert.Equal(t, []string{"id"}, missing)
}
