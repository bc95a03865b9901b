package catalog

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func TestGormStore_FindByKey(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewGormStore(db)

	mock.ExpectQuery("SELECT \\* FROM `catalog_products` WHERE upc = .+ LIMIT .+").
		WillReturnRows(sqlmock.NewRows([]string{"id", "upc", "name", "brand", "source"}).
			AddRow(4, "111", "Widget", nil, "acme"))

	p, err := store.FindByKey(context.Background(), "111")

	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, uint(4), p.ID)
	assert.Equal(t, Record{UPC: "111", Name: "Widget", Source: "acme"}, p.Record())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_FindByKeyMissing(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewGormStore(db)

	mock.ExpectQuery("SELECT \\* FROM `catalog_products` WHERE upc = .+ LIMIT .+").
		WillReturnRows(sqlmock.NewRows([]string{"id", "upc"}))

	p, err := store.FindByKey(context.Background(), "999")

	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestGormStore_Update(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewGormStore(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE `catalog_products` SET")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := store.Update(context.Background(), 4, map[string]any{"name": strPtr("Widget"), "source": "acme"})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
