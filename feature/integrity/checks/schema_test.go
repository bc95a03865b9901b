package checks

import (
	"testing"

	"catalog-sync/core/database"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type widget struct {
	ID    uint
	Code  string `gorm:"column:code"`
	Label string
}

func (widget) TableName() string { return "widgets" }

type gizmo struct {
	ID uint
}

func (gizmo) TableName() string { return "gizmos" }

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

func TestCheckSchema_NilDB(t *testing.T) {
	report, err := CheckSchema(nil, nil)
	assert.Error(t, err)
	assert.Nil(t, report)
}

func TestCheckSchema_SQLite(t *testing.T) {
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.Exec("CREATE TABLE widgets (id INTEGER PRIMARY KEY, code TEXT)").Error)

	report, err := CheckSchema(db, []any{&widget{}, &gizmo{}})

	require.NoError(t, err)
	assert.False(t, report.Matched)
	assert.Equal(t, []string{"label"}, report.Tables["widgets"].MissingColumns)
	assert.Equal(t, "missing_columns", report.Tables["widgets"].Status)
	assert.Equal(t, []string{"id"}, report.Tables["gizmos"].MissingColumns, "absent table misses every column")
}

func TestCheckSchema_MySQL(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectQuery("SHOW COLUMNS FROM `widgets`").
		WillReturnRows(sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"}).
			AddRow("id", "int unsigned", "NO", "PRI", nil, "auto_increment").
			AddRow("code", "varchar(32)", "YES", "", nil, "").
			AddRow("Label", "varchar(64)", "YES", "", nil, ""))

	report, err := CheckSchema(db, []any{&widget{}})

	require.NoError(t, err)
	assert.True(t, report.Matched)
	assert.Equal(t, "ok", report.Tables["widgets"].Status)
	assert.Empty(t, report.Errors)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckSchema_InspectError(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectQuery("SHOW COLUMNS FROM `widgets`").WillReturnError(assert.AnError)

	report, err := CheckSchema(db, []any{&widget{}})

	require.NoError(t, err)
	assert.False(t, report.Matched)
	assert.Equal(t, "error", report.Tables["widgets"].Status)
	require.Len(t, report.Errors, 1)
}
