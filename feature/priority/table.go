package priority

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// Table looks up the configured priority of a source.
type Table interface {
	PriorityOf(ctx context.Context, source string) (int, bool, error)
}

// SourcePriority is the source_priorities row. Lower values win.
type SourcePriority struct {
	Source   string `gorm:"column:source;primaryKey;size:64"`
	Priority int    `gorm:"column:priority;not null"`
}

// TableName overrides the table name used by SourcePriority.
func (SourcePriority) TableName() string {
	return "source_priorities"
}

// DBTable reads priorities from the source_priorities table.
type DBTable struct {
	db *gorm.DB
}

// NewDBTable creates a table backed by the database.
func NewDBTable(db *gorm.DB) *DBTable {
	return &DBTable{db: db}
}

// Migrate creates the source_priorities table.
func (t *DBTable) Migrate() error {
	return t.db.AutoMigrate(&SourcePriority{})
}

// PriorityOf returns the stored priority of source. Names match case-insensitively.
func (t *DBTable) PriorityOf(ctx context.Context, source string) (int, bool, error) {
	var row SourcePriority
	err := t.db.WithContext(ctx).Where("LOWER(source) = ?", strings.ToLower(source)).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to look up priority of %s: %w", source, err)
	}
	return row.Priority, true, nil
}

// StaticTable serves priorities from configuration.
type StaticTable map[string]int

// PriorityOf returns the configured priority of source.
func (t StaticTable) PriorityOf(_ context.Context, source string) (int, bool, error) {
	p, ok := t[strings.ToLower(source)]
	return p, ok, nil
}

// Chain asks each table in order and returns the first hit.
type Chain []Table

// PriorityOf returns the first table's answer that knows source.
func (c Chain) PriorityOf(ctx context.Context, source string) (int, bool, error) {
	for _, t := range c {
		p, ok, err := t.PriorityOf(ctx, source)
		if err != nil {
			return 0, false, err
		}
		if ok {
			return p, true, nil
		}
	}
	return 0, false, nil
}
