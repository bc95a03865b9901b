package checks

import (
	"fmt"
	"sync"

	"catalog-sync/core/database"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// SchemaReport is the result of comparing the live schema with the models the stores use.
type SchemaReport struct {
	Matched bool                   `json:"matched"`
	Tables  map[string]TableReport `json:"tables"`
	Errors  []string               `json:"errors"`
}

// TableReport describes one table.
type TableReport struct {
	MissingColumns []string `json:"missing_columns"`
	Status         string   `json:"status"` // "ok", "missing_columns", "error"
}

// CheckSchema verifies that every model's table carries the columns its store reads and writes.
func CheckSchema(db *gorm.DB, models []any) (*SchemaReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	report := &SchemaReport{
		Matched: true,
		Tables:  make(map[string]TableReport),
		Errors:  []string{},
	}

	cache := &sync.Map{}
	for _, model := range models {
		s, err := schema.Parse(model, cache, db.NamingStrategy)
		if err != nil {
			return nil, fmt.Errorf("failed to parse model %T: %w", model, err)
		}

		missing, err := database.MissingColumns(db, s.Table, s.DBNames)
		if err != nil {
			report.Matched = false
			report.Errors = append(report.Errors, fmt.Sprintf("Failed to inspect table %s: %v", s.Table, err))
			report.Tables[s.Table] = TableReport{MissingColumns: []string{}, Status: "error"}
			continue
		}

		tbl := TableReport{MissingColumns: missing, Status: "ok"}
		if len(missing) > 0 {
			tbl.Status = "missing_columns"
			report.Matched = false
		}
		report.Tables[s.Table] = tbl
	}

	return report, nil
}
