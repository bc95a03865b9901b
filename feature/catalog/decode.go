package catalog

import (
	"catalog-sync/core/tabular"
)

// DefaultColumns maps record fields to the header names used when a source sets no override.
var DefaultColumns = tabular.ColumnMap{
	"upc":         "upc",
	"name":        "name",
	"brand":       "brand",
	"category":    "category",
	"description": "description",
	"mpn":         "mpn",
}

// RequiredFields must be present in every catalog header.
var RequiredFields = []string{"upc", "name"}

// Decode turns catalog rows into records. Rows without a UPC carry ErrMissingValue.
func Decode(doc *tabular.Document, cols tabular.ColumnMap) []tabular.Result[Record] {
	return tabular.Decode(doc, func(row tabular.Row) (Record, error) {
		upc, err := tabular.Required(row, cols, "upc")
		if err != nil {
			return Record{}, err
		}
		return Record{
			UPC:         upc,
			Name:        row.Get(cols.Column("name")),
			Brand:       row.Get(cols.Column("brand")),
			Category:    row.Get(cols.Column("category")),
			Description: row.Get(cols.Column("description")),
			MPN:         row.Get(cols.Column("mpn")),
		}, nil
	})
}
