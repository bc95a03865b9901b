package inventory

import (
	"fmt"

	"catalog-sync/core/tabular"
	"catalog-sync/core/utils"
)

// DefaultColumns maps record fields to the header names used when a source sets no override.
var DefaultColumns = tabular.ColumnMap{
	"sku":      "sku",
	"upc":      "upc",
	"quantity": "quantity",
}

// RequiredFields must be present in every inventory header.
var RequiredFields = []string{"sku", "quantity"}

// Decode turns inventory rows into records. Rows without a SKU carry ErrMissingValue;
// an unreadable quantity is a conversion error.
func Decode(doc *tabular.Document, cols tabular.ColumnMap) []tabular.Result[Record] {
	return tabular.Decode(doc, func(row tabular.Row) (Record, error) {
		sku, err := tabular.Required(row, cols, "sku")
		if err != nil {
			return Record{}, err
		}
		raw, err := tabular.Required(row, cols, "quantity")
		if err != nil {
			return Record{}, err
		}
		qty, err := utils.ParseQuantity(raw)
		if err != nil {
			return Record{}, fmt.Errorf("sku %s: %w", sku, err)
		}
		return Record{SKU: sku, UPC: row.Get(cols.Column("upc")), Quantity: qty}, nil
	})
}

// SKUs returns the SKU cell of every row in doc.
func SKUs(doc *tabular.Document, cols tabular.ColumnMap) []string {
	if doc == nil {
		return nil
	}
	out := make([]string, 0, len(doc.Rows))
	for _, row := range doc.Rows {
		if sku := row.Get(cols.Column("sku")); sku != "" {
			out = append(out, sku)
		}
	}
	return out
}
