package catalog

import (
	"strings"
	"time"

	"catalog-sync/core/utils"
)

// JobName identifies the catalog job in the scheduler, snapshots and logs.
const JobName = "catalog"

// Record is one catalog entry as read from a vendor feed.
type Record struct {
	UPC         string
	Name        string
	Brand       string
	Category    string
	Description string
	MPN         string
	Source      string
}

// Product is the catalog_products row. Optional text columns are nullable.
type Product struct {
	ID          uint    `gorm:"primaryKey"`
	UPC         string  `gorm:"column:upc;size:32;uniqueIndex;not null"`
	Name        *string `gorm:"column:name;size:255"`
	Brand       *string `gorm:"column:brand;size:128"`
	Category    *string `gorm:"column:category;size:128"`
	Description *string `gorm:"column:description;type:text"`
	MPN         *string `gorm:"column:mpn;size:128"`
	Source      string  `gorm:"column:source;size:64;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName overrides the table name used by Product.
func (Product) TableName() string {
	return "catalog_products"
}

// Record returns the product as a record, reading NULL columns as "".
func (p *Product) Record() Record {
	return Record{
		UPC:         p.UPC,
		Name:        utils.ToString(p.Name),
		Brand:       utils.ToString(p.Brand),
		Category:    utils.ToString(p.Category),
		Description: utils.ToString(p.Description),
		MPN:         utils.ToString(p.MPN),
		Source:      p.Source,
	}
}

// newProduct builds the row for a record.
func newProduct(r Record) *Product {
	return &Product{
		UPC:         r.UPC,
		Name:        nullable(r.Name),
		Brand:       nullable(r.Brand),
		Category:    nullable(r.Category),
		Description: nullable(r.Description),
		MPN:         nullable(r.MPN),
		Source:      r.Source,
	}
}

// fields returns the column updates that make a row match r.
func fields(r Record) map[string]any {
	return map[string]any{
		"name":        nullable(r.Name),
		"brand":       nullable(r.Brand),
		"category":    nullable(r.Category),
		"description": nullable(r.Description),
		"mpn":         nullable(r.MPN),
		"source":      r.Source,
	}
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// sameContent reports whether two records carry identical tracked fields.
func sameContent(a, b Record) bool {
	return a.Name == b.Name &&
		a.Brand == b.Brand &&
		a.MPN == b.MPN &&
		a.Category == b.Category &&
		a.Description == b.Description &&
		a.Source == b.Source
}

// placeholderUPCs are values vendors put in the UPC column when they have none.
var placeholderUPCs = map[string]struct{}{
	"N/A": {}, "NA": {}, "NONE": {}, "NULL": {}, "-": {},
}

// ValidUPC reports whether upc can key a catalog record.
func ValidUPC(upc string) bool {
	upc = strings.TrimSpace(upc)
	if upc == "" {
		return false
	}
	if _, bad := placeholderUPCs[strings.ToUpper(upc)]; bad {
		return false
	}
	return strings.Trim(upc, "0") != ""
}
