package inventory

import "time"

// JobName identifies the inventory job in the scheduler, snapshots and logs.
const JobName = "inventory"

// Record is one stock line as read from a vendor feed.
type Record struct {
	SKU      string
	UPC      string
	Quantity int
}

// Item is the inventory_items row, unique per (source, sku).
type Item struct {
	ID        uint    `gorm:"primaryKey"`
	Source    string  `gorm:"column:source;size:64;not null;uniqueIndex:idx_inventory_source_sku"`
	SKU       string  `gorm:"column:sku;size:128;not null;uniqueIndex:idx_inventory_source_sku"`
	UPC       *string `gorm:"column:upc;size:32;index"`
	Quantity  int     `gorm:"column:quantity;not null;default:0"`
	UpdatedAt time.Time
}

// TableName overrides the table name used by Item.
func (Item) TableName() string {
	return "inventory_items"
}

// QuantityUpdate sets the quantity of an existing item.
type QuantityUpdate struct {
	ID       uint
	SKU      string
	Quantity int
}
