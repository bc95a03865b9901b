package schedule

// Config holds the cadence of the sync jobs.
type Config struct {
	// CatalogTime is the daily catalog run time as HH:MM (24h).
	CatalogTime string `mapstructure:"catalog_time" default:"02:00"`
	// InventoryInterval is the inventory run interval as a Go duration, at least 1m.
	InventoryInterval string `mapstructure:"inventory_interval" default:"1h"`
	// Timezone is the IANA location for CatalogTime, or Local.
	Timezone string `mapstructure:"timezone" default:"Local"`
}
