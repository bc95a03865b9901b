package priority

// Config controls priority resolution.
type Config struct {
	// CacheTTLSeconds is how long a resolved priority stays cached.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" default:"300"`
	// DefaultPriority applies to sources missing from every table.
	DefaultPriority int `mapstructure:"default_priority" default:"999"`
}
