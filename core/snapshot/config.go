package snapshot

// Config selects and configures the snapshot backend.
type Config struct {
	// Backend is one of file, s3 or database.
	Backend string `mapstructure:"backend" default:"file"`
	// Dir is the root directory of the file backend.
	Dir string `mapstructure:"dir" default:"data/snapshots"`
	// Prefix is prepended to object names in the s3 backend.
	Prefix string `mapstructure:"prefix" default:"snapshots/"`
}
