package inventory

// Config lists the sources feeding the inventory job.
type Config struct {
	// Sources are processed in order on every run.
	Sources []string `mapstructure:"sources"`
	// ZeroMissing sets the quantity of SKUs dropped from a feed to 0.
	ZeroMissing bool `mapstructure:"zero_missing" default:"false"`
	// BatchSize is the number of rows per bulk insert statement.
	BatchSize int `mapstructure:"batch_size" default:"500"`
}
