package catalog

// Config lists the sources feeding the catalog job.
type Config struct {
	// Sources are processed in order on every run.
	Sources []string `mapstructure:"sources"`
}
