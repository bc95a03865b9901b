package sources

// Config describes one vendor source. Sources are read from the sources map of
// config.yaml, keyed by source name.
type Config struct {
	// Protocol is ftp, http, https or s3.
	Protocol string `mapstructure:"protocol"`
	// Host is the server name, or the endpoint for s3.
	Host string `mapstructure:"host"`
	// Port overrides the protocol default.
	Port int `mapstructure:"port"`
	// User is the login, basic auth user or access key.
	User string `mapstructure:"user"`
	// Secret is the password or secret key.
	Secret string `mapstructure:"secret"`
	// SecretEnv names an environment variable holding the secret. It wins over Secret.
	SecretEnv string `mapstructure:"secret_env"`
	// Paths maps a job name (catalog, inventory) to the remote file of that feed.
	Paths map[string]string `mapstructure:"paths"`
	// Priority seeds the source priority when the database has none. Lower wins.
	Priority *int `mapstructure:"priority"`
	// Delimiter is the cell separator; defaults to ",".
	Delimiter string `mapstructure:"delimiter"`
	// Columns overrides the header name per field, e.g. {upc: "EAN"}.
	Columns map[string]string `mapstructure:"columns"`
}
