package server

// Config holds configuration for the operational HTTP server.
type Config struct {
	// Enabled turns the status/trigger endpoints on.
	Enabled bool `mapstructure:"enabled" default:"true"`
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
}

// Address returns the listen address for the configured port.
func (c Config) Address() string {
	if c.Port == "" {
		return ":8080"
	}
	return ":" + c.Port
}
