package fetch

// Config holds retry and transfer settings for remote feed retrieval.
type Config struct {
	// MaxAttempts is the total number of tries per fetch.
	MaxAttempts int `mapstructure:"max_attempts" default:"3"`
	// BaseDelayMS is the wait before the second attempt; it doubles for each later one.
	BaseDelayMS int `mapstructure:"base_delay_ms" default:"1000"`
	// TimeoutSeconds bounds a single attempt.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"120"`
	// TempDir receives payloads while they download. Empty uses the OS default.
	TempDir string `mapstructure:"temp_dir" default:""`
}
