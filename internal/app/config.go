package app

// Config holds all the necessary configuration for an App instance.
type Config struct {
	// ManifestPaths are the files and directories searched for task and
	// module manifests. Missing paths are skipped, so default locations
	// can be listed freely.
	ManifestPaths []string

	LogFormat string
	LogLevel  string
}

// NewConfig normalizes a config, filling in the logging defaults.
func NewConfig(cfg Config) *Config {
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	return &cfg
}
