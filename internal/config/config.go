// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load() layers defaults, an optional YAML file and environment variables.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// MaxHerdSize caps the number of horses accepted per request.
	MaxHerdSize int `koanf:"max_herd_size"`

	// MaxPrimaryStats caps the number of primary stats per request.
	MaxPrimaryStats int `koanf:"max_primary_stats"`
}

// New creates a Config with the service defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		Addr:            ":9080",
		MaxHerdSize:     10_000,
		MaxPrimaryStats: 32,
	}
}
