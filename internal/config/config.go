package config

import (
	"time"

	"github.com/nameforge/nameforge/internal/core/checker"
	"github.com/nameforge/nameforge/internal/suggest"
)

// Config represents the complete application configuration.
type Config struct {
	Server  ServerConfig   `mapstructure:"server"`
	Suggest suggest.Config `mapstructure:"suggest"`
	Lookup  checker.Config `mapstructure:"lookup"`
	Scan    ScanConfig     `mapstructure:"scan"`
	Logging LoggingConfig  `mapstructure:"logging"`
	Metrics MetricsConfig  `mapstructure:"metrics"`
	Health  HealthConfig   `mapstructure:"health"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// ScanConfig tunes the availability scan.
type ScanConfig struct {
	// MaxResults is how many confirmed-available names one scan looks for.
	MaxResults int `mapstructure:"max_results"`

	// Concurrency bounds lookups in flight for one scan.
	Concurrency int `mapstructure:"concurrency"`

	// LookupTimeout caps a single availability lookup. A timed-out lookup
	// counts as unavailable.
	LookupTimeout time.Duration `mapstructure:"lookup_timeout"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level controls the minimum log level
	// Valid values: trace, debug, info, warn, error
	Level string `mapstructure:"level"`
}

// MetricsConfig contains Prometheus metrics configuration
type MetricsConfig struct {
	// Enabled controls whether metrics are exposed
	Enabled bool `mapstructure:"enabled"`

	// Port is the dedicated metrics endpoint port (Prometheus format)
	// Metrics are also proxied at /metrics on the main HTTP port
	Port int `mapstructure:"port"`
}

// HealthConfig contains health check configuration
type HealthConfig struct {
	// Enabled controls whether health endpoints are exposed
	Enabled bool `mapstructure:"enabled"`
}
