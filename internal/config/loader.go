// Package config provides centralized configuration management. Values come
// from three layers: built-in defaults, an optional YAML config file, and
// NAMEFORGE_* environment variables, all merged through viper.
package config

import (
	"fmt"
	"sync"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/nameforge/nameforge/internal/core/checker"
)

var (
	appConfig *Config
	configMu  sync.RWMutex
)

// Load decodes the merged viper state into a typed Config. It is safe to call
// multiple times (e.g. on SIGHUP reload).
func Load() (*Config, error) {
	cfg := &Config{}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}

	if err := decoder.Decode(viper.AllSettings()); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	setConfig(cfg)

	return cfg, nil
}

// Validate rejects configurations the server cannot run with.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}

	switch c.Lookup.Driver {
	case "", checker.DriverRDAP, checker.DriverMatchList:
	default:
		return fmt.Errorf("unknown lookup driver %q", c.Lookup.Driver)
	}

	if c.Scan.MaxResults < 0 {
		return fmt.Errorf("scan.max_results must not be negative")
	}
	if c.Scan.Concurrency < 0 {
		return fmt.Errorf("scan.concurrency must not be negative")
	}

	return nil
}

// GetConfig returns the current application configuration (thread-safe)
func GetConfig() *Config {
	configMu.RLock()
	defer configMu.RUnlock()
	return appConfig
}

// setConfig updates the current configuration (thread-safe)
func setConfig(cfg *Config) {
	configMu.Lock()
	defer configMu.Unlock()
	appConfig = cfg
}
