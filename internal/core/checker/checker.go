// Package checker implements domain availability lookups against external
// registration data providers.
package checker

import (
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/nameforge/nameforge/internal/core/scanner"
)

// Driver identifiers accepted in configuration.
const (
	DriverRDAP      = "rdap"
	DriverMatchList = "matchlist"
)

// Config selects and tunes the lookup provider.
type Config struct {
	Driver     string        `mapstructure:"driver"`
	BaseURL    string        `mapstructure:"base_url"`
	Timeout    time.Duration `mapstructure:"timeout"`
	RatePerSec float64       `mapstructure:"rate_per_sec"`
	RateBurst  int           `mapstructure:"rate_burst"`
}

// New builds the configured lookup driver.
func New(cfg Config) (scanner.Checker, error) {
	switch cfg.Driver {
	case DriverRDAP, "":
		return &RDAPChecker{
			BaseURL: cfg.BaseURL,
			Timeout: cfg.Timeout,
			Limiter: limiterFor(cfg),
		}, nil
	case DriverMatchList:
		return &MatchListChecker{
			BaseURL: cfg.BaseURL,
			Timeout: cfg.Timeout,
			Limiter: limiterFor(cfg),
		}, nil
	default:
		return nil, fmt.Errorf("unknown lookup driver %q", cfg.Driver)
	}
}

// limiterFor builds the client-side rate limiter for a driver, or nil when
// the config does not ask for one.
func limiterFor(cfg Config) *rate.Limiter {
	if cfg.RatePerSec <= 0 {
		return nil
	}
	burst := cfg.RateBurst
	if burst <= 0 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(cfg.RatePerSec), burst)
}
