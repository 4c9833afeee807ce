package config

import (
	"errors"
	"time"
)

// Upstream controls outbound calls to the providers.
type Upstream struct {
	UserAgent string        `env:"USER_AGENT" envDefault:"Decap-CMS"`
	Timeout   time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"10s"`
	// RateLimit is requests per second for each provider client; 0 disables the limiter.
	RateLimit float64 `env:"UPSTREAM_RATE_LIMIT" envDefault:"0"`
}

func (u Upstream) validate() error {
	if u.Timeout <= 0 {
		return errors.New("UPSTREAM_TIMEOUT must be positive")
	}
	if u.RateLimit < 0 {
		return errors.New("UPSTREAM_RATE_LIMIT must not be negative")
	}
	return nil
}
