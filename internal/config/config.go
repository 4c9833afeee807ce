package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is built once at process start and passed to the server; handlers never read
// the environment themselves.
type Config struct {
	Env      EnvVars
	Cors     Cors
	GitHub   GitHub
	Backend  Backend
	Delivery Delivery
	Upstream Upstream
}

// Load reads a local .env file when one exists, then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("[config Load] failed to read .env: %w", err)
	}
	return parse(env.Options{})
}

// LoadFrom builds a Config from an explicit variable map instead of the process environment.
func LoadFrom(environment map[string]string) (*Config, error) {
	if environment == nil {
		environment = map[string]string{}
	}
	return parse(env.Options{Environment: environment})
}

func parse(opts env.Options) (*Config, error) {
	var c Config
	if err := env.ParseWithOptions(&c, opts); err != nil {
		return nil, fmt.Errorf("[config Load] parse env: %w", err)
	}
	if err := c.Upstream.validate(); err != nil {
		return nil, fmt.Errorf("[config Load] %w", err)
	}
	return &c, nil
}

// Secrets lists every configured credential that must never appear in a response or log line.
func (c *Config) Secrets() []string {
	var secrets []string
	for _, s := range []string{c.GitHub.ClientSecret, c.Backend.APIKey} {
		if s != "" {
			secrets = append(secrets, s)
		}
	}
	return secrets
}
