/*
config.go - Environment-driven configuration

PURPOSE:
  One struct describing every runtime knob, parsed from the environment
  with optional .env overrides for local development. Credentials are
  validated here so the server fails at startup, not on the first
  backend call.

CACHE BACKENDS:
  memory  In-process map, lost on restart (default)
  sqlite  Single-file persistent cache (CACHE_PATH)
  redis   Shared cache for multi-instance deployments (REDIS_ADDR)

SEE ALSO:
  - cmd/server/main.go: Consumes this at startup
  - cache/: Backend implementations selected by CacheBackend
*/
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Cache backend selectors.
const (
	CacheMemory = "memory"
	CacheSQLite = "sqlite"
	CacheRedis  = "redis"
)

// NetSuiteOptions holds the token-based authentication credentials.
type NetSuiteOptions struct {
	AccountID      string        `env:"NETSUITE_ACCOUNT_ID"`
	ConsumerKey    string        `env:"NETSUITE_CONSUMER_KEY"`
	ConsumerSecret string        `env:"NETSUITE_CONSUMER_SECRET"`
	TokenID        string        `env:"NETSUITE_TOKEN_ID"`
	TokenSecret    string        `env:"NETSUITE_TOKEN_SECRET"`
	Timeout        time.Duration `env:"NETSUITE_TIMEOUT" envDefault:"60s"`
}

// Validate reports the first missing credential.
func (o NetSuiteOptions) Validate() error {
	checks := []struct{ name, value string }{
		{"NETSUITE_ACCOUNT_ID", o.AccountID},
		{"NETSUITE_CONSUMER_KEY", o.ConsumerKey},
		{"NETSUITE_CONSUMER_SECRET", o.ConsumerSecret},
		{"NETSUITE_TOKEN_ID", o.TokenID},
		{"NETSUITE_TOKEN_SECRET", o.TokenSecret},
	}
	for _, c := range checks {
		if c.value == "" {
			return fmt.Errorf("missing required environment variable %s", c.name)
		}
	}
	return nil
}

// Configuration is the full runtime configuration.
type Configuration struct {
	Port     int    `env:"PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	CacheBackend string        `env:"CACHE_BACKEND" envDefault:"memory"`
	CacheTTL     time.Duration `env:"CACHE_TTL" envDefault:"15m"`
	CachePath    string        `env:"CACHE_PATH" envDefault:"lookup-cache.db"`
	RedisAddr    string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`

	NetSuite NetSuiteOptions
}

// Load reads .env files that exist, parses the environment, and validates.
func Load(envFiles ...string) (*Configuration, error) {
	existing := make([]string, 0, len(envFiles))
	for _, f := range envFiles {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) > 0 {
		if err := godotenv.Load(existing...); err != nil {
			return nil, fmt.Errorf("load env files: %w", err)
		}
	}

	c := &Configuration{}
	if err := env.Parse(c); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	switch c.CacheBackend {
	case CacheMemory, CacheSQLite, CacheRedis:
	default:
		return nil, fmt.Errorf("unknown CACHE_BACKEND %q", c.CacheBackend)
	}

	if err := c.NetSuite.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}
