// Package config loads the CLI configuration from defaults, the config file,
// environment variables and flags.
package config

import "fmt"

// Config holds all CLI configuration options.
type Config struct {
	// StatePath is the SQLite database file. Ignored for the postgres driver.
	StatePath string `koanf:"state_path"`
	// Driver selects the store backend: "sqlite" or "postgres".
	Driver string `koanf:"driver"`
	// DSN is the postgres connection string. Required for the postgres driver.
	DSN string `koanf:"dsn"`
	// TransformsDir holds shop-defined Starlark transform files (optional).
	TransformsDir string `koanf:"transforms_dir"`
	// Workers caps concurrent product processing during reprocess.
	Workers int    `koanf:"workers"`
	Verbose bool   `koanf:"verbose"`
	Output  string `koanf:"output"`
}

// Default configuration values.
const (
	DefaultStateFile = ".feedlift/state.db"
	DefaultDriver    = "sqlite"
	DefaultWorkers   = 1
	DefaultOutput    = "table"
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	switch c.Driver {
	case "sqlite":
		if c.StatePath == "" {
			return fmt.Errorf("state_path is required for the sqlite driver")
		}
	case "postgres":
		if c.DSN == "" {
			return fmt.Errorf("dsn is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown driver %q (expected sqlite or postgres)", c.Driver)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	switch c.Output {
	case "", "table", "json", "csv":
	default:
		return fmt.Errorf("unknown output format %q (expected table, json or csv)", c.Output)
	}
	return nil
}

// StoreTarget returns the Open target for the configured driver.
func (c *Config) StoreTarget() string {
	if c.Driver == "postgres" {
		return c.DSN
	}
	return c.StatePath
}
