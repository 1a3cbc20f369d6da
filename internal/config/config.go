package config

import (
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Config holds runtime settings for the inodesk CLI.
type Config struct {
	DatabaseDSN    string
	MetricsAddr    string
	StorageTimeout time.Duration
	PasswordCost   int
	SeedDefaults   bool
	LogLevel       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabaseDSN = "inodesk.db"
	c.MetricsAddr = ""
	c.StorageTimeout = 3 * time.Second
	c.PasswordCost = bcrypt.DefaultCost
	c.SeedDefaults = true
	c.LogLevel = "info"
}

// LoadConfig applies defaults, then the JSON file named by -c/-config (if
// any), then command-line flags from os.Args.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}

// Load is LoadConfig over an explicit argument list.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
