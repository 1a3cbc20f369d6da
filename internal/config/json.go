package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/inodesk/internal/flagx"
	"github.com/dmitrijs2005/inodesk/internal/timex"
)

// jsonConfig is the on-disk shape. Pointer fields tell an absent key from a
// zero value.
type jsonConfig struct {
	DatabaseDSN    *string         `json:"database_dsn"`
	MetricsAddr    *string         `json:"metrics_addr"`
	StorageTimeout *timex.Duration `json:"storage_timeout"`
	PasswordCost   *int            `json:"password_cost"`
	SeedDefaults   *bool           `json:"seed_defaults"`
	LogLevel       *string         `json:"log_level"`
}

func parseJSON(cfg *Config, args []string) error {
	path := flagx.JSONConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if jc.DatabaseDSN != nil {
		cfg.DatabaseDSN = *jc.DatabaseDSN
	}
	if jc.MetricsAddr != nil {
		cfg.MetricsAddr = *jc.MetricsAddr
	}
	if jc.StorageTimeout != nil {
		cfg.StorageTimeout = jc.StorageTimeout.Duration
	}
	if jc.PasswordCost != nil {
		cfg.PasswordCost = *jc.PasswordCost
	}
	if jc.SeedDefaults != nil {
		cfg.SeedDefaults = *jc.SeedDefaults
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
	return nil
}
