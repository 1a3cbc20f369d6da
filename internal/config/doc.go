// Package config loads runtime configuration for the inodesk CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-d string   SQLite DSN holding the directory and the session mirror
//	-m string   address for the Prometheus /metrics listener (empty disables it)
//	-t int      storage write timeout (seconds)
//	-b int      bcrypt cost for new password hashes
//	-s bool     seed the default accounts into an empty directory
//	-l string   log level: debug, info, warn or error
//
// # JSON schema
//
// Durations use timex.Duration, so "3s" and integer nanoseconds both work.
// Keys missing from the file keep their previous value:
//
//	{
//	  "database_dsn": "inodesk.db",
//	  "metrics_addr": "127.0.0.1:9100",
//	  "storage_timeout": "3s",
//	  "password_cost": 10,
//	  "seed_defaults": true,
//	  "log_level": "info"
//	}
package config
