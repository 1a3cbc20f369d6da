package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/inodesk/internal/flagx"
)

// parseFlags overlays cfg with the flags it knows about. Other arguments,
// -c/-config included, are filtered out first. Boolean flags need the
// -s=false form to be switched off.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-d", "-m", "-t", "-b", "-s", "-l"})

	fs := flag.NewFlagSet("inodesk", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "SQLite DSN")
	fs.StringVar(&cfg.MetricsAddr, "m", cfg.MetricsAddr, "metrics listen address")
	timeout := fs.Int("t", int(cfg.StorageTimeout.Seconds()), "storage timeout (in seconds)")
	fs.IntVar(&cfg.PasswordCost, "b", cfg.PasswordCost, "bcrypt cost")
	fs.BoolVar(&cfg.SeedDefaults, "s", cfg.SeedDefaults, "seed default accounts")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.StorageTimeout = time.Duration(*timeout) * time.Second
		}
	})
	return nil
}
