package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/authgate/internal/flagx"
)

// parseFlags overlays cfg with the flags documented in the package comment.
// Arguments it does not know are filtered out first.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-s", "-p", "-d", "-m", "-t", "-r", "-l"})

	fs := flag.NewFlagSet("authgate", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.Storage, "s", cfg.Storage, "storage backend (file, sqlite, postgres)")
	fs.StringVar(&cfg.DataDir, "p", cfg.DataDir, "data directory")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "postgres DSN")
	fs.StringVar(&cfg.HashMethod, "m", cfg.HashMethod, "password hash method (legacy, argon2, bcrypt)")
	ttl := fs.Int("t", int(cfg.CodeTTL.Seconds()), "one-time code lifetime in seconds, 0 disables expiry")
	fs.StringVar(&cfg.PolicyFile, "r", cfg.PolicyFile, "casbin policy file")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.CodeTTL = time.Duration(*ttl) * time.Second
		}
	})
}
