package config

import "github.com/caarlos0/env/v11"

// parseEnv overlays cfg with AUTHGATE_* variables. A nil environ reads the
// process environment. Unset variables leave fields untouched; a malformed
// value panics.
func parseEnv(cfg *Config, environ map[string]string) {
	opts := env.Options{}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		panic(err)
	}
}
