// Package config loads runtime configuration for authgate.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected with -c or -config. Files ending in
//     .toml are decoded as TOML, anything else as JSON.
//  3. Environment variables prefixed with AUTHGATE_.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-s string   storage backend: file, sqlite or postgres
//	-p string   data directory for file and sqlite storage
//	-d string   postgres DSN
//	-m string   password hash method: legacy, argon2 or bcrypt
//	-t int      one-time code lifetime in seconds (0 disables expiry)
//	-r string   casbin policy CSV replacing the built-in role table
//	-l string   log level: debug, info, warn or error
//
// # File schema
//
// Durations accept Go duration strings or integer seconds:
//
//	{
//	  "storage": "sqlite",
//	  "data_dir": "/var/lib/authgate",
//	  "code_ttl": "2m"
//	}
//
// Keys missing from the file keep their earlier value. An unreadable or
// malformed file panics.
package config
