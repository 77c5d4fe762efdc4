package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/dmitrijs2005/authgate/internal/flagx"
	"github.com/dmitrijs2005/authgate/internal/timex"
)

// fileConfig is the on-disk shape. Pointer fields distinguish a missing key
// from an empty value.
type fileConfig struct {
	Storage     *string         `json:"storage" toml:"storage"`
	DataDir     *string         `json:"data_dir" toml:"data_dir"`
	UsersFile   *string         `json:"users_file" toml:"users_file"`
	AuditFile   *string         `json:"audit_file" toml:"audit_file"`
	SQLitePath  *string         `json:"sqlite_path" toml:"sqlite_path"`
	DatabaseDSN *string         `json:"database_dsn" toml:"database_dsn"`
	HashMethod  *string         `json:"hash_method" toml:"hash_method"`
	CodeTTL     *timex.Duration `json:"code_ttl" toml:"code_ttl"`
	PolicyFile  *string         `json:"policy_file" toml:"policy_file"`
	LogLevel    *string         `json:"log_level" toml:"log_level"`
}

// parseFile overlays cfg with the file named by -c/-config in args. It is a
// no-op when no file is given and panics when the file cannot be read or
// decoded.
func parseFile(cfg *Config, args []string) {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var fc fileConfig
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.Decode(string(data), &fc); err != nil {
			panic(err)
		}
	} else if err := json.Unmarshal(data, &fc); err != nil {
		panic(err)
	}

	fc.apply(cfg)
}

func (fc *fileConfig) apply(cfg *Config) {
	setString(&cfg.Storage, fc.Storage)
	setString(&cfg.DataDir, fc.DataDir)
	setString(&cfg.UsersFile, fc.UsersFile)
	setString(&cfg.AuditFile, fc.AuditFile)
	setString(&cfg.SQLitePath, fc.SQLitePath)
	setString(&cfg.DatabaseDSN, fc.DatabaseDSN)
	setString(&cfg.HashMethod, fc.HashMethod)
	setString(&cfg.PolicyFile, fc.PolicyFile)
	setString(&cfg.LogLevel, fc.LogLevel)
	if fc.CodeTTL != nil {
		cfg.CodeTTL = fc.CodeTTL.Duration
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
