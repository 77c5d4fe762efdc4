// Package repomanager opens one storage backend and hands out the
// repositories living in it.
package repomanager

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/dmitrijs2005/authgate/internal/filex"
	"github.com/dmitrijs2005/authgate/internal/logging"
	"github.com/dmitrijs2005/authgate/internal/repositories/auditlog"
	"github.com/dmitrijs2005/authgate/internal/repositories/identities"
)

const (
	StorageFile     = "file"
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
)

type RepositoryManager interface {
	Identities() identities.Repository
	AuditLog() auditlog.Repository
	Close() error
}

// Options selects and locates the storage backend.
type Options struct {
	Storage    string
	DataDir    string
	UsersFile  string
	AuditFile  string
	SQLitePath string
	DSN        string
}

// Open builds the manager for opts.Storage. Relative file and sqlite paths
// are resolved against opts.DataDir, which is created when missing.
func Open(ctx context.Context, opts Options, logger logging.Logger) (RepositoryManager, error) {
	switch opts.Storage {
	case "", StorageFile:
		dir, err := filex.EnsureDir(opts.DataDir)
		if err != nil {
			return nil, err
		}
		return NewFileManager(inDir(dir, opts.UsersFile), inDir(dir, opts.AuditFile), logger), nil

	case StorageSQLite:
		dir, err := filex.EnsureDir(opts.DataDir)
		if err != nil {
			return nil, err
		}
		return NewSQLiteManager(ctx, inDir(dir, opts.SQLitePath))

	case StoragePostgres:
		return NewPostgresManager(ctx, opts.DSN)
	}
	return nil, fmt.Errorf("unknown storage %q", opts.Storage)
}

func inDir(dir, name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(dir, name)
}
