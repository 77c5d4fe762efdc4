package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/authgate/internal/migrations"
	"github.com/dmitrijs2005/authgate/internal/repositories/auditlog"
	"github.com/dmitrijs2005/authgate/internal/repositories/identities"
	"github.com/pressly/goose/v3"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// SQLManager serves both repositories from one database/sql pool.
type SQLManager struct {
	db         *sql.DB
	identities identities.Repository
	auditLog   auditlog.Repository
}

func (m *SQLManager) Conn() *sql.DB { return m.db }

func (m *SQLManager) Identities() identities.Repository { return m.identities }

func (m *SQLManager) AuditLog() auditlog.Repository { return m.auditLog }

func (m *SQLManager) Close() error { return m.db.Close() }

// NewSQLiteManager opens (creating if needed) the sqlite database at path and
// migrates it.
func NewSQLiteManager(ctx context.Context, path string) (*SQLManager, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	if err := RunMigrations(ctx, db, "sqlite3", migrations.SQLiteDir); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &SQLManager{
		db:         db,
		identities: identities.NewSQLiteRepository(db),
		auditLog:   auditlog.NewSQLiteRepository(db),
	}, nil
}

// NewPostgresManager connects through pgx and migrates the schema.
func NewPostgresManager(ctx context.Context, dsn string) (*SQLManager, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	if err := RunMigrations(ctx, db, "postgres", migrations.PostgresDir); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &SQLManager{
		db:         db,
		identities: identities.NewPostgresRepository(db),
		auditLog:   auditlog.NewPostgresRepository(db),
	}, nil
}

// RunMigrations applies the embedded migrations in dir using goose.
func RunMigrations(ctx context.Context, db *sql.DB, dialect, dir string) error {
	goose.SetBaseFS(migrations.FS)

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, dir); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	return nil
}
