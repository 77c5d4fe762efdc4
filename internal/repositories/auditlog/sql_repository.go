package auditlog

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/authgate/internal/dbx"
	"github.com/dmitrijs2005/authgate/internal/models"
)

const listQuery = `SELECT created_at, message FROM audit_log ORDER BY id`

// SQLiteRepository and PostgresRepository store timestamps as Unix
// nanoseconds so both dialects share one column type.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Append(ctx context.Context, e models.AuditEntry) error {
	return appendEntry(ctx, r.db, `INSERT INTO audit_log (created_at, message) VALUES (?, ?)`, e)
}

func (r *SQLiteRepository) List(ctx context.Context) ([]models.AuditEntry, error) {
	return listEntries(ctx, r.db)
}

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Append(ctx context.Context, e models.AuditEntry) error {
	return appendEntry(ctx, r.db, `INSERT INTO audit_log (created_at, message) VALUES ($1, $2)`, e)
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.AuditEntry, error) {
	return listEntries(ctx, r.db)
}

func appendEntry(ctx context.Context, db dbx.DBTX, query string, e models.AuditEntry) error {
	if _, err := db.ExecContext(ctx, query, e.Timestamp.UnixNano(), e.Message); err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}
	return nil
}

func listEntries(ctx context.Context, db dbx.DBTX) ([]models.AuditEntry, error) {
	rows, err := db.QueryContext(ctx, listQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	defer rows.Close()

	entries := make([]models.AuditEntry, 0)
	for rows.Next() {
		var nanos int64
		var msg string
		if err := rows.Scan(&nanos, &msg); err != nil {
			return nil, fmt.Errorf("failed to scan audit row: %w", err)
		}
		entries = append(entries, models.AuditEntry{Timestamp: time.Unix(0, nanos), Message: msg})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate audit rows: %w", err)
	}
	return entries, nil
}

var (
	_ Repository = (*SQLiteRepository)(nil)
	_ Repository = (*PostgresRepository)(nil)
	_ Repository = (*FileRepository)(nil)
)
