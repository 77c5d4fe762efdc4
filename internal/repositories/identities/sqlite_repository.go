package identities

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/authgate/internal/dbx"
	"github.com/dmitrijs2005/authgate/internal/models"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) List(ctx context.Context) ([]models.Identity, error) {
	return listIdentities(ctx, r.db, `SELECT username, digest, role FROM identities ORDER BY position`)
}

func (r *SQLiteRepository) ReplaceAll(ctx context.Context, ids []models.Identity) error {
	return replaceIdentities(ctx, r.db, ids,
		`INSERT INTO identities (position, username, digest, role) VALUES (?, ?, ?, ?)`)
}

// listIdentities and replaceIdentities hold the statement flow shared by the
// SQL backends; only the placeholder syntax differs between dialects.
func listIdentities(ctx context.Context, db dbx.DBTX, query string) ([]models.Identity, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list identities: %w", err)
	}
	defer rows.Close()

	ids := make([]models.Identity, 0)
	for rows.Next() {
		var id models.Identity
		var role string
		if err := rows.Scan(&id.Username, &id.Digest, &role); err != nil {
			return nil, fmt.Errorf("failed to scan identity row: %w", err)
		}
		if id.Role, err = models.ParseRole(role); err != nil {
			return nil, fmt.Errorf("identity %s: %w", id.Username, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate identity rows: %w", err)
	}
	return ids, nil
}

func replaceIdentities(ctx context.Context, db *sql.DB, ids []models.Identity, insert string) error {
	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM identities`); err != nil {
			return err
		}
		for i, id := range ids {
			if _, err := tx.ExecContext(ctx, insert, i, id.Username, id.Digest, string(id.Role)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to replace identities: %w", err)
	}
	return nil
}
