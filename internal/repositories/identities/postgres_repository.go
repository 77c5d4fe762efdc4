package identities

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/authgate/internal/models"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.Identity, error) {
	return listIdentities(ctx, r.db, `SELECT username, digest, role FROM identities ORDER BY position`)
}

func (r *PostgresRepository) ReplaceAll(ctx context.Context, ids []models.Identity) error {
	return replaceIdentities(ctx, r.db, ids,
		`INSERT INTO identities (position, username, digest, role) VALUES ($1, $2, $3, $4)`)
}
