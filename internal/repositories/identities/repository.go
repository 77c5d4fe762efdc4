// Package identities persists the registered identities. Every backend keeps
// registration order and replaces its whole content on save, so the durable
// store always equals the caller's in-memory snapshot after a successful
// call.
package identities

import (
	"context"

	"github.com/dmitrijs2005/authgate/internal/models"
)

type Repository interface {
	// List returns all stored identities in registration order. A backend
	// with no persisted state yet returns an empty slice and no error.
	List(ctx context.Context) ([]models.Identity, error)
	// ReplaceAll overwrites the store with ids.
	ReplaceAll(ctx context.Context, ids []models.Identity) error
}
