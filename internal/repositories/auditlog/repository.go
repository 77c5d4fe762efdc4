// Package auditlog persists the append-only audit trail.
package auditlog

import (
	"context"

	"github.com/dmitrijs2005/authgate/internal/models"
)

type Repository interface {
	Append(ctx context.Context, e models.AuditEntry) error
	// List returns every entry in append order.
	List(ctx context.Context) ([]models.AuditEntry, error)
}
