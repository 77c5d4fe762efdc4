package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/authgate/internal/common"
	"github.com/dmitrijs2005/authgate/internal/logging"
	"github.com/dmitrijs2005/authgate/internal/models"
	"github.com/dmitrijs2005/authgate/internal/repositories/auditlog"
)

// AuditLog records security events. Appends are best-effort: a storage
// failure is logged and swallowed so it never fails the operation being
// described. AuditLog performs no access control of its own.
type AuditLog struct {
	repo   auditlog.Repository
	logger logging.Logger
	now    func() time.Time
}

func NewAuditLog(repo auditlog.Repository, logger logging.Logger) *AuditLog {
	return &AuditLog{repo: repo, logger: logger, now: time.Now}
}

// Append records msg with the current time.
func (a *AuditLog) Append(ctx context.Context, msg string) {
	e := models.AuditEntry{Timestamp: a.now(), Message: msg}
	if err := a.repo.Append(ctx, e); err != nil {
		a.logger.Warn(ctx, "audit append failed", "message", msg, "error", err)
	}
}

// Appendf is Append with fmt.Sprintf formatting.
func (a *AuditLog) Appendf(ctx context.Context, format string, args ...any) {
	a.Append(ctx, fmt.Sprintf(format, args...))
}

// ReadAll returns the full trail in append order.
func (a *AuditLog) ReadAll(ctx context.Context) ([]models.AuditEntry, error) {
	entries, err := a.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrStorageUnavailable, err)
	}
	return entries, nil
}
