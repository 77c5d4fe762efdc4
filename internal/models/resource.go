package models

import "time"

// Operation names a protected operation checked by the authorization gate.
type Operation string

const (
	OpViewResource   Operation = "view-resource"
	OpModifyResource Operation = "modify-resource"
	OpViewAuditLog   Operation = "view-audit-log"
)

// Resource is the protected system resource guarded by the gate.
type Resource struct {
	Name       string
	Revision   int
	ModifiedBy string
	ModifiedAt time.Time
}
