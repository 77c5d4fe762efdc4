package models

import "time"

// AuditTimeLayout is the human-readable timestamp written in front of every
// audit line.
const AuditTimeLayout = time.ANSIC

// AuditEntry is one line of the append-only audit trail.
type AuditEntry struct {
	Timestamp time.Time
	Message   string
}

// String renders the entry in its persisted form: "<timestamp> : <message>".
func (e AuditEntry) String() string {
	return e.Timestamp.Format(AuditTimeLayout) + " : " + e.Message
}
