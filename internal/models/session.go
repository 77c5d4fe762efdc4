package models

import (
	"time"

	"github.com/google/uuid"
)

// Session is the authenticated state of the single active actor. The zero
// value (and a nil *Session) is the anonymous state.
type Session struct {
	ID              uuid.UUID
	Identity        Identity
	AuthenticatedAt time.Time
}

// NewSession starts a session for id.
func NewSession(id Identity, now time.Time) *Session {
	return &Session{ID: uuid.New(), Identity: id, AuthenticatedAt: now}
}

// Authenticated reports whether s represents a logged-in identity.
func (s *Session) Authenticated() bool {
	return s != nil && s.Identity.Username != ""
}
