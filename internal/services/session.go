package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/authgate/internal/common"
	"github.com/dmitrijs2005/authgate/internal/cryptox"
	"github.com/dmitrijs2005/authgate/internal/logging"
	"github.com/dmitrijs2005/authgate/internal/models"
	"github.com/dmitrijs2005/authgate/internal/otpx"
)

// CodePrompt presents an issued one-time code to the user and returns what
// they typed back. A non-nil error aborts the login attempt.
type CodePrompt func(ctx context.Context, code otpx.Code) (string, error)

// SessionManager holds the single active session and runs the login state
// machine: Anonymous -> Authenticated(identity) -> Anonymous.
type SessionManager struct {
	store   *CredentialStore
	hasher  cryptox.Hasher
	codes   otpx.Generator
	audit   *AuditLog
	logger  logging.Logger
	current *models.Session
	now     func() time.Time
}

func NewSessionManager(store *CredentialStore, hasher cryptox.Hasher, codes otpx.Generator, audit *AuditLog, logger logging.Logger) *SessionManager {
	return &SessionManager{
		store:  store,
		hasher: hasher,
		codes:  codes,
		audit:  audit,
		logger: logger,
		now:    time.Now,
	}
}

// Login authenticates username in three ordered steps: identity lookup,
// password check, one-time code. A code is only issued once the password
// matched. Every call appends exactly one audit entry.
func (m *SessionManager) Login(ctx context.Context, username, password string, prompt CodePrompt) (*models.Session, error) {
	if m.current.Authenticated() {
		m.audit.Appendf(ctx, "Login rejected: already logged in as %s - %s", m.current.Identity.Username, username)
		return nil, common.ErrAlreadyLoggedIn
	}

	id, ok := m.store.FindByUsername(username)
	if !ok {
		m.audit.Appendf(ctx, "Login failed: user not found - %s", username)
		return nil, common.ErrUserNotFound
	}

	if !m.hasher.Verify(password, id.Digest) {
		m.audit.Appendf(ctx, "Login failed: wrong password - %s", username)
		return nil, common.ErrWrongPassword
	}

	code, err := m.codes.Issue(username)
	if err != nil {
		m.audit.Appendf(ctx, "Login failed: one-time code unavailable - %s", username)
		m.logger.Error(ctx, "one-time code generation failed", "username", username, "error", err)
		return nil, fmt.Errorf("%w: %w", common.ErrWrongOneTimeCode, err)
	}

	submitted, err := prompt(ctx, code)
	if err != nil {
		m.audit.Appendf(ctx, "Login failed: one-time code entry aborted - %s", username)
		return nil, fmt.Errorf("%w: %w", common.ErrWrongOneTimeCode, err)
	}

	if err := code.Check(submitted, m.now()); err != nil {
		if errors.Is(err, common.ErrOneTimeCodeExpired) {
			m.audit.Appendf(ctx, "Login failed: expired OTP - %s", username)
		} else {
			m.audit.Appendf(ctx, "Login failed: wrong OTP - %s", username)
		}
		return nil, err
	}

	m.current = models.NewSession(id, m.now())
	m.audit.Appendf(ctx, "Login successful: %s", username)
	m.logger.With("session", m.current.ID).Info(ctx, "session started", "username", username, "role", id.Role)

	return m.Current(), nil
}

// Logout ends the active session and returns the identity that left.
func (m *SessionManager) Logout(ctx context.Context) (models.Identity, error) {
	if !m.current.Authenticated() {
		return models.Identity{}, common.ErrNotLoggedIn
	}

	s := m.current
	m.current = nil
	m.audit.Appendf(ctx, "User logged out: %s", s.Identity.Username)
	m.logger.With("session", s.ID).Info(ctx, "session ended", "username", s.Identity.Username)

	return s.Identity, nil
}

// Current returns a copy of the active session, or nil when anonymous.
func (m *SessionManager) Current() *models.Session {
	if !m.current.Authenticated() {
		return nil
	}
	s := *m.current
	return &s
}
