package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/authgate/internal/authz"
	"github.com/dmitrijs2005/authgate/internal/common"
	"github.com/dmitrijs2005/authgate/internal/cryptox"
	"github.com/dmitrijs2005/authgate/internal/logging"
	"github.com/dmitrijs2005/authgate/internal/models"
	"github.com/dmitrijs2005/authgate/internal/otpx"
	"github.com/dmitrijs2005/authgate/internal/repositories/auditlog"
	"github.com/dmitrijs2005/authgate/internal/repositories/identities"
)

// ResourceName names the single protected resource.
const ResourceName = "protected-resource"

// Options wires a Module to its collaborators.
type Options struct {
	Identities identities.Repository
	AuditLog   auditlog.Repository
	Hasher     cryptox.Hasher
	Codes      otpx.Generator
	Gate       *authz.Gate
	Logger     logging.Logger
}

// Module is the caller-facing surface of authgate. It owns the credential
// store, the session and the protected resource, and serializes every
// operation so that checking credentials and changing state happen as one
// step.
type Module struct {
	mu       sync.Mutex
	hasher   cryptox.Hasher
	store    *CredentialStore
	sessions *SessionManager
	gate     *authz.Gate
	audit    *AuditLog
	logger   logging.Logger
	resource models.Resource
	now      func() time.Time
}

// NewModule loads the credential store and returns a Module in the
// anonymous state.
func NewModule(ctx context.Context, opts Options) (*Module, error) {
	if opts.Identities == nil || opts.AuditLog == nil || opts.Hasher == nil || opts.Codes == nil || opts.Gate == nil {
		return nil, fmt.Errorf("%w: incomplete module options", common.ErrInvalidInput)
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	audit := NewAuditLog(opts.AuditLog, logger)
	store := NewCredentialStore(opts.Identities, logger)
	if _, err := store.Load(ctx); err != nil {
		return nil, err
	}

	return &Module{
		hasher:   opts.Hasher,
		store:    store,
		sessions: NewSessionManager(store, opts.Hasher, opts.Codes, audit, logger),
		gate:     opts.Gate,
		audit:    audit,
		logger:   logger,
		resource: models.Resource{Name: ResourceName},
		now:      time.Now,
	}, nil
}

// Register validates the input, digests the password and stores a new
// identity. roleChoice follows the menu numbering: 1 is admin, anything else
// is user.
func (m *Module) Register(ctx context.Context, username, password string, roleChoice int) (models.Identity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := ValidateUsername(username); err != nil {
		return models.Identity{}, err
	}
	if _, exists := m.store.FindByUsername(username); exists {
		return models.Identity{}, common.ErrDuplicateUsername
	}
	if err := ValidatePassword(password); err != nil {
		return models.Identity{}, err
	}

	digest, err := m.hasher.Hash(password)
	if err != nil {
		return models.Identity{}, fmt.Errorf("%w: %w", common.ErrInvalidPassword, err)
	}

	id, err := m.store.Register(ctx, username, digest, models.RoleFromChoice(roleChoice))
	if err != nil {
		if errors.Is(err, common.ErrStorageUnavailable) {
			m.logger.Error(ctx, "registration not persisted", "username", username, "error", err)
		}
		return models.Identity{}, err
	}

	m.audit.Appendf(ctx, "New user registered: %s", username)
	m.logger.Info(ctx, "user registered", "username", username, "role", id.Role, "hasher", m.hasher.Name())
	return id, nil
}

// Login runs the password and one-time code sequence. prompt receives the
// issued code and returns the user's answer.
func (m *Module) Login(ctx context.Context, username, password string, prompt CodePrompt) (*models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.sessions.Login(ctx, username, password, prompt)
}

func (m *Module) Logout(ctx context.Context) (models.Identity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.sessions.Logout(ctx)
}

// CurrentSession returns the active session or nil.
func (m *Module) CurrentSession() *models.Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.sessions.Current()
}

// ViewResource returns the protected resource to any logged-in identity.
func (m *Module) ViewResource(ctx context.Context) (models.Resource, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.authorize(ctx, models.OpViewResource)
	if err != nil {
		return models.Resource{}, err
	}

	m.audit.Appendf(ctx, "Resource viewed by: %s", s.Identity.Username)
	return m.resource, nil
}

// ModifyResource bumps the resource revision. Admin only.
func (m *Module) ModifyResource(ctx context.Context) (models.Resource, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.authorize(ctx, models.OpModifyResource)
	if err != nil {
		return models.Resource{}, err
	}

	m.resource.Revision++
	m.resource.ModifiedBy = s.Identity.Username
	m.resource.ModifiedAt = m.now()

	m.audit.Appendf(ctx, "Resource modified by admin: %s", s.Identity.Username)
	return m.resource, nil
}

// ViewLogs returns the audit trail. Admin only. The view itself is recorded
// after the trail has been read, so it is not part of the returned entries.
func (m *Module) ViewLogs(ctx context.Context) ([]models.AuditEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.authorize(ctx, models.OpViewAuditLog)
	if err != nil {
		return nil, err
	}

	entries, err := m.audit.ReadAll(ctx)
	if err != nil {
		m.audit.Appendf(ctx, "Audit log unavailable for admin: %s", s.Identity.Username)
		return nil, err
	}

	m.audit.Appendf(ctx, "Audit log viewed by admin: %s", s.Identity.Username)
	return entries, nil
}

// Identities returns the registered identities in registration order.
func (m *Module) Identities() []models.Identity {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.store.Identities()
}

// --- helpers below ---

// authorize consults the gate and records a denial. Granted attempts are
// recorded by the caller once the operation has run.
func (m *Module) authorize(ctx context.Context, op models.Operation) (*models.Session, error) {
	s := m.sessions.Current()
	d := m.gate.Authorize(s, op)
	if d.Allowed {
		return s, nil
	}

	label := denialLabel(op)
	switch {
	case s == nil || errors.Is(d.Reason, common.ErrNotLoggedIn):
		m.audit.Appendf(ctx, "Access denied (%s): not logged in", label)
	default:
		m.audit.Appendf(ctx, "Access denied (%s) for: %s", label, s.Identity.Username)
	}
	return nil, d.Err()
}

func denialLabel(op models.Operation) string {
	switch op {
	case models.OpViewResource:
		return "view"
	case models.OpModifyResource:
		return "modify"
	case models.OpViewAuditLog:
		return "logs"
	}
	return string(op)
}
