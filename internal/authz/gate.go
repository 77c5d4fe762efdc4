// Package authz decides whether the current session may run a protected
// operation. Login state is checked first; the role check is delegated to a
// casbin enforcer so the role/permission table can be replaced by a policy
// file without code changes.
//
// The gate never writes audit entries. Recording decisions is the caller's
// job, which keeps access control from ever suppressing the audit trail.
package authz

import (
	_ "embed"
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	fileadapter "github.com/casbin/casbin/v2/persist/file-adapter"
	"github.com/dmitrijs2005/authgate/internal/common"
	"github.com/dmitrijs2005/authgate/internal/models"
)

//go:embed model.conf
var modelText string

const (
	objResource = "resource"
	objAuditLog = "audit-log"
	actView     = "view"
	actModify   = "modify"
)

// defaultPolicy grants view to every user and the admin-only operations to
// admins; admins inherit the user permissions.
var defaultPolicy = [][]string{
	{string(models.RoleUser), objResource, actView},
	{string(models.RoleAdmin), objResource, actModify},
	{string(models.RoleAdmin), objAuditLog, actView},
}

var defaultGrouping = [][]string{
	{string(models.RoleAdmin), string(models.RoleUser)},
}

// Decision is the outcome of an authorization check. Reason is nil when
// Allowed and one of common.ErrNotLoggedIn, common.ErrInsufficientRole or
// common.ErrInvalidInput otherwise.
type Decision struct {
	Allowed bool
	Reason  error
}

func Allow() Decision { return Decision{Allowed: true} }

func Deny(reason error) Decision { return Decision{Reason: reason} }

// Err returns nil for an allowed decision and the denial reason otherwise.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return d.Reason
}

type Gate struct {
	enforcer *casbin.Enforcer
}

// NewGate builds a gate with the built-in policy, or with the policy CSV at
// policyFile when it is not empty.
func NewGate(policyFile string) (*Gate, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, fmt.Errorf("authz model: %w", err)
	}

	if policyFile != "" {
		e, err := casbin.NewEnforcer(m, fileadapter.NewAdapter(policyFile))
		if err != nil {
			return nil, fmt.Errorf("authz policy %s: %w", policyFile, err)
		}
		return &Gate{enforcer: e}, nil
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("authz enforcer: %w", err)
	}
	if _, err := e.AddPolicies(defaultPolicy); err != nil {
		return nil, fmt.Errorf("authz policy: %w", err)
	}
	if _, err := e.AddGroupingPolicies(defaultGrouping); err != nil {
		return nil, fmt.Errorf("authz grouping: %w", err)
	}
	return &Gate{enforcer: e}, nil
}

// Authorize decides op for session s. A nil or anonymous session is always
// denied with common.ErrNotLoggedIn.
func (g *Gate) Authorize(s *models.Session, op models.Operation) Decision {
	if !s.Authenticated() {
		return Deny(common.ErrNotLoggedIn)
	}

	obj, act, ok := target(op)
	if !ok {
		return Deny(fmt.Errorf("%w: unknown operation %q", common.ErrInvalidInput, op))
	}

	allowed, err := g.enforcer.Enforce(string(s.Identity.Role), obj, act)
	if err != nil {
		return Deny(fmt.Errorf("%w: %v", common.ErrInsufficientRole, err))
	}
	if !allowed {
		return Deny(common.ErrInsufficientRole)
	}
	return Allow()
}

func target(op models.Operation) (obj, act string, ok bool) {
	switch op {
	case models.OpViewResource:
		return objResource, actView, true
	case models.OpModifyResource:
		return objResource, actModify, true
	case models.OpViewAuditLog:
		return objAuditLog, actView, true
	}
	return "", "", false
}
