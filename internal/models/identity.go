// Package models holds the plain data types shared by repositories, services
// and the CLI.
package models

import (
	"fmt"

	"github.com/dmitrijs2005/authgate/internal/common"
)

// Role is the persisted role token of an Identity.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// RoleChoiceAdmin is the menu choice that selects RoleAdmin. Every other
// choice registers a plain user.
const RoleChoiceAdmin = 1

// RoleFromChoice maps the numeric menu choice to a Role.
func RoleFromChoice(choice int) Role {
	if choice == RoleChoiceAdmin {
		return RoleAdmin
	}
	return RoleUser
}

// ParseRole parses a persisted role token. Tokens are case-sensitive.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleUser:
		return Role(s), nil
	}
	return "", fmt.Errorf("%w: %q", common.ErrInvalidRole, s)
}

func (r Role) String() string { return string(r) }

// Identity is a registered user. Identities are immutable once stored.
type Identity struct {
	Username string
	Digest   string
	Role     Role
}
