package services

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/dmitrijs2005/authgate/internal/common"
	"github.com/dmitrijs2005/authgate/internal/logging"
	"github.com/dmitrijs2005/authgate/internal/models"
	"github.com/dmitrijs2005/authgate/internal/repositories/identities"
)

const (
	MaxUsernameLen = 20
	MaxPasswordLen = 20
)

// ValidateUsername enforces 1..MaxUsernameLen bytes without whitespace.
func ValidateUsername(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty", common.ErrInvalidUsername)
	case len(name) > MaxUsernameLen:
		return fmt.Errorf("%w: longer than %d", common.ErrInvalidUsername, MaxUsernameLen)
	case strings.IndexFunc(name, unicode.IsSpace) >= 0:
		return fmt.Errorf("%w: contains whitespace", common.ErrInvalidUsername)
	}
	return nil
}

// ValidatePassword enforces 1..MaxPasswordLen bytes.
func ValidatePassword(pw string) error {
	switch {
	case pw == "":
		return fmt.Errorf("%w: empty", common.ErrInvalidPassword)
	case len(pw) > MaxPasswordLen:
		return fmt.Errorf("%w: longer than %d", common.ErrInvalidPassword, MaxPasswordLen)
	}
	return nil
}

// CredentialStore is the in-memory, ordered set of identities backed by a
// repository. Every successful Register rewrites the repository so the
// durable copy matches memory; a failed write leaves memory unchanged.
type CredentialStore struct {
	repo   identities.Repository
	logger logging.Logger
	ids    []models.Identity
}

func NewCredentialStore(repo identities.Repository, logger logging.Logger) *CredentialStore {
	return &CredentialStore{repo: repo, logger: logger}
}

// Load replaces the in-memory set with the persisted one. Repeated usernames
// keep their first occurrence.
func (s *CredentialStore) Load(ctx context.Context) ([]models.Identity, error) {
	stored, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrStorageUnavailable, err)
	}

	seen := make(map[string]struct{}, len(stored))
	ids := make([]models.Identity, 0, len(stored))
	for _, id := range stored {
		if _, dup := seen[id.Username]; dup {
			s.logger.Warn(ctx, "skipping duplicate identity", "username", id.Username)
			continue
		}
		seen[id.Username] = struct{}{}
		ids = append(ids, id)
	}

	s.ids = ids
	s.logger.Debug(ctx, "identities loaded", "count", len(ids))
	return s.Identities(), nil
}

// FindByUsername is an exact, case-sensitive lookup.
func (s *CredentialStore) FindByUsername(name string) (models.Identity, bool) {
	for _, id := range s.ids {
		if id.Username == name {
			return id, true
		}
	}
	return models.Identity{}, false
}

// Register appends a new identity and persists the whole store.
func (s *CredentialStore) Register(ctx context.Context, username, digest string, role models.Role) (models.Identity, error) {
	if err := ValidateUsername(username); err != nil {
		return models.Identity{}, err
	}
	if _, exists := s.FindByUsername(username); exists {
		return models.Identity{}, common.ErrDuplicateUsername
	}
	if digest == "" || strings.IndexFunc(digest, unicode.IsSpace) >= 0 {
		return models.Identity{}, fmt.Errorf("%w: malformed digest", common.ErrInvalidInput)
	}
	if _, err := models.ParseRole(string(role)); err != nil {
		return models.Identity{}, err
	}

	id := models.Identity{Username: username, Digest: digest, Role: role}
	next := append(s.Identities(), id)

	if err := s.repo.ReplaceAll(ctx, next); err != nil {
		return models.Identity{}, fmt.Errorf("%w: %w", common.ErrStorageUnavailable, err)
	}

	s.ids = next
	return id, nil
}

// Identities returns a copy of the store in registration order.
func (s *CredentialStore) Identities() []models.Identity {
	out := make([]models.Identity, len(s.ids))
	copy(out, s.ids)
	return out
}
