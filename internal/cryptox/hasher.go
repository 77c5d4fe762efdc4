// Package cryptox provides the digest functions used to store and check
// passwords. All implementations produce whitespace-free strings so a digest
// can live in the whitespace-separated users file.
package cryptox

import (
	"fmt"
	"strings"
)

// Hasher turns a plaintext secret into a stored digest and checks a secret
// against one. Digests are never inverted.
type Hasher interface {
	// Name is the configuration token selecting this hasher.
	Name() string
	Hash(secret string) (string, error)
	Verify(secret, digest string) bool
}

const (
	HasherLegacy = "legacy"
	HasherArgon2 = "argon2"
	HasherBcrypt = "bcrypt"
)

// NewHasher returns a hasher that creates new digests with the method
// registered under name and verifies any stored digest with the method its
// prefix identifies, so switching methods keeps existing accounts usable.
func NewHasher(name string) (Hasher, error) {
	var primary Hasher
	switch strings.ToLower(name) {
	case "", HasherLegacy:
		primary = LegacyHasher{}
	case HasherArgon2:
		primary = NewArgon2Hasher()
	case HasherBcrypt:
		primary = NewBcryptHasher(0)
	default:
		return nil, fmt.Errorf("unknown hash method %q", name)
	}
	return &detectingHasher{Hasher: primary}, nil
}

type detectingHasher struct {
	Hasher
}

func (h *detectingHasher) Verify(secret, digest string) bool {
	return verifierFor(digest).Verify(secret, digest)
}

// verifierFor picks the hasher that produced digest.
func verifierFor(digest string) Hasher {
	switch {
	case strings.HasPrefix(digest, "$argon2id$"):
		return NewArgon2Hasher()
	case strings.HasPrefix(digest, "$2a$"), strings.HasPrefix(digest, "$2b$"), strings.HasPrefix(digest, "$2y$"):
		return NewBcryptHasher(0)
	}
	return LegacyHasher{}
}
