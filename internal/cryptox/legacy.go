package cryptox

import (
	"crypto/subtle"
	"strconv"
)

const (
	legacyBase    = 131
	legacyModulus = 1_000_000_007
)

// LegacyHasher is the rolling hash used by existing users files:
// h = (h*131 + b) mod 1_000_000_007 over the secret's bytes, rendered in
// decimal. It is deterministic and unsalted and only fit for equality checks
// in a demo; use Argon2Hasher or BcryptHasher for real credentials.
type LegacyHasher struct{}

func (LegacyHasher) Name() string { return HasherLegacy }

func (LegacyHasher) Hash(secret string) (string, error) {
	return LegacyDigest(secret), nil
}

func (LegacyHasher) Verify(secret, digest string) bool {
	return subtle.ConstantTimeCompare([]byte(LegacyDigest(secret)), []byte(digest)) == 1
}

// LegacyDigest computes the rolling hash of secret.
func LegacyDigest(secret string) string {
	var h uint64
	for i := 0; i < len(secret); i++ {
		h = (h*legacyBase + uint64(secret[i])) % legacyModulus
	}
	return strconv.FormatUint(h, 10)
}
