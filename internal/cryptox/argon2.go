package cryptox

import (
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/authgate/internal/common"
	"golang.org/x/crypto/argon2"
)

// Bounds on parameters read back from a stored digest. Anything outside them
// is treated as a non-matching digest rather than handed to argon2.IDKey,
// which panics on zero rounds or threads and allocates memory KiB up front.
const (
	maxArgon2Time    = 16
	maxArgon2Memory  = 1024 * 1024
	minArgon2Memory  = 8
	minArgon2KeyLen  = 16
	maxArgon2KeyLen  = 128
	maxArgon2Threads = 64
)

// Argon2Hasher stores secrets as argon2id digests in the PHC string format:
//
//	$argon2id$v=19$m=65536,t=1,p=4$<salt>$<key>
type Argon2Hasher struct {
	Time    uint32
	Memory  uint32
	Threads uint8
	KeyLen  uint32
	SaltLen int
}

// NewArgon2Hasher returns a hasher with the same parameters the vault uses
// for master key derivation.
func NewArgon2Hasher() *Argon2Hasher {
	return &Argon2Hasher{Time: 1, Memory: 64 * 1024, Threads: 4, KeyLen: 32, SaltLen: 16}
}

func (h *Argon2Hasher) Name() string { return HasherArgon2 }

func (h *Argon2Hasher) Hash(secret string) (string, error) {
	salt := common.GenerateRandByteArray(h.SaltLen)
	key := argon2.IDKey([]byte(secret), salt, h.Time, h.Memory, h.Threads, h.KeyLen)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, h.Memory, h.Time, h.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key)), nil
}

// Verify recomputes the key with the parameters embedded in digest, so
// digests stay valid when the hasher defaults change.
func (h *Argon2Hasher) Verify(secret, digest string) bool {
	parts := strings.Split(digest, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return false
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return false
	}

	var memory, time uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return false
	}
	if time < 1 || time > maxArgon2Time ||
		threads < 1 || threads > maxArgon2Threads ||
		memory < minArgon2Memory*uint32(threads) || memory > maxArgon2Memory {
		return false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) < minArgon2KeyLen || len(key) > maxArgon2KeyLen {
		return false
	}

	candidate := argon2.IDKey([]byte(secret), salt, time, memory, threads, uint32(len(key)))
	defer common.WipeByteArray(candidate)

	return subtle.ConstantTimeCompare(key, candidate) == 1
}
