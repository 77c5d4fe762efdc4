package cryptox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestLegacyDigest_KnownValues(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "0"},
		{"a", "97"},
		{"ab", "12805"},    // 97*131 + 98
		{"abc", "1677554"}, // 12805*131 + 99
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LegacyDigest(tt.in), "digest(%q)", tt.in)
	}
}

func TestLegacyDigest_WrapsModulus(t *testing.T) {
	long := strings.Repeat("z", 20)
	d := LegacyDigest(long)
	assert.Equal(t, d, LegacyDigest(long), "must be deterministic")
	assert.LessOrEqual(t, len(d), 10)
	assert.NotContains(t, d, "-")
}

func TestLegacyHasher_Verify(t *testing.T) {
	h := LegacyHasher{}
	d, err := h.Hash("secret1")
	require.NoError(t, err)

	assert.True(t, h.Verify("secret1", d))
	assert.False(t, h.Verify("secret2", d))
	assert.False(t, h.Verify("secret1", ""))
}

func TestArgon2Hasher_RoundTrip(t *testing.T) {
	h := &Argon2Hasher{Time: 1, Memory: 8 * 1024, Threads: 1, KeyLen: 32, SaltLen: 16}

	d1, err := h.Hash("secret1")
	require.NoError(t, err)
	d2, err := h.Hash("secret1")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(d1, "$argon2id$v=19$m=8192,t=1,p=1$"), d1)
	assert.NotEqual(t, d1, d2, "salts must differ")
	assert.False(t, strings.ContainsAny(d1, " \t\n"))

	assert.True(t, h.Verify("secret1", d1))
	assert.True(t, h.Verify("secret1", d2))
	assert.False(t, h.Verify("secret2", d1))
}

func TestArgon2Hasher_VerifyRejectsMalformed(t *testing.T) {
	h := NewArgon2Hasher()
	for _, d := range []string{
		"",
		"12805",
		"$argon2i$v=19$m=8,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=18$m=8,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=19$garbage$c2FsdA$a2V5",
		"$argon2id$v=19$m=8,t=1,p=1$!!!$a2V5",
		"$argon2id$v=19$m=8,t=1,p=1$c2FsdA$",
		"$argon2id$v=19$m=8,t=0,p=1$c2FsdA$a2V5a2V5a2V5a2V5a2V5a2V5",
		"$argon2id$v=19$m=8,t=1,p=0$c2FsdA$a2V5a2V5a2V5a2V5a2V5a2V5",
		"$argon2id$v=19$m=4294967295,t=1,p=1$c2FsdA$a2V5a2V5a2V5a2V5a2V5a2V5",
		"$argon2id$v=19$m=8,t=4000000000,p=1$c2FsdA$a2V5a2V5a2V5a2V5a2V5a2V5",
		"$argon2id$v=19$m=8,t=1,p=1$c2FsdA$a2V5",
	} {
		assert.NotPanics(t, func() {
			assert.False(t, h.Verify("x", d), "digest %q", d)
		}, "digest %q", d)
	}
}

func TestBcryptHasher_RoundTrip(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)
	d, err := h.Hash("secret1")
	require.NoError(t, err)

	assert.True(t, h.Verify("secret1", d))
	assert.False(t, h.Verify("other", d))
	assert.False(t, strings.ContainsAny(d, " \t\n"))
}

func TestNewHasher(t *testing.T) {
	for name, want := range map[string]string{
		"":       HasherLegacy,
		"legacy": HasherLegacy,
		"ARGON2": HasherArgon2,
		"bcrypt": HasherBcrypt,
	} {
		h, err := NewHasher(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, h.Name())
	}

	_, err := NewHasher("md5")
	assert.Error(t, err)
}

func TestNewHasher_VerifiesAnyStoredMethod(t *testing.T) {
	legacy := LegacyDigest("secret1")
	argon, err := (&Argon2Hasher{Time: 1, Memory: 8 * 1024, Threads: 1, KeyLen: 32, SaltLen: 16}).Hash("secret1")
	require.NoError(t, err)
	bc, err := NewBcryptHasher(bcrypt.MinCost).Hash("secret1")
	require.NoError(t, err)

	for _, method := range []string{HasherLegacy, HasherArgon2, HasherBcrypt} {
		h, err := NewHasher(method)
		require.NoError(t, err)

		for _, d := range []string{legacy, argon, bc} {
			assert.True(t, h.Verify("secret1", d), "%s verifying %q", method, d)
			assert.False(t, h.Verify("wrong", d), "%s verifying %q", method, d)
		}
	}
}

func TestNewHasher_HashesWithConfiguredMethod(t *testing.T) {
	h, err := NewHasher(HasherBcrypt)
	require.NoError(t, err)
	d, err := h.Hash("secret1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(d, "$2a$"))
}
