// Package otpx issues the numeric one-time codes used as the second login
// factor. A code is bound to one username and one login attempt; callers
// discard it after a single comparison.
package otpx

import (
	"crypto/subtle"
	"encoding/base32"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/authgate/internal/common"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/hotp"
)

const (
	// MinCode and MaxCode bound every issued code (inclusive).
	MinCode = 1000
	MaxCode = 9999

	secretSize = 20
)

// Code is a single-use challenge issued for one login attempt.
type Code struct {
	Value     int
	Username  string
	IssuedAt  time.Time
	ExpiresAt time.Time // zero means the code never expires
}

// String renders the code as the user must type it.
func (c Code) String() string { return strconv.Itoa(c.Value) }

// Check compares the submitted text against the code. Surrounding whitespace
// is ignored. An expired code yields common.ErrOneTimeCodeExpired even when
// the digits match.
func (c Code) Check(submitted string, now time.Time) error {
	if !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt) {
		return common.ErrOneTimeCodeExpired
	}
	want := []byte(c.String())
	got := []byte(strings.TrimSpace(submitted))
	if subtle.ConstantTimeCompare(want, got) != 1 {
		return common.ErrWrongOneTimeCode
	}
	return nil
}

// Generator issues one-time codes.
type Generator interface {
	Issue(username string) (Code, error)
}

// HOTPGenerator derives codes from an HMAC-based OTP over a random
// per-process secret and a counter that advances on every issue, then folds
// the six-digit value into [MinCode, MaxCode].
type HOTPGenerator struct {
	mu      sync.Mutex
	secret  string
	counter uint64
	ttl     time.Duration
	now     func() time.Time
}

// NewHOTPGenerator creates a generator with a fresh random secret. A zero
// ttl issues codes that never expire.
func NewHOTPGenerator(ttl time.Duration) *HOTPGenerator {
	secret := base32.StdEncoding.WithPadding(base32.NoPadding).
		EncodeToString(common.GenerateRandByteArray(secretSize))
	return &HOTPGenerator{secret: secret, ttl: ttl, now: time.Now}
}

func (g *HOTPGenerator) Issue(username string) (Code, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.counter++
	raw, err := hotp.GenerateCodeCustom(g.secret, g.counter, hotp.ValidateOpts{
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	if err != nil {
		return Code{}, fmt.Errorf("generate code: %w", err)
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return Code{}, fmt.Errorf("generate code: %w", err)
	}

	now := g.now()
	c := Code{
		Value:    MinCode + n%(MaxCode-MinCode+1),
		Username: username,
		IssuedAt: now,
	}
	if g.ttl > 0 {
		c.ExpiresAt = now.Add(g.ttl)
	}
	return c, nil
}
