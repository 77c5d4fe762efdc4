package otpx

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/authgate/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHOTPGenerator_IssueRange(t *testing.T) {
	g := NewHOTPGenerator(0)
	seen := make(map[int]struct{})
	for i := 0; i < 500; i++ {
		c, err := g.Issue("alice")
		require.NoError(t, err)
		assert.GreaterOrEqual(t, c.Value, MinCode)
		assert.LessOrEqual(t, c.Value, MaxCode)
		assert.Equal(t, "alice", c.Username)
		assert.True(t, c.ExpiresAt.IsZero())
		seen[c.Value] = struct{}{}
	}
	assert.Greater(t, len(seen), 100, "codes should vary between issues")
}

func TestHOTPGenerator_IndependentSecrets(t *testing.T) {
	a := NewHOTPGenerator(0)
	b := NewHOTPGenerator(0)
	assert.NotEqual(t, a.secret, b.secret)
}

func TestHOTPGenerator_TTL(t *testing.T) {
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	g := NewHOTPGenerator(30 * time.Second)
	g.now = func() time.Time { return base }

	c, err := g.Issue("bob")
	require.NoError(t, err)
	assert.Equal(t, base.Add(30*time.Second), c.ExpiresAt)

	assert.NoError(t, c.Check(c.String(), base.Add(10*time.Second)))
	assert.ErrorIs(t, c.Check(c.String(), base.Add(31*time.Second)), common.ErrOneTimeCodeExpired)
}

func TestCode_Check(t *testing.T) {
	c := Code{Value: 4821}
	now := time.Now()

	assert.NoError(t, c.Check("4821", now))
	assert.NoError(t, c.Check(" 4821\n", now))
	assert.ErrorIs(t, c.Check("4822", now), common.ErrWrongOneTimeCode)
	assert.ErrorIs(t, c.Check("", now), common.ErrWrongOneTimeCode)
	assert.ErrorIs(t, c.Check("04821", now), common.ErrWrongOneTimeCode)
}
