package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dmitrijs2005/authgate/internal/models"
	"github.com/dmitrijs2005/authgate/internal/otpx"
)

var errDisk = errors.New("disk full")

type fakeIdentityRepo struct {
	ids        []models.Identity
	listErr    error
	replaceErr error
	replaced   int
}

func (f *fakeIdentityRepo) List(context.Context) ([]models.Identity, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]models.Identity, len(f.ids))
	copy(out, f.ids)
	return out, nil
}

func (f *fakeIdentityRepo) ReplaceAll(_ context.Context, ids []models.Identity) error {
	if f.replaceErr != nil {
		return f.replaceErr
	}
	f.replaced++
	f.ids = make([]models.Identity, len(ids))
	copy(f.ids, ids)
	return nil
}

type fakeAuditRepo struct {
	mu        sync.Mutex
	entries   []models.AuditEntry
	appendErr error
	listErr   error
}

func (f *fakeAuditRepo) Append(_ context.Context, e models.AuditEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.appendErr != nil {
		return f.appendErr
	}
	f.entries = append(f.entries, e)
	return nil
}

func (f *fakeAuditRepo) List(context.Context) ([]models.AuditEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]models.AuditEntry, len(f.entries))
	copy(out, f.entries)
	return out, nil
}

func (f *fakeAuditRepo) messages() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.entries))
	for _, e := range f.entries {
		out = append(out, e.Message)
	}
	return out
}

func (f *fakeAuditRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.entries)
}

// fakeCodes issues a fixed sequence of values and counts issues.
type fakeCodes struct {
	value  int
	ttl    time.Duration
	err    error
	issued int
}

func (f *fakeCodes) Issue(username string) (otpx.Code, error) {
	if f.err != nil {
		return otpx.Code{}, f.err
	}
	f.issued++
	now := time.Now()
	c := otpx.Code{Value: f.value, Username: username, IssuedAt: now}
	if f.ttl != 0 {
		c.ExpiresAt = now.Add(f.ttl)
	}
	return c, nil
}

// echo answers the prompt with the issued code.
func echo(_ context.Context, c otpx.Code) (string, error) { return c.String(), nil }

func answer(s string) CodePrompt {
	return func(context.Context, otpx.Code) (string, error) { return s, nil }
}
