package service

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/golang-jwt/jwt/v5"

	"github.com/datawolt/datawolt/internal/core/aggregate"
	"github.com/datawolt/datawolt/internal/core/domain"
	"github.com/datawolt/datawolt/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Remote order source stub
// ---------------------------------------------------------------------------

type fetchCall struct {
	token       string
	limit, skip int
}

// stubSource serves pages by index. Indexes present in errs fail; indexes past
// the end of pages return an empty page.
type stubSource struct {
	pages [][]ports.RemoteOrder
	errs  map[int]error
	calls []fetchCall
}

func (s *stubSource) FetchPage(_ context.Context, token string, limit, skip int) ([]ports.RemoteOrder, error) {
	s.calls = append(s.calls, fetchCall{token: token, limit: limit, skip: skip})
	idx := skip / limit
	if err, ok := s.errs[idx]; ok {
		return nil, err
	}
	if idx >= len(s.pages) {
		return []ports.RemoteOrder{}, nil
	}
	return s.pages[idx], nil
}

// ---------------------------------------------------------------------------
// In-memory snapshot repository
// ---------------------------------------------------------------------------

type stubSnapshotRepo struct {
	docs       map[string]*domain.UserSnapshot
	replaced   []*domain.UserSnapshot
	findCalls  int
	replaceErr error
	findErr    error
}

func newStubSnapshotRepo() *stubSnapshotRepo {
	return &stubSnapshotRepo{docs: make(map[string]*domain.UserSnapshot)}
}

func (r *stubSnapshotRepo) Replace(_ context.Context, s *domain.UserSnapshot) error {
	if r.replaceErr != nil {
		return r.replaceErr
	}
	clone := *s
	r.docs[s.UserID] = &clone
	r.replaced = append(r.replaced, &clone)
	return nil
}

func (r *stubSnapshotRepo) FindByUserID(_ context.Context, userID string) (*domain.UserSnapshot, error) {
	r.findCalls++
	if r.findErr != nil {
		return nil, r.findErr
	}
	s, ok := r.docs[userID]
	if !ok {
		return nil, domain.ErrSnapshotNotFound
	}
	clone := *s
	return &clone, nil
}

// Each visits documents in id order, mirroring a sorted collection scan.
func (r *stubSnapshotRepo) Each(_ context.Context, fn func(*domain.UserSnapshot) error) error {
	if r.findErr != nil {
		return r.findErr
	}
	ids := make([]string, 0, len(r.docs))
	for id := range r.docs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		clone := *r.docs[id]
		if err := fn(&clone); err != nil {
			return err
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Summary cache stub
// ---------------------------------------------------------------------------

type stubCache struct {
	stored      *aggregate.Summary
	getErr      error
	sets        int
	invalidated int
}

func (c *stubCache) Get(_ context.Context) (*aggregate.Summary, bool, error) {
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	if c.stored == nil {
		return nil, false, nil
	}
	return c.stored, true, nil
}

func (c *stubCache) Set(_ context.Context, s *aggregate.Summary) error {
	c.stored = s
	c.sets++
	return nil
}

func (c *stubCache) Invalidate(_ context.Context) error {
	c.stored = nil
	c.invalidated++
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var errUpstream = errors.New("upstream returned 503")

// remoteToken builds a remote-platform style token; the signing key is
// irrelevant because signatures are never verified.
func remoteToken(t *testing.T, remoteUserID string) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user": map[string]any{"id": remoteUserID},
	})
	signed, err := tok.SignedString([]byte("remote-platform-key"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}
