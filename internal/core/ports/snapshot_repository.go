package ports

import (
	"context"

	"github.com/datawolt/datawolt/internal/core/domain"
)

// SnapshotRepository persists one UserSnapshot document per pseudonymous id.
type SnapshotRepository interface {
	// Replace overwrites the whole document for s.UserID, creating it if needed.
	Replace(ctx context.Context, s *domain.UserSnapshot) error
	// FindByUserID returns domain.ErrSnapshotNotFound when no document exists.
	FindByUserID(ctx context.Context, userID string) (*domain.UserSnapshot, error)
	// Each streams every stored snapshot to fn, stopping at the first error.
	Each(ctx context.Context, fn func(*domain.UserSnapshot) error) error
}
