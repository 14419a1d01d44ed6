package service

import (
	"context"
	"errors"

	"github.com/datawolt/datawolt/internal/core/domain"
	"github.com/datawolt/datawolt/internal/core/ports"
)

// LoadSnapshot is the single read path for one user's snapshot. Missing and
// empty snapshots both return domain.ErrSnapshotNotFound; the result is always
// deduplicated.
func LoadSnapshot(ctx context.Context, repo ports.SnapshotRepository, userID string) (*domain.UserSnapshot, error) {
	snap, err := repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return normalizeSnapshot(snap)
}

// EachSnapshot streams every stored snapshot through the same normalization as
// LoadSnapshot. Empty snapshots are skipped.
func EachSnapshot(ctx context.Context, repo ports.SnapshotRepository, fn func(*domain.UserSnapshot) error) error {
	return repo.Each(ctx, func(snap *domain.UserSnapshot) error {
		n, err := normalizeSnapshot(snap)
		if errors.Is(err, domain.ErrSnapshotNotFound) {
			return nil
		}
		return fn(n)
	})
}

func normalizeSnapshot(snap *domain.UserSnapshot) (*domain.UserSnapshot, error) {
	if snap.Empty() {
		return nil, domain.ErrSnapshotNotFound
	}
	return snap.Deduplicated(), nil
}
