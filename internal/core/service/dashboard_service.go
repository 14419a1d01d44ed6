package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/datawolt/datawolt/internal/core/aggregate"
	"github.com/datawolt/datawolt/internal/core/domain"
	"github.com/datawolt/datawolt/internal/core/ports"
)

// DashboardService implements ports.DashboardService.
type DashboardService struct {
	repo ports.SnapshotRepository
	log  zerolog.Logger
}

func NewDashboardService(repo ports.SnapshotRepository, log zerolog.Logger) *DashboardService {
	return &DashboardService{repo: repo, log: log}
}

// Dashboard validates the id, loads the snapshot and builds its view.
func (s *DashboardService) Dashboard(ctx context.Context, userID string) (*ports.Dashboard, error) {
	if !domain.ValidPseudonymousID(userID) {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidUserID, userID)
	}

	snap, err := LoadSnapshot(ctx, s.repo, userID)
	if err != nil {
		return nil, err
	}

	s.log.Debug().Str("userid", userID).Int("orders", len(snap.Orders)).Msg("dashboard built")

	return &ports.Dashboard{
		UserID:    snap.UserID,
		UpdatedAt: snap.UpdatedAt,
		View:      aggregate.Build(snap),
	}, nil
}
