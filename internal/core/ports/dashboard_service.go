package ports

import (
	"context"
	"time"

	"github.com/datawolt/datawolt/internal/core/aggregate"
)

// Dashboard is the per-user view returned to the presentation layer.
type Dashboard struct {
	UserID    string
	UpdatedAt time.Time
	View      aggregate.View
}

// DashboardService loads one snapshot and computes its aggregates.
type DashboardService interface {
	// Dashboard returns domain.ErrInvalidUserID before any storage access and
	// domain.ErrSnapshotNotFound when there is nothing to show.
	Dashboard(ctx context.Context, userID string) (*Dashboard, error)
}

// SummaryService computes the cross-user report.
type SummaryService interface {
	Summary(ctx context.Context) (*aggregate.Summary, error)
}

// SummaryCache stores the last computed summary. Implementations must treat
// a miss as (nil, false, nil).
type SummaryCache interface {
	Get(ctx context.Context) (*aggregate.Summary, bool, error)
	Set(ctx context.Context, s *aggregate.Summary) error
	Invalidate(ctx context.Context) error
}
