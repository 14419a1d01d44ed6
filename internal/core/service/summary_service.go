package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/datawolt/datawolt/internal/core/aggregate"
	"github.com/datawolt/datawolt/internal/core/domain"
	"github.com/datawolt/datawolt/internal/core/ports"
)

// SummaryService implements ports.SummaryService with a full scan of the
// snapshot collection, optionally fronted by a cache.
type SummaryService struct {
	repo   ports.SnapshotRepository
	cache  ports.SummaryCache
	policy aggregate.SummaryPolicy
	now    func() time.Time
	log    zerolog.Logger
}

// NewSummaryService returns a SummaryService. cache may be nil.
func NewSummaryService(repo ports.SnapshotRepository, cache ports.SummaryCache, policy aggregate.SummaryPolicy, log zerolog.Logger) *SummaryService {
	return &SummaryService{repo: repo, cache: cache, policy: policy, now: time.Now, log: log}
}

// Summary returns the cached report when present, otherwise recomputes it.
func (s *SummaryService) Summary(ctx context.Context) (*aggregate.Summary, error) {
	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx)
		switch {
		case err != nil:
			s.log.Warn().Err(err).Msg("summary cache read failed, recomputing")
		case ok:
			return cached, nil
		}
	}

	b := aggregate.NewSummaryBuilder(s.policy)
	users := 0
	err := EachSnapshot(ctx, s.repo, func(snap *domain.UserSnapshot) error {
		b.Add(snap)
		users++
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan snapshots: %w", err)
	}

	summary := b.Result(s.now())
	s.log.Info().Int("users", users).Int("dishes", len(summary.Dishes)).Msg("summary computed")

	if s.cache != nil {
		if err := s.cache.Set(ctx, summary); err != nil {
			s.log.Warn().Err(err).Msg("summary cache write failed")
		}
	}
	return summary, nil
}
