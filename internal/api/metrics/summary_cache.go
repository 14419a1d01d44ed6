package metrics

import (
	"context"

	"github.com/datawolt/datawolt/internal/core/aggregate"
	"github.com/datawolt/datawolt/internal/core/ports"
)

// InstrumentSummaryCache wraps cache so every lookup is counted by
// SummaryCacheTotal. Read errors count as misses.
func InstrumentSummaryCache(cache ports.SummaryCache) ports.SummaryCache {
	return &countingCache{next: cache}
}

type countingCache struct {
	next ports.SummaryCache
}

func (c *countingCache) Get(ctx context.Context) (*aggregate.Summary, bool, error) {
	s, ok, err := c.next.Get(ctx)
	if ok {
		SummaryCacheTotal.WithLabelValues("hit").Inc()
	} else {
		SummaryCacheTotal.WithLabelValues("miss").Inc()
	}
	return s, ok, err
}

func (c *countingCache) Set(ctx context.Context, s *aggregate.Summary) error {
	return c.next.Set(ctx, s)
}

func (c *countingCache) Invalidate(ctx context.Context) error {
	return c.next.Invalidate(ctx)
}
