package metrics

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/datawolt/datawolt/internal/core/aggregate"
)

type memCache struct {
	s *aggregate.Summary
}

func (m *memCache) Get(context.Context) (*aggregate.Summary, bool, error) {
	return m.s, m.s != nil, nil
}

func (m *memCache) Set(_ context.Context, s *aggregate.Summary) error {
	m.s = s
	return nil
}

func (m *memCache) Invalidate(context.Context) error {
	m.s = nil
	return nil
}

func TestInstrumentSummaryCache_CountsHitsAndMisses(t *testing.T) {
	hits := testutil.ToFloat64(SummaryCacheTotal.WithLabelValues("hit"))
	misses := testutil.ToFloat64(SummaryCacheTotal.WithLabelValues("miss"))

	c := InstrumentSummaryCache(&memCache{})
	ctx := context.Background()

	_, _, _ = c.Get(ctx)
	_ = c.Set(ctx, &aggregate.Summary{})
	_, _, _ = c.Get(ctx)
	_, _, _ = c.Get(ctx)
	_ = c.Invalidate(ctx)
	_, _, _ = c.Get(ctx)

	if got := testutil.ToFloat64(SummaryCacheTotal.WithLabelValues("hit")) - hits; got != 2 {
		t.Errorf("expected 2 hits, got %v", got)
	}
	if got := testutil.ToFloat64(SummaryCacheTotal.WithLabelValues("miss")) - misses; got != 2 {
		t.Errorf("expected 2 misses, got %v", got)
	}
}

func TestObserveIngestion(t *testing.T) {
	before := testutil.ToFloat64(IngestionsTotal.WithLabelValues(ResultPartial))
	orders := testutil.ToFloat64(IngestRecordsTotal.WithLabelValues("order"))

	ObserveIngestion(ResultPartial, 2, 150, 400, 1.5)

	if got := testutil.ToFloat64(IngestionsTotal.WithLabelValues(ResultPartial)) - before; got != 1 {
		t.Errorf("expected one partial run, got %v", got)
	}
	if got := testutil.ToFloat64(IngestRecordsTotal.WithLabelValues("order")) - orders; got != 150 {
		t.Errorf("expected 150 orders, got %v", got)
	}
}
