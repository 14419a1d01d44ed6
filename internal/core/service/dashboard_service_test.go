package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/datawolt/datawolt/internal/core/aggregate"
	"github.com/datawolt/datawolt/internal/core/domain"
)

func TestDashboardService_InvalidUserIDSkipsStorage(t *testing.T) {
	repo := newStubSnapshotRepo()
	svc := NewDashboardService(repo, zerolog.Nop())

	for _, id := range []string{"", "ABC", "../etc", "a b"} {
		_, err := svc.Dashboard(context.Background(), id)
		if !errors.Is(err, domain.ErrInvalidUserID) {
			t.Errorf("id %q: expected ErrInvalidUserID, got %v", id, err)
		}
	}
	if repo.findCalls != 0 {
		t.Errorf("expected no storage lookups, got %d", repo.findCalls)
	}
}

func TestDashboardService_NoData(t *testing.T) {
	repo := newStubSnapshotRepo()
	repo.docs["empty"] = &domain.UserSnapshot{UserID: "empty", Orders: []domain.OrderRecord{}}
	svc := NewDashboardService(repo, zerolog.Nop())

	for _, id := range []string{"missing", "empty"} {
		_, err := svc.Dashboard(context.Background(), id)
		if !errors.Is(err, domain.ErrSnapshotNotFound) {
			t.Errorf("id %q: expected ErrSnapshotNotFound, got %v", id, err)
		}
	}
}

func TestDashboardService_DeduplicatesBeforeAggregating(t *testing.T) {
	updated := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	repo := newStubSnapshotRepo()
	repo.docs["u1"] = &domain.UserSnapshot{
		UserID:    "u1",
		UpdatedAt: updated,
		Orders: []domain.OrderRecord{
			{OrderID: "o1", Currency: "EUR", YearMonth: "2024-01", TotalPrice: 10},
			{OrderID: "o1", Currency: "EUR", YearMonth: "2024-01", TotalPrice: 10},
			{OrderID: "o2", Currency: "EUR", YearMonth: "2024-02", TotalPrice: 30},
		},
		Items: []domain.ItemRecord{
			{ItemID: "i1", Currency: "EUR", Price: 5},
			{ItemID: "i1", Currency: "EUR", Price: 5},
		},
	}
	svc := NewDashboardService(repo, zerolog.Nop())

	d, err := svc.Dashboard(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if d.View.OrderCount != 2 {
		t.Errorf("expected 2 unique orders, got %d", d.View.OrderCount)
	}
	if len(d.View.Totals) != 1 || d.View.Totals[0].Value != 40 {
		t.Errorf("unexpected totals: %+v", d.View.Totals)
	}
	if len(d.View.Everything) != 1 || d.View.Everything[0].Price != 5 {
		t.Errorf("expected deduplicated item spend, got %+v", d.View.Everything)
	}
	want := []aggregate.MonthlyTotal{
		{Currency: "EUR", YearMonth: "2024-01", TotalPrice: 10},
		{Currency: "EUR", YearMonth: "2024-02", TotalPrice: 30},
	}
	if len(d.View.Monthly) != 2 || d.View.Monthly[0] != want[0] || d.View.Monthly[1] != want[1] {
		t.Errorf("unexpected monthly rows: %+v", d.View.Monthly)
	}
	if !d.UpdatedAt.Equal(updated) || d.UserID != "u1" {
		t.Errorf("snapshot metadata not carried over")
	}
}

func TestSummaryService_ReusesDeduplicatedReadPath(t *testing.T) {
	repo := newStubSnapshotRepo()
	repo.docs["a"] = &domain.UserSnapshot{UserID: "a", Orders: []domain.OrderRecord{
		{OrderID: "o1", Currency: "EUR", VenueNameFixed: "A", TotalPrice: 10},
		{OrderID: "o1", Currency: "EUR", VenueNameFixed: "A", TotalPrice: 10},
	}}
	repo.docs["b"] = &domain.UserSnapshot{UserID: "b"}
	svc := NewSummaryService(repo, nil, aggregate.DefaultSummaryPolicy(), zerolog.Nop())

	s, err := svc.Summary(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(s.Users) != 1 {
		t.Fatalf("expected empty snapshot to be skipped, got %d users", len(s.Users))
	}
	if s.Users[0].OrderCount != 1 || s.Users[0].YearlyExpense != 10 {
		t.Errorf("expected duplicate order counted once, got %+v", s.Users[0])
	}
}

func TestSummaryService_CacheHit(t *testing.T) {
	repo := newStubSnapshotRepo()
	repo.findErr = errors.New("must not scan")
	cached := &aggregate.Summary{Users: []aggregate.UserTotals{{OrderCount: 7}}}
	cache := &stubCache{stored: cached}
	svc := NewSummaryService(repo, cache, aggregate.DefaultSummaryPolicy(), zerolog.Nop())

	s, err := svc.Summary(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s != cached {
		t.Errorf("expected cached summary to be returned")
	}
}

func TestSummaryService_CacheMissStoresResult(t *testing.T) {
	repo := newStubSnapshotRepo()
	repo.docs["a"] = &domain.UserSnapshot{UserID: "a", Orders: []domain.OrderRecord{{OrderID: "o1", TotalPrice: 3}}}
	cache := &stubCache{}
	svc := NewSummaryService(repo, cache, aggregate.DefaultSummaryPolicy(), zerolog.Nop())

	if _, err := svc.Summary(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cache.sets != 1 || cache.stored == nil {
		t.Errorf("expected computed summary to be cached")
	}
}

func TestSummaryService_CacheErrorFallsBackToScan(t *testing.T) {
	repo := newStubSnapshotRepo()
	repo.docs["a"] = &domain.UserSnapshot{UserID: "a", Orders: []domain.OrderRecord{{OrderID: "o1", TotalPrice: 3}}}
	cache := &stubCache{getErr: errors.New("redis down")}
	svc := NewSummaryService(repo, cache, aggregate.DefaultSummaryPolicy(), zerolog.Nop())

	s, err := svc.Summary(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.Users) != 1 {
		t.Errorf("expected scan result, got %+v", s)
	}
}

func TestSummaryService_ScanError(t *testing.T) {
	repo := newStubSnapshotRepo()
	repo.findErr = errors.New("cursor failed")
	svc := NewSummaryService(repo, nil, aggregate.DefaultSummaryPolicy(), zerolog.Nop())

	if _, err := svc.Summary(context.Background()); !errors.Is(err, repo.findErr) {
		t.Fatalf("expected wrapped scan error, got %v", err)
	}
}
