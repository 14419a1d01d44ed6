package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/datawolt/datawolt/internal/core/domain"
	"github.com/datawolt/datawolt/internal/core/ports"
)

// PageSize is the number of orders requested per page.
const PageSize = 100

// Fallback venue position when the remote order has no coordinates.
const (
	defaultLongitude = 32
	defaultLatitude  = 34
)

const coordinatePlaces = 10

// Harvest is the normalized output of one pagination run, before commit.
type Harvest struct {
	UserID  string
	Orders  []domain.OrderRecord
	Items   []domain.ItemRecord
	Pages   int
	Partial *domain.PartialIngestionError
}

// IngestService implements ports.IngestService.
type IngestService struct {
	source ports.OrderHistorySource
	repo   ports.SnapshotRepository
	cache  ports.SummaryCache
	now    func() time.Time
	log    zerolog.Logger
}

// IngestOption customizes an IngestService.
type IngestOption func(*IngestService)

// WithClock overrides the time source used for the window cutoff.
func WithClock(now func() time.Time) IngestOption {
	return func(s *IngestService) { s.now = now }
}

// WithSummaryCache invalidates cache after every successful commit.
func WithSummaryCache(cache ports.SummaryCache) IngestOption {
	return func(s *IngestService) { s.cache = cache }
}

func NewIngestService(source ports.OrderHistorySource, repo ports.SnapshotRepository, log zerolog.Logger, opts ...IngestOption) *IngestService {
	s := &IngestService{source: source, repo: repo, now: time.Now, log: log}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ingest parses the credential, collects the trailing window of delivered
// orders and replaces the user's snapshot with it.
//
// A page failure after the first page commits what was gathered and reports
// it through IngestResult.Partial. A failure on the first page commits nothing
// and is returned as a *domain.PartialIngestionError, so an expired token
// cannot wipe an existing snapshot.
func (s *IngestService) Ingest(ctx context.Context, token string) (*ports.IngestResult, error) {
	cred, err := ParseCredential(token)
	if err != nil {
		return nil, err
	}

	log := s.log.With().
		Str("run_id", uuid.NewString()).
		Str("userid", cred.PseudonymousID()).
		Logger()

	h := s.Collect(ctx, cred, log)
	if h.Partial != nil && h.Partial.Page == 0 {
		return nil, h.Partial
	}

	if err := s.Commit(ctx, h); err != nil {
		log.Error().Err(err).Msg("snapshot commit failed")
		return nil, err
	}

	log.Info().
		Int("orders", len(h.Orders)).
		Int("items", len(h.Items)).
		Int("pages", h.Pages).
		Bool("partial", h.Partial != nil).
		Msg("snapshot committed")

	return &ports.IngestResult{
		UserID:     h.UserID,
		OrderCount: len(h.Orders),
		ItemCount:  len(h.Items),
		Pages:      h.Pages,
		Partial:    h.Partial,
	}, nil
}

// Collect pages through the remote history until it is empty, exhausted or
// failing. Every page is scanned in full: a stale order is skipped, never
// treated as the end of the page. Pagination ends after a page whose
// delivered orders were all older than the cutoff, which relies on the
// source returning newest orders first.
func (s *IngestService) Collect(ctx context.Context, cred domain.Credential, log zerolog.Logger) *Harvest {
	cutoff := WindowStart(s.now())
	h := &Harvest{
		UserID: cred.PseudonymousID(),
		Orders: make([]domain.OrderRecord, 0),
		Items:  make([]domain.ItemRecord, 0),
	}

	for page, skip := 0, 0; ; page, skip = page+1, skip+PageSize {
		batch, err := s.source.FetchPage(ctx, cred.Token, PageSize, skip)
		if err != nil {
			h.Partial = &domain.PartialIngestionError{Page: page, Retrieved: len(h.Orders), Cause: err}
			log.Warn().Err(err).Int("page", page).Int("orders", len(h.Orders)).Msg("order page failed, stopping pagination")
			return h
		}
		h.Pages++

		if len(batch) == 0 {
			return h
		}

		retained, stale := 0, 0
		for _, ro := range batch {
			if ro.Status != domain.StatusDelivered {
				continue
			}
			if ro.DeliveryTime.Date < cutoff {
				stale++
				continue
			}
			order, items := normalizeOrder(ro)
			h.Orders = append(h.Orders, order)
			h.Items = append(h.Items, items...)
			retained++
		}

		log.Debug().Int("page", page).Int("retained", retained).Int("stale", stale).Msg("order page scanned")

		if retained == 0 && stale > 0 {
			return h
		}
	}
}

// Commit replaces the stored snapshot with the harvest and drops the cached
// summary. Cache failures are logged, not returned.
func (s *IngestService) Commit(ctx context.Context, h *Harvest) error {
	snap := &domain.UserSnapshot{
		UserID:    h.UserID,
		Orders:    h.Orders,
		Items:     h.Items,
		UpdatedAt: s.now().UTC(),
	}
	if err := s.repo.Replace(ctx, snap); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.log.Warn().Err(err).Msg("failed to invalidate summary cache")
		}
	}
	return nil
}

// WindowStart returns the first instant of the current month one year ago,
// in now's location, as epoch milliseconds.
func WindowStart(now time.Time) int64 {
	return time.Date(now.Year()-1, now.Month(), 1, 0, 0, 0, 0, now.Location()).UnixMilli()
}

func normalizeOrder(ro ports.RemoteOrder) (domain.OrderRecord, []domain.ItemRecord) {
	price := minorToMajor(ro.TotalPriceShare)
	if !price.IsPositive() {
		price = minorToMajor(ro.TotalPrice)
	}

	lon, lat := float64(defaultLongitude), float64(defaultLatitude)
	if len(ro.VenueCoordinates) >= 2 {
		lon, lat = ro.VenueCoordinates[0], ro.VenueCoordinates[1]
	}

	fixed := domain.FixVenueName(ro.VenueName)
	order := domain.OrderRecord{
		OrderID:        ro.OrderID,
		TotalPrice:     price.InexactFloat64(),
		Currency:       ro.Currency,
		Latitude:       decimal.NewFromFloat(lat).Round(coordinatePlaces).InexactFloat64(),
		Longitude:      decimal.NewFromFloat(lon).Round(coordinatePlaces).InexactFloat64(),
		VenueName:      ro.VenueName,
		VenueNameFixed: fixed,
		VenueTimezone:  ro.VenueTimezone,
		DeliveryTime:   ro.DeliveryTime.Date,
		YearMonth:      time.UnixMilli(ro.DeliveryTime.Date).UTC().Format("2006-01"),
	}

	items := make([]domain.ItemRecord, 0, len(ro.Items))
	for _, it := range ro.Items {
		items = append(items, domain.ItemRecord{
			OrderID:        ro.OrderID,
			ItemID:         it.ID,
			Name:           it.Name,
			Price:          minorToMajor(it.EndAmount).InexactFloat64(),
			Currency:       ro.Currency,
			VenueNameFixed: fixed,
			Count:          it.Count,
		})
	}

	return order, items
}

// minorToMajor converts an amount in cents to major currency units.
func minorToMajor(amount float64) decimal.Decimal {
	return decimal.NewFromFloat(amount).Shift(-2)
}
