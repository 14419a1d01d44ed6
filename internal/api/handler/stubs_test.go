package handler

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/datawolt/datawolt/internal/core/aggregate"
	"github.com/datawolt/datawolt/internal/core/ports"
)

type stubIngestService struct {
	ingestFn func(ctx context.Context, token string) (*ports.IngestResult, error)
	calls    int
}

func (s *stubIngestService) Ingest(ctx context.Context, token string) (*ports.IngestResult, error) {
	s.calls++
	return s.ingestFn(ctx, token)
}

type stubDashboardService struct {
	dashboardFn func(ctx context.Context, userID string) (*ports.Dashboard, error)
	calls       int
}

func (s *stubDashboardService) Dashboard(ctx context.Context, userID string) (*ports.Dashboard, error) {
	s.calls++
	return s.dashboardFn(ctx, userID)
}

type stubSummaryService struct {
	summaryFn func(ctx context.Context) (*aggregate.Summary, error)
}

func (s *stubSummaryService) Summary(ctx context.Context) (*aggregate.Summary, error) {
	return s.summaryFn(ctx)
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func newJSONContext(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func requireHTTPError(t *testing.T, err error, code int) {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %T (%v)", err, err)
	}
	if he.Code != code {
		t.Fatalf("expected %d, got %d (%v)", code, he.Code, he.Message)
	}
}

