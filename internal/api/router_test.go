package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/datawolt/datawolt/internal/core/aggregate"
	"github.com/datawolt/datawolt/internal/core/domain"
	"github.com/datawolt/datawolt/internal/core/ports"
	"github.com/datawolt/datawolt/internal/core/service"
)

const origin = "https://wolt.com"

type fakeIngest struct{ calls int }

func (f *fakeIngest) Ingest(context.Context, string) (*ports.IngestResult, error) {
	f.calls++
	return &ports.IngestResult{UserID: "abc", OrderCount: 1}, nil
}

type fakeDashboard struct{}

func (fakeDashboard) Dashboard(_ context.Context, id string) (*ports.Dashboard, error) {
	if !domain.ValidPseudonymousID(id) {
		return nil, domain.ErrInvalidUserID
	}
	return nil, domain.ErrSnapshotNotFound
}

type fakeSummary struct{}

func (fakeSummary) Summary(context.Context) (*aggregate.Summary, error) {
	return &aggregate.Summary{Users: []aggregate.UserTotals{}, Dishes: []aggregate.DishCount{}, TopRestaurants: []aggregate.RestaurantSpend{}}, nil
}

func newTestRouter(secret string) (*echo.Echo, *fakeIngest) {
	ing := &fakeIngest{}
	return NewRouter(Deps{
		Ingest:        ing,
		Dashboard:     fakeDashboard{},
		Summary:       fakeSummary{},
		JWTSecret:     secret,
		TrustedOrigin: origin,
		Log:           zerolog.Nop(),
	}), ing
}

func serve(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRouter_IngestPreflight(t *testing.T) {
	e, ing := newTestRouter("")

	req := httptest.NewRequest(http.MethodOptions, "/ingest", nil)
	req.Header.Set(echo.HeaderOrigin, origin)
	req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodPost)
	rec := serve(e, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if got := rec.Header().Get(echo.HeaderAccessControlAllowOrigin); got != origin {
		t.Errorf("unexpected allow-origin %q", got)
	}
	if got := rec.Header().Get(echo.HeaderAccessControlMaxAge); got != "3600" {
		t.Errorf("unexpected max-age %q", got)
	}
	if ing.calls != 0 {
		t.Errorf("preflight must not ingest")
	}
}

func TestRouter_IngestMethods(t *testing.T) {
	e, ing := newTestRouter("")

	for _, path := range []string{"/", "/ingest"} {
		rec := serve(e, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusForbidden {
			t.Errorf("GET %s: expected 403, got %d", path, rec.Code)
		}

		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(`{"token":"tok"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		req.Header.Set(echo.HeaderOrigin, origin)
		rec = serve(e, req)
		if rec.Code != http.StatusOK {
			t.Errorf("POST %s: expected 200, got %d", path, rec.Code)
		}
		if got := rec.Header().Get(echo.HeaderAccessControlAllowOrigin); got != origin {
			t.Errorf("POST %s: unexpected allow-origin %q", path, got)
		}
	}
	if ing.calls != 2 {
		t.Errorf("expected 2 ingestions, got %d", ing.calls)
	}
}

func TestRouter_DashboardStates(t *testing.T) {
	e, _ := newTestRouter("")

	cases := map[string]int{
		"/v1/dashboard":                  http.StatusOK,
		"/v1/dashboard?userid=ABC":       http.StatusBadRequest,
		"/v1/dashboard?userid=abc123def": http.StatusNotFound,
	}
	for target, code := range cases {
		rec := serve(e, httptest.NewRequest(http.MethodGet, target, nil))
		if rec.Code != code {
			t.Errorf("%s: expected %d, got %d", target, code, rec.Code)
		}
	}

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/v1/dashboard?userid=ABC", nil))
	var body map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body["error"] != "invalid userid: ABC" {
		t.Errorf("unexpected error body %v", body)
	}
}

func TestRouter_SummaryAuth(t *testing.T) {
	e, _ := newTestRouter("s3cret")

	if rec := serve(e, httptest.NewRequest(http.MethodGet, "/v1/summary", nil)); rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", rec.Code)
	}

	tok, err := service.MintOperatorToken("s3cret", "ops", time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodGet, "/v1/summary", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+tok)
	if rec := serve(e, req); rec.Code != http.StatusOK {
		t.Errorf("expected 200 with operator token, got %d", rec.Code)
	}

	open, _ := newTestRouter("")
	if rec := serve(open, httptest.NewRequest(http.MethodGet, "/v1/summary", nil)); rec.Code != http.StatusOK {
		t.Errorf("expected public summary without secret, got %d", rec.Code)
	}
}

func TestRouter_OperationalEndpoints(t *testing.T) {
	e, _ := newTestRouter("")

	for _, path := range []string{"/health", "/health/ready", "/metrics"} {
		if rec := serve(e, httptest.NewRequest(http.MethodGet, path, nil)); rec.Code != http.StatusOK {
			t.Errorf("%s: expected 200, got %d", path, rec.Code)
		}
	}
}
