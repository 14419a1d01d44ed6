package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/datawolt/datawolt/internal/core/domain"
	"github.com/datawolt/datawolt/internal/core/ports"
)

func TestIngestHandler_Success(t *testing.T) {
	e := newEcho()
	stub := &stubIngestService{
		ingestFn: func(_ context.Context, token string) (*ports.IngestResult, error) {
			if token != "tok" {
				t.Fatalf("unexpected token %q", token)
			}
			return &ports.IngestResult{UserID: "6ca13d52ca70c883e0f0bb101e425a89", OrderCount: 3, ItemCount: 5, Pages: 2}, nil
		},
	}
	h := NewIngestHandler(stub)

	c, rec := newJSONContext(e, http.MethodPost, "/ingest", `{"token":"tok"}`)
	if err := h.Ingest(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["userid"] != "6ca13d52ca70c883e0f0bb101e425a89" || resp["order_count"] != float64(3) || resp["partial"] != false {
		t.Errorf("unexpected response: %v", resp)
	}
	if _, ok := resp["failed_page"]; ok {
		t.Errorf("failed_page must be omitted on complete runs")
	}
}

func TestIngestHandler_Partial(t *testing.T) {
	e := newEcho()
	stub := &stubIngestService{
		ingestFn: func(context.Context, string) (*ports.IngestResult, error) {
			return &ports.IngestResult{
				UserID:     "abc",
				OrderCount: 100,
				Pages:      1,
				Partial:    &domain.PartialIngestionError{Page: 1, Retrieved: 100, Cause: errors.New("503")},
			}, nil
		},
	}
	h := NewIngestHandler(stub)

	c, rec := newJSONContext(e, http.MethodPost, "/ingest", `{"token":"tok"}`)
	if err := h.Ingest(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if rec.Code != http.StatusOK || resp["partial"] != true || resp["failed_page"] != float64(1) {
		t.Errorf("unexpected partial response %d: %v", rec.Code, resp)
	}
}

func TestIngestHandler_MissingToken(t *testing.T) {
	e := newEcho()
	stub := &stubIngestService{}
	h := NewIngestHandler(stub)

	for _, body := range []string{`{}`, `{"token":""}`} {
		c, _ := newJSONContext(e, http.MethodPost, "/ingest", body)
		requireHTTPError(t, h.Ingest(c), http.StatusBadRequest)
	}
	if stub.calls != 0 {
		t.Errorf("service must not be called without a token")
	}
}

func TestIngestHandler_BadJSON(t *testing.T) {
	e := newEcho()
	h := NewIngestHandler(&stubIngestService{})

	c, _ := newJSONContext(e, http.MethodPost, "/ingest", `{"token":`)
	requireHTTPError(t, h.Ingest(c), http.StatusBadRequest)
}

func TestIngestHandler_NonPostIsForbidden(t *testing.T) {
	e := newEcho()
	stub := &stubIngestService{}
	h := NewIngestHandler(stub)

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		c, rec := newJSONContext(e, method, "/ingest", "")
		if err := h.Ingest(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != http.StatusForbidden {
			t.Errorf("%s: expected 403, got %d", method, rec.Code)
		}
	}
	if stub.calls != 0 {
		t.Errorf("service must not be called")
	}
}

func TestIngestHandler_ServiceErrorsPropagate(t *testing.T) {
	e := newEcho()
	for _, want := range []error{
		domain.ErrMalformedCredential,
		&domain.PartialIngestionError{Page: 0, Cause: errors.New("401")},
	} {
		stub := &stubIngestService{
			ingestFn: func(context.Context, string) (*ports.IngestResult, error) { return nil, want },
		}
		c, _ := newJSONContext(e, http.MethodPost, "/ingest", `{"token":"tok"}`)
		if err := NewIngestHandler(stub).Ingest(c); !errors.Is(err, want) {
			t.Errorf("expected %v, got %v", want, err)
		}
	}
}
