package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/datawolt/datawolt/internal/api/metrics"
	"github.com/datawolt/datawolt/internal/core/domain"
	"github.com/datawolt/datawolt/internal/core/ports"
)

// IngestHandler accepts a platform credential and refreshes the caller's snapshot.
type IngestHandler struct {
	service ports.IngestService
}

func NewIngestHandler(service ports.IngestService) *IngestHandler {
	return &IngestHandler{service: service}
}

type ingestRequest struct {
	Token string `json:"token" validate:"required"`
}

type ingestResponse struct {
	UserID     string `json:"userid"`
	OrderCount int    `json:"order_count"`
	ItemCount  int    `json:"item_count"`
	Partial    bool   `json:"partial"`
	// FailedPage is the zero-based page that stopped a partial run.
	FailedPage *int `json:"failed_page,omitempty"`
}

// Ingest handles POST /ingest.
//
// Only POST is served; preflight requests are answered by the CORS
// middleware and every other method is refused.
//
// @Summary      Ingest the caller's order history
// @Tags         ingest
// @Accept       json
// @Produce      json
// @Param        body  body      ingestRequest  true  "Platform credential"
// @Success      200   {object}  ingestResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /ingest [post]
func (h *IngestHandler) Ingest(c echo.Context) error {
	if c.Request().Method != http.MethodPost {
		return c.JSON(http.StatusForbidden, errorResponse{Error: "method not allowed"})
	}

	var req ingestRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	start := time.Now()
	res, err := h.service.Ingest(c.Request().Context(), req.Token)
	if err != nil {
		if !errors.Is(err, domain.ErrMalformedCredential) {
			metrics.ObserveIngestion(metrics.ResultFailed, 0, 0, 0, time.Since(start).Seconds())
		}
		return err
	}

	result := metrics.ResultComplete
	if res.Partial != nil {
		result = metrics.ResultPartial
	}
	metrics.ObserveIngestion(result, res.Pages, res.OrderCount, res.ItemCount, time.Since(start).Seconds())

	resp := ingestResponse{
		UserID:     res.UserID,
		OrderCount: res.OrderCount,
		ItemCount:  res.ItemCount,
		Partial:    res.Partial != nil,
	}
	if res.Partial != nil {
		page := res.Partial.Page
		resp.FailedPage = &page
	}
	return c.JSON(http.StatusOK, resp)
}
