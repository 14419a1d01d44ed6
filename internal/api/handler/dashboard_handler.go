package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/datawolt/datawolt/internal/api/metrics"
	"github.com/datawolt/datawolt/internal/core/aggregate"
	"github.com/datawolt/datawolt/internal/core/domain"
	"github.com/datawolt/datawolt/internal/core/ports"
)

// Presentation states of the dashboard.
const (
	StateWelcome   = "welcome"
	StateInvalid   = "invalid"
	StateNoData    = "no_data"
	StateDashboard = "dashboard"
)

const (
	welcomeMessage = "Ingest your order history, then open the dashboard link with your userid."
	noDataMessage  = "No data found for this userid. Run an ingestion first."
)

// DashboardHandler renders the per-user dashboard.
type DashboardHandler struct {
	service ports.DashboardService
}

func NewDashboardHandler(service ports.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

type dashboardQuery struct {
	UserID string `query:"userid" validate:"omitempty,userid"`
}

type stateResponse struct {
	State   string `json:"state"`
	Message string `json:"message"`
}

type dashboardResponse struct {
	State     string         `json:"state"`
	UserID    string         `json:"userid"`
	UpdatedAt time.Time      `json:"updated_at"`
	View      aggregate.View `json:"view"`
}

// Get handles GET /v1/dashboard.
//
// @Summary      Per-user dashboard
// @Tags         dashboard
// @Produce      json
// @Param        userid  query     string  false  "Pseudonymous user id"
// @Success      200     {object}  dashboardResponse
// @Failure      400     {object}  errorResponse
// @Failure      404     {object}  stateResponse
// @Failure      500     {object}  errorResponse
// @Router       /v1/dashboard [get]
func (h *DashboardHandler) Get(c echo.Context) error {
	var q dashboardQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}

	if q.UserID == "" {
		metrics.DashboardRequestsTotal.WithLabelValues(StateWelcome).Inc()
		return c.JSON(http.StatusOK, stateResponse{State: StateWelcome, Message: welcomeMessage})
	}

	if err := c.Validate(&q); err != nil {
		metrics.DashboardRequestsTotal.WithLabelValues(StateInvalid).Inc()
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	d, err := h.service.Dashboard(c.Request().Context(), q.UserID)
	switch {
	case errors.Is(err, domain.ErrInvalidUserID):
		metrics.DashboardRequestsTotal.WithLabelValues(StateInvalid).Inc()
		return err
	case errors.Is(err, domain.ErrSnapshotNotFound):
		metrics.DashboardRequestsTotal.WithLabelValues(StateNoData).Inc()
		return c.JSON(http.StatusNotFound, stateResponse{State: StateNoData, Message: noDataMessage})
	case err != nil:
		return err
	}

	metrics.DashboardRequestsTotal.WithLabelValues(StateDashboard).Inc()
	return c.JSON(http.StatusOK, dashboardResponse{
		State:     StateDashboard,
		UserID:    d.UserID,
		UpdatedAt: d.UpdatedAt,
		View:      d.View,
	})
}
