package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/datawolt/datawolt/internal/core/aggregate"
	"github.com/datawolt/datawolt/internal/core/ports"
)

// SummaryHandler serves the cross-user report.
type SummaryHandler struct {
	service ports.SummaryService
}

func NewSummaryHandler(service ports.SummaryService) *SummaryHandler {
	return &SummaryHandler{service: service}
}

// Get handles GET /v1/summary.
//
// @Summary      Cross-user summary
// @Tags         summary
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  aggregate.Summary
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /v1/summary [get]
func (h *SummaryHandler) Get(c echo.Context) error {
	s, err := h.service.Summary(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summaryOrEmpty(s))
}

func summaryOrEmpty(s *aggregate.Summary) *aggregate.Summary {
	if s != nil {
		return s
	}
	return &aggregate.Summary{
		Users:          []aggregate.UserTotals{},
		Dishes:         []aggregate.DishCount{},
		TopRestaurants: []aggregate.RestaurantSpend{},
	}
}
