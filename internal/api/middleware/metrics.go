package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/datawolt/datawolt/internal/api/metrics"
)

// RequestMetrics records request latency per registered route. Unmatched
// paths are folded into a single label to keep cardinality bounded.
func RequestMetrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			metrics.HTTPRequestDuration.
				WithLabelValues(c.Request().Method, route, strconv.Itoa(statusCode(c, err))).
				Observe(time.Since(start).Seconds())

			return err
		}
	}
}

// statusCode predicts the status the error handler will write when the
// handler returned an error before committing a response.
func statusCode(c echo.Context, err error) int {
	if c.Response().Committed || err == nil {
		return c.Response().Status
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code
	}
	return http.StatusInternalServerError
}
