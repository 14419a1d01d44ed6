package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/datawolt/datawolt/docs"
	"github.com/datawolt/datawolt/internal/api/handler"
	"github.com/datawolt/datawolt/internal/api/middleware"
	"github.com/datawolt/datawolt/internal/core/ports"
	"github.com/datawolt/datawolt/internal/core/service"
)

// corsMaxAge is the preflight cache lifetime in seconds.
const corsMaxAge = 3600

// Deps carries everything the router needs. Checks may be empty.
type Deps struct {
	Ingest    ports.IngestService
	Dashboard ports.DashboardService
	Summary   ports.SummaryService
	Checks    map[string]handler.DependencyCheck

	JWTSecret     string
	TrustedOrigin string
	Log           zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestMetrics())
	e.Use(requestLogger(d.Log))

	// --- Ingestion (browser extension, single trusted origin) ---
	ingestHandler := handler.NewIngestHandler(d.Ingest)
	ingest := e.Group("", echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{d.TrustedOrigin},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
		MaxAge:       corsMaxAge,
	}))
	ingest.Any("/", ingestHandler.Ingest)
	ingest.Any("/ingest", ingestHandler.Ingest)

	// --- Presentation ---
	dashboardHandler := handler.NewDashboardHandler(d.Dashboard)
	summaryHandler := handler.NewSummaryHandler(d.Summary)

	v1 := e.Group("/v1")
	v1.GET("/dashboard", dashboardHandler.Get)
	if d.JWTSecret != "" {
		v1.GET("/summary", summaryHandler.Get, middleware.Auth(d.JWTSecret), middleware.RBAC(service.RoleOperator))
	} else {
		v1.GET("/summary", summaryHandler.Get)
	}

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.Checks)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operations ---
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger emits one structured line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
