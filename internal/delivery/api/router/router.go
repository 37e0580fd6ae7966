// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"log/slog"

	"loginflow/config"
	"loginflow/internal/delivery/api/middleware"
	"loginflow/internal/delivery/api/router/handler"
	"loginflow/internal/infra/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

const defaultMetricsPath = "/metrics"

type RouterParams struct {
	fx.In

	AuthHandler *handler.AuthHandler
	Gatherer    prometheus.Gatherer `optional:"true"`
	Config      *config.Config
	Logger      *slog.Logger
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler *handler.AuthHandler
	gatherer    prometheus.Gatherer
	config      *config.Config
	logger      *slog.Logger
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler: params.AuthHandler,
		gatherer:    params.Gatherer,
		config:      params.Config,
		logger:      params.Logger,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	var groupMiddleware []echo.MiddlewareFunc
	if limiter := middleware.NewRateLimiter(r.config.HTTP.RateLimit, r.logger); limiter != nil {
		groupMiddleware = append(groupMiddleware, limiter)
	}

	functions := e.Group("/functions/v1", groupMiddleware...)
	{
		functions.POST("/verify-login", r.authHandler.VerifyLogin)
		functions.POST("/complete-password-reset", r.authHandler.CompletePasswordReset)
	}
}

// RegisterMetricsRoute exposes the Prometheus scrape endpoint when metrics are enabled.
func (r *router) RegisterMetricsRoute(e *echo.Echo) {
	cfg := r.config.Metrics
	if cfg == nil || !cfg.Enabled || r.gatherer == nil {
		return
	}

	path := cfg.Path
	if path == "" {
		path = defaultMetricsPath
	}

	e.GET(path, echo.WrapHandler(metrics.Handler(r.gatherer)))
}
