package middleware

import (
	"log/slog"

	"loginflow/config"
	deliverycontext "loginflow/internal/delivery/context"
	domainerrors "loginflow/internal/domain/errors"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

// NewRateLimiter limits requests per client IP with an in-memory token bucket.
// It returns nil when rate limiting is disabled.
func NewRateLimiter(cfg *config.RateLimitConfig, logger *slog.Logger) echo.MiddlewareFunc {
	if cfg == nil || !cfg.Enabled || cfg.Rate <= 0 {
		return nil
	}

	store := echomiddleware.NewRateLimiterMemoryStoreWithConfig(echomiddleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(cfg.Rate),
		Burst:     cfg.Burst,
		ExpiresIn: cfg.ExpiresIn,
	})

	return echomiddleware.RateLimiterWithConfig(echomiddleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return errors.Wrap(domainerrors.ErrInternalError, err.Error())
		},
		DenyHandler: func(c echo.Context, identifier string, _ error) error {
			deliverycontext.GetLoggerOrDefault(c.Request().Context(), logger).
				Warn("Rate limit exceeded", slog.String("remote_ip", identifier), slog.String("path", c.Path()))

			return errors.WithStack(domainerrors.ErrTooManyRequests)
		},
	})
}
