package middleware

import (
	"net/http"
	"strings"

	"loginflow/config"

	"github.com/labstack/echo/v4"
)

// CORSMiddleware adds the same cross-origin headers to every response.
// Preflight requests are answered with 200 and an empty body.
type CORSMiddleware struct {
	allowOrigin  string
	allowHeaders string
}

// NewCORSMiddleware creates the middleware from http.cors.
func NewCORSMiddleware(cfg *config.CORSConfig) *CORSMiddleware {
	m := &CORSMiddleware{allowOrigin: "*"}
	if cfg != nil {
		if cfg.AllowOrigin != "" {
			m.allowOrigin = cfg.AllowOrigin
		}
		m.allowHeaders = strings.Join(cfg.AllowHeaders, ", ")
	}

	return m
}

// Handle sets the headers before the handler runs so error responses carry them too.
func (m *CORSMiddleware) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Response().Header()
		header.Set(echo.HeaderAccessControlAllowOrigin, m.allowOrigin)
		if m.allowHeaders != "" {
			header.Set(echo.HeaderAccessControlAllowHeaders, m.allowHeaders)
		}

		if c.Request().Method == http.MethodOptions {
			return c.NoContent(http.StatusOK)
		}

		return next(c)
	}
}
