// Package context carries request-scoped values between the delivery layer and the use cases.
package context

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"
)

// HeaderXRequestID is the HTTP header name for request ID.
const HeaderXRequestID = echo.HeaderXRequestID

const echoKeyRequestID = "request_id"

type requestKey struct{}

// Request is what the delivery layer knows about the call being served.
type Request struct {
	ID       string
	ClientIP string
	Logger   *slog.Logger
}

// WithRequest returns a context carrying req.
func WithRequest(ctx context.Context, req *Request) context.Context {
	return context.WithValue(ctx, requestKey{}, req)
}

// RequestFrom returns the request stored in ctx, if any.
func RequestFrom(ctx context.Context) (*Request, bool) {
	req, ok := ctx.Value(requestKey{}).(*Request)

	return req, ok && req != nil
}

func update(ctx context.Context, fn func(*Request)) context.Context {
	next := Request{}
	if req, ok := RequestFrom(ctx); ok {
		next = *req
	}
	fn(&next)

	return WithRequest(ctx, &next)
}

// WithRequestID returns a copy of ctx whose request carries requestID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return update(ctx, func(r *Request) { r.ID = requestID })
}

// WithLogger returns a copy of ctx whose request carries logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return update(ctx, func(r *Request) { r.Logger = logger })
}

// GetRequestIDFromContext returns the request ID, or an empty string outside a request.
func GetRequestIDFromContext(ctx context.Context) string {
	if req, ok := RequestFrom(ctx); ok {
		return req.ID
	}

	return ""
}

// GetClientIPFromContext returns the caller's address, or an empty string outside a request.
func GetClientIPFromContext(ctx context.Context) string {
	if req, ok := RequestFrom(ctx); ok {
		return req.ClientIP
	}

	return ""
}

// GetLoggerOrDefault returns the request-scoped logger, or fallback when there is none.
func GetLoggerOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if req, ok := RequestFrom(ctx); ok && req.Logger != nil {
		return req.Logger
	}

	return fallback
}

// GetRequestID extracts the request ID from echo.Context.
// It falls back to the response header, then to an empty string.
func GetRequestID(c echo.Context) string {
	if id, ok := c.Get(echoKeyRequestID).(string); ok && id != "" {
		return id
	}

	return c.Response().Header().Get(HeaderXRequestID)
}

// SetRequestID sets the request ID in echo.Context.
func SetRequestID(c echo.Context, requestID string) {
	c.Set(echoKeyRequestID, requestID)
}
