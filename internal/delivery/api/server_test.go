package api

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"loginflow/config"
	"loginflow/internal/delivery/api/router"
	"loginflow/internal/delivery/api/router/handler"
	deliverycontext "loginflow/internal/delivery/context"
	"loginflow/internal/infra/metrics"
	mockUsecase "loginflow/internal/mocks/usecase"
	"loginflow/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.HTTP.MaxRequestBodySize = "1KB"
	cfg.HTTP.CORS = &config.CORSConfig{
		AllowOrigin:  "*",
		AllowHeaders: []string{"authorization", "x-client-info", "apikey", "content-type"},
	}
	cfg.Metrics = &config.MetricsConfig{Enabled: true, Path: "/metrics"}

	return cfg
}

func newTestEcho(t *testing.T, cfg *config.Config, login usecase.LoginUsecase) *echo.Echo {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	reg := metrics.NewRegistry()
	metrics.NewCollector(reg).ObserveIssued()

	e := NewEcho(cfg, logger)
	r := router.NewRouter(router.RouterParams{
		AuthHandler: handler.NewAuthHandler(handler.AuthHandlerParams{
			LoginUC:         login,
			PasswordResetUC: mockUsecase.NewMockPasswordResetUsecase(t),
			Logger:          logger,
		}),
		Gatherer: reg,
		Config:   cfg,
		Logger:   logger,
	})
	r.RegisterRoutes(e)
	r.RegisterMetricsRoute(e)

	return e
}

func serve(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func TestServer_Preflight(t *testing.T) {
	e := newTestEcho(t, newTestConfig(), mockUsecase.NewMockLoginUsecase(t))

	for _, path := range []string{"/functions/v1/verify-login", "/functions/v1/complete-password-reset"} {
		rec := serve(e, http.MethodOptions, path, "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Body.String())
		assert.Equal(t, "*", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
		assert.Equal(t, "authorization, x-client-info, apikey, content-type", rec.Header().Get(echo.HeaderAccessControlAllowHeaders))
	}
}

func TestServer_ErrorResponsesCarryHeaders(t *testing.T) {
	e := newTestEcho(t, newTestConfig(), mockUsecase.NewMockLoginUsecase(t))

	rec := serve(e, http.MethodPost, "/functions/v1/verify-login", `{}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Email and password are required"}`, rec.Body.String())
	assert.Equal(t, "*", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
	assert.NotEmpty(t, rec.Header().Get(deliverycontext.HeaderXRequestID))
}

func TestServer_BodyLimit(t *testing.T) {
	e := newTestEcho(t, newTestConfig(), mockUsecase.NewMockLoginUsecase(t))

	body := `{"email":"user@example.com","password":"` + strings.Repeat("x", 2048) + `"}`
	rec := serve(e, http.MethodPost, "/functions/v1/verify-login", body)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestServer_RateLimit(t *testing.T) {
	cfg := newTestConfig()
	cfg.HTTP.RateLimit = &config.RateLimitConfig{Enabled: true, Rate: 0.001, Burst: 1}

	login := mockUsecase.NewMockLoginUsecase(t)
	login.On("VerifyLogin", mock.Anything, mock.Anything).
		Return(&usecase.VerifyLoginOutput{RequiresReset: true, UserID: "u1", Email: "user@example.com"}, nil).Once()

	e := newTestEcho(t, cfg, login)
	body := `{"email":"user@example.com","password":"Tmp!Pass1"}`

	require.Equal(t, http.StatusOK, serve(e, http.MethodPost, "/functions/v1/verify-login", body).Code)

	rec := serve(e, http.MethodPost, "/functions/v1/verify-login", body)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.JSONEq(t, `{"error":"Too many requests"}`, rec.Body.String())

	assert.Equal(t, http.StatusOK, serve(e, http.MethodGet, "/health", "").Code)
}

func TestServer_Metrics(t *testing.T) {
	e := newTestEcho(t, newTestConfig(), mockUsecase.NewMockLoginUsecase(t))

	rec := serve(e, http.MethodGet, "/metrics", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "loginflow_temporary_password_issued_total 1")
}

func TestServer_MetricsDisabled(t *testing.T) {
	cfg := newTestConfig()
	cfg.Metrics.Enabled = false
	e := newTestEcho(t, cfg, mockUsecase.NewMockLoginUsecase(t))

	rec := serve(e, http.MethodGet, "/metrics", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
