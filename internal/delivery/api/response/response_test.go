package response

import (
	"net/http"
	"net/http/httptest"
	"testing"

	domainerrors "loginflow/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext() (echo.Context, *httptest.ResponseRecorder) {
	rec := httptest.NewRecorder()

	return echo.New().NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec), rec
}

func TestOK(t *testing.T) {
	c, rec := newContext()

	require.NoError(t, OK(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())
}

func TestAppError(t *testing.T) {
	c, rec := newContext()

	require.NoError(t, AppError(c, domainerrors.ErrInvalidCredentials))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid credentials"}`, rec.Body.String())
}

func TestInternalServerError(t *testing.T) {
	c, rec := newContext()

	require.NoError(t, InternalServerError(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, rec.Body.String())
}
