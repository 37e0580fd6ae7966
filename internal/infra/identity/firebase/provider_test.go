package firebase

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"loginflow/internal/domain/service"

	"firebase.google.com/go/v4/auth"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuthClient struct {
	updatedUID string
	revokedUID string
	created    *auth.UserToCreate
	updateErr  error
	revokeErr  error
	createErr  error
}

func (f *fakeAuthClient) CreateUser(_ context.Context, user *auth.UserToCreate) (*auth.UserRecord, error) {
	f.created = user
	if f.createErr != nil {
		return nil, f.createErr
	}

	return &auth.UserRecord{}, nil
}

func (f *fakeAuthClient) UpdateUser(_ context.Context, uid string, _ *auth.UserToUpdate) (*auth.UserRecord, error) {
	f.updatedUID = uid
	if f.updateErr != nil {
		return nil, f.updateErr
	}

	return &auth.UserRecord{}, nil
}

func (f *fakeAuthClient) RevokeRefreshTokens(_ context.Context, uid string) error {
	f.revokedUID = uid

	return f.revokeErr
}

func newTestProvider(t *testing.T, client authClient, handler http.HandlerFunc) *identityProvider {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	signInURL, err := buildSignInURL(server.URL, "test-key")
	require.NoError(t, err)

	p := newIdentityProvider(client, server.Client(), signInURL, slog.New(slog.NewTextHandler(io.Discard, nil)))
	p.now = func() time.Time { return time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC) }

	return p
}

func TestBuildSignInURL(t *testing.T) {
	got, err := buildSignInURL("", "abc")
	require.NoError(t, err)
	assert.Equal(t, "https://identitytoolkit.googleapis.com/v1/accounts:signInWithPassword?key=abc", got)

	got, err = buildSignInURL("http://localhost:9099/identitytoolkit.googleapis.com/", "abc")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9099/identitytoolkit.googleapis.com/v1/accounts:signInWithPassword?key=abc", got)
}

func TestSignInWithPassword_Success(t *testing.T) {
	p := newTestProvider(t, &fakeAuthClient{}, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/accounts:signInWithPassword", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		var req signInRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "user@example.com", req.Email)
		assert.Equal(t, "Secret1!", req.Password)
		assert.True(t, req.ReturnSecureToken)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"idToken":"id-token","refreshToken":"refresh-token","expiresIn":"3600","localId":"uid-1","email":"user@example.com"}`))
	})

	session, err := p.SignInWithPassword(context.Background(), "user@example.com", "Secret1!")

	require.NoError(t, err)
	assert.Equal(t, "id-token", session.Session.AccessToken)
	assert.Equal(t, "refresh-token", session.Session.RefreshToken)
	assert.Equal(t, "bearer", session.Session.TokenType)
	assert.Equal(t, int64(3600), session.Session.ExpiresIn)
	assert.Equal(t, time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC), session.Session.ExpiresAt)
	assert.Equal(t, "uid-1", session.User.ID)
	assert.Equal(t, "user@example.com", session.User.Email)
}

func TestSignInWithPassword_Errors(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantInvalid bool
	}{
		{name: "wrong password", status: http.StatusBadRequest, body: `{"error":{"code":400,"message":"INVALID_PASSWORD"}}`, wantInvalid: true},
		{name: "unknown email", status: http.StatusBadRequest, body: `{"error":{"code":400,"message":"EMAIL_NOT_FOUND"}}`, wantInvalid: true},
		{name: "combined message", status: http.StatusBadRequest, body: `{"error":{"code":400,"message":"INVALID_LOGIN_CREDENTIALS"}}`, wantInvalid: true},
		{name: "message with detail", status: http.StatusBadRequest, body: `{"error":{"code":400,"message":"USER_DISABLED : The user account has been disabled."}}`, wantInvalid: true},
		{name: "throttled", status: http.StatusBadRequest, body: `{"error":{"code":400,"message":"TOO_MANY_ATTEMPTS_TRY_LATER"}}`},
		{name: "server error", status: http.StatusInternalServerError, body: `upstream unavailable`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestProvider(t, &fakeAuthClient{}, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := p.SignInWithPassword(context.Background(), "user@example.com", "wrong")

			require.Error(t, err)
			assert.Equal(t, tt.wantInvalid, errors.Is(err, service.ErrIdentityInvalidCredentials))
		})
	}
}

func TestUpdatePassword(t *testing.T) {
	client := &fakeAuthClient{revokeErr: errors.New("quota exceeded")}
	p := newTestProvider(t, client, nil)

	require.NoError(t, p.UpdatePassword(context.Background(), "uid-1", "NewSecret1!"))
	assert.Equal(t, "uid-1", client.updatedUID)
	assert.Equal(t, "uid-1", client.revokedUID)
}

func TestUpdatePassword_Failure(t *testing.T) {
	client := &fakeAuthClient{updateErr: errors.New("user not found")}
	p := newTestProvider(t, client, nil)

	err := p.UpdatePassword(context.Background(), "uid-1", "NewSecret1!")

	require.Error(t, err)
	assert.Empty(t, client.revokedUID)
}

func TestCreateUser(t *testing.T) {
	client := &fakeAuthClient{}
	p := newTestProvider(t, client, nil)

	require.NoError(t, p.CreateUser(context.Background(), "uid-2", "new@example.com", "Primary1!"))
	assert.NotNil(t, client.created)
}
