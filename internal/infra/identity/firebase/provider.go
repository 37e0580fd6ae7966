// Package firebase implements the primary identity provider on Firebase Authentication.
package firebase

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"loginflow/config"
	"loginflow/internal/domain/entity"
	"loginflow/internal/domain/service"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"github.com/pkg/errors"
	"google.golang.org/api/option"
)

const (
	defaultSignInEndpoint = "https://identitytoolkit.googleapis.com"
	signInPath            = "/v1/accounts:signInWithPassword"
	signInTimeout         = 10 * time.Second
	maxErrorBodySize      = 64 << 10
)

// Identity Toolkit error messages that mean the email/password pair was rejected.
var rejectedSignInMessages = []string{
	"EMAIL_NOT_FOUND",
	"INVALID_PASSWORD",
	"INVALID_LOGIN_CREDENTIALS",
	"INVALID_EMAIL",
	"USER_DISABLED",
}

// authClient is the subset of *auth.Client used here.
type authClient interface {
	CreateUser(ctx context.Context, user *auth.UserToCreate) (*auth.UserRecord, error)
	UpdateUser(ctx context.Context, uid string, user *auth.UserToUpdate) (*auth.UserRecord, error)
	RevokeRefreshTokens(ctx context.Context, uid string) error
}

type identityProvider struct {
	client     authClient
	httpClient *http.Client
	signInURL  string
	now        func() time.Time
	logger     *slog.Logger
}

// NewIdentityProvider creates a Firebase Authentication backed identity provider.
// Password sign-in goes through the Identity Toolkit REST API because the Admin SDK cannot verify passwords.
func NewIdentityProvider(ctx context.Context, cfg *config.FirebaseConfig, logger *slog.Logger) (service.IdentityProvider, error) {
	if cfg == nil {
		return nil, errors.New("firebase configuration is required")
	}
	if cfg.APIKey == "" {
		return nil, errors.New("firebase apiKey is required for password sign-in")
	}

	var opts []option.ClientOption
	if cfg.CredentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsPath))
	}

	var appConfig *firebase.Config
	if cfg.ProjectID != "" {
		appConfig = &firebase.Config{ProjectID: cfg.ProjectID}
	}

	app, err := firebase.NewApp(ctx, appConfig, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize Firebase app")
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get auth client")
	}

	signInURL, err := buildSignInURL(cfg.SignInEndpoint, cfg.APIKey)
	if err != nil {
		return nil, err
	}

	return newIdentityProvider(client, &http.Client{Timeout: signInTimeout}, signInURL, logger), nil
}

func newIdentityProvider(client authClient, httpClient *http.Client, signInURL string, logger *slog.Logger) *identityProvider {
	return &identityProvider{
		client:     client,
		httpClient: httpClient,
		signInURL:  signInURL,
		now:        time.Now,
		logger:     logger,
	}
}

func buildSignInURL(endpoint, apiKey string) (string, error) {
	if endpoint == "" {
		endpoint = defaultSignInEndpoint
	}

	u, err := url.Parse(strings.TrimRight(endpoint, "/") + signInPath)
	if err != nil {
		return "", errors.Wrap(err, "invalid firebase signInEndpoint")
	}

	query := u.Query()
	query.Set("key", apiKey)
	u.RawQuery = query.Encode()

	return u.String(), nil
}

type signInRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type signInResponse struct {
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"`
	LocalID      string `json:"localId"`
	Email        string `json:"email"`
}

type signInErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// SignInWithPassword exchanges an email/password pair for Firebase ID and refresh tokens.
func (p *identityProvider) SignInWithPassword(ctx context.Context, email, password string) (*entity.AuthSession, error) {
	body, err := json.Marshal(signInRequest{Email: email, Password: password, ReturnSecureToken: true})
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode sign-in request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.signInURL, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create sign-in request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "firebase sign-in request failed")
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			p.logger.Warn("failed to close firebase response body", slog.Any("error", err))
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, p.signInError(resp)
	}

	var result signInResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, errors.Wrap(err, "failed to decode sign-in response")
	}

	expiresIn, err := strconv.ParseInt(result.ExpiresIn, 10, 64)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid expiresIn %q", result.ExpiresIn)
	}

	return &entity.AuthSession{
		Session: &entity.Session{
			AccessToken:  result.IDToken,
			RefreshToken: result.RefreshToken,
			TokenType:    "bearer",
			ExpiresIn:    expiresIn,
			ExpiresAt:    p.now().Add(time.Duration(expiresIn) * time.Second).UTC(),
		},
		User: &entity.SessionUser{
			ID:    result.LocalID,
			Email: result.Email,
		},
	}, nil
}

func (p *identityProvider) signInError(resp *http.Response) error {
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
	if err != nil {
		return errors.Wrapf(err, "firebase sign-in returned status %d", resp.StatusCode)
	}

	var payload signInErrorResponse
	if err := json.Unmarshal(raw, &payload); err != nil {
		return errors.Errorf("firebase sign-in returned status %d", resp.StatusCode)
	}

	// Messages may carry a suffix, e.g. "INVALID_PASSWORD : The password is invalid".
	code, _, _ := strings.Cut(payload.Error.Message, " ")
	for _, rejected := range rejectedSignInMessages {
		if code == rejected {
			return errors.Wrap(service.ErrIdentityInvalidCredentials, code)
		}
	}

	return errors.Errorf("firebase sign-in failed with status %d: %s", resp.StatusCode, payload.Error.Message)
}

// UpdatePassword sets a new password and revokes the refresh tokens issued before it.
func (p *identityProvider) UpdatePassword(ctx context.Context, userID, newPassword string) error {
	if _, err := p.client.UpdateUser(ctx, userID, (&auth.UserToUpdate{}).Password(newPassword)); err != nil {
		return errors.Wrap(err, "failed to update firebase user password")
	}

	if err := p.client.RevokeRefreshTokens(ctx, userID); err != nil {
		p.logger.WarnContext(ctx, "Failed to revoke refresh tokens after password update",
			slog.String("userID", userID),
			slog.Any("error", err))
	}

	return nil
}

// CreateUser registers a Firebase user under the given uid.
func (p *identityProvider) CreateUser(ctx context.Context, userID, email, password string) error {
	user := (&auth.UserToCreate{}).
		UID(userID).
		Email(email).
		Password(password)

	if _, err := p.client.CreateUser(ctx, user); err != nil {
		if auth.IsEmailAlreadyExists(err) || auth.IsUIDAlreadyExists(err) {
			return errors.Wrap(service.ErrIdentityUserExists, email)
		}

		return errors.Wrap(err, "failed to create firebase user")
	}

	return nil
}
