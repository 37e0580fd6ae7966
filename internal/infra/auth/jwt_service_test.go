package auth

import (
	"testing"
	"time"

	"loginflow/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTConfig() *config.Config {
	return &config.Config{
		SecretKey: config.SecretKey{
			Access:  "test_access_secret_key_very_long_for_testing",
			Refresh: "test_refresh_secret_key_very_long_for_testing",
		},
	}
}

func TestJWTService_GenerateAndValidateTokens(t *testing.T) {
	svc, err := NewJWTService(newTestJWTConfig())
	require.NoError(t, err)

	pair, err := svc.GenerateTokens("user-1", "user@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, time.Hour, pair.AccessTTL)

	accessClaims, err := svc.ValidateToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", accessClaims.UserID)
	assert.Equal(t, "user@example.com", accessClaims.Email)
	assert.Equal(t, "access", accessClaims.Type)

	refreshClaims, err := svc.ValidateToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", refreshClaims.UserID)
	assert.Empty(t, refreshClaims.Email)
	assert.Equal(t, "refresh", refreshClaims.Type)

	assert.Equal(t, 7*24*time.Hour, svc.GetRefreshTokenDuration())
}

func TestJWTService_ConfiguredTTLs(t *testing.T) {
	cfg := newTestJWTConfig()
	cfg.Auth = &config.AuthConfig{AccessTokenTTL: 30 * time.Minute, RefreshTokenTTL: 48 * time.Hour}

	svc, err := NewJWTService(cfg)
	require.NoError(t, err)

	pair, err := svc.GenerateTokens("user-1", "user@example.com")
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, pair.AccessTTL)
	assert.Equal(t, 48*time.Hour, svc.GetRefreshTokenDuration())
}

func TestJWTService_MissingSecrets(t *testing.T) {
	_, err := NewJWTService(&config.Config{})
	assert.EqualError(t, err, "jwt secrets must be provided")
}

func TestJWTService_InvalidToken(t *testing.T) {
	svc, err := NewJWTService(newTestJWTConfig())
	require.NoError(t, err)

	claims, err := svc.ValidateToken("clearly-not-a-jwt-token-format")
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	svc, err := NewJWTService(newTestJWTConfig())
	require.NoError(t, err)

	issued := time.Now().Add(-2 * time.Hour)
	svc.(*jwtService).now = func() time.Time { return issued }
	pair, err := svc.GenerateTokens("user-1", "user@example.com")
	require.NoError(t, err)

	svc.(*jwtService).now = time.Now
	_, err = svc.ValidateToken(pair.AccessToken)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestJWTService_WrongSecret(t *testing.T) {
	svc, err := NewJWTService(newTestJWTConfig())
	require.NoError(t, err)

	other := newTestJWTConfig()
	other.SecretKey.Access = "a_completely_different_access_secret"
	otherSvc, err := NewJWTService(other)
	require.NoError(t, err)

	pair, err := otherSvc.GenerateTokens("user-1", "user@example.com")
	require.NoError(t, err)

	_, err = svc.ValidateToken(pair.AccessToken)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestJWTService_UnknownTokenType(t *testing.T) {
	svc, err := NewJWTService(newTestJWTConfig())
	require.NoError(t, err)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "user-1",
		"type": "id",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("test_access_secret_key_very_long_for_testing"))
	require.NoError(t, err)

	_, err = svc.ValidateToken(signed)
	assert.Error(t, err)
}
