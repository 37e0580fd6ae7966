package identity

import (
	"io"
	"log/slog"
	"testing"

	"loginflow/config"
	mockRepo "loginflow/internal/mocks/repository"
	mockService "loginflow/internal/mocks/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testParams(t *testing.T, cfg *config.Config) ProviderParams {
	return ProviderParams{
		Config:         cfg,
		CredentialRepo: mockRepo.NewMockCredentialRepository(t),
		Hasher:         mockService.NewMockPasswordHasher(t),
		TokenService:   mockService.NewMockTokenService(t),
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestNewIdentityProvider(t *testing.T) {
	t.Run("defaults to local", func(t *testing.T) {
		provider, err := NewIdentityProvider(testParams(t, &config.Config{}))

		require.NoError(t, err)
		assert.NotNil(t, provider)
	})

	t.Run("local is case insensitive", func(t *testing.T) {
		provider, err := NewIdentityProvider(testParams(t, &config.Config{Identity: &config.IdentityConfig{Provider: "LOCAL"}}))

		require.NoError(t, err)
		assert.NotNil(t, provider)
	})

	t.Run("local requires token service", func(t *testing.T) {
		params := testParams(t, &config.Config{})
		params.TokenService = nil

		_, err := NewIdentityProvider(params)

		require.ErrorContains(t, err, "token service")
	})

	t.Run("firebase requires configuration", func(t *testing.T) {
		_, err := NewIdentityProvider(testParams(t, &config.Config{Identity: &config.IdentityConfig{Provider: "firebase"}}))

		require.Error(t, err)
	})

	t.Run("firebase requires api key", func(t *testing.T) {
		cfg := &config.Config{
			Identity: &config.IdentityConfig{Provider: "firebase"},
			Firebase: &config.FirebaseConfig{ProjectID: "demo-project"},
		}

		_, err := NewIdentityProvider(testParams(t, cfg))

		require.ErrorContains(t, err, "apiKey")
	})

	t.Run("unknown provider", func(t *testing.T) {
		_, err := NewIdentityProvider(testParams(t, &config.Config{Identity: &config.IdentityConfig{Provider: "ldap"}}))

		require.ErrorContains(t, err, "unknown identity provider")
	})
}
