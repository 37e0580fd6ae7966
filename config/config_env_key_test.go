package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"postgres": map[string]any{
			"sslMode": "disable",
			"master": map[string]any{
				"userName": "user",
			},
		},
		"pubsub": map[string]any{
			"topicId": "",
		},
		"secretKey": map[string]any{
			"access": "",
		},
		"passwordPolicy": map[string]any{
			"minLength": 8,
		},
		"auth": map[string]any{
			"temporaryPasswordAlgorithm": "bcrypt",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "POSTGRES_SSLMODE", want: "postgres.sslMode"},
		{envKey: "POSTGRES_MASTER_USERNAME", want: "postgres.master.userName"},
		{envKey: "PUBSUB_TOPICID", want: "pubsub.topicId"},
		{envKey: "SECRETKEY_ACCESS", want: "secretKey.access"},
		{envKey: "PASSWORDPOLICY_MINLENGTH", want: "passwordPolicy.minLength"},
		{envKey: "AUTH_TEMPORARYPASSWORDALGORITHM", want: "auth.temporaryPasswordAlgorithm"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()

	assert.Equal(t, defaultMaxRequestBodySize, cfg.HTTP.MaxRequestBodySize)
	assert.Equal(t, "*", cfg.HTTP.CORS.AllowOrigin)
	assert.Equal(t, []string{"authorization", "x-client-info", "apikey", "content-type"}, cfg.HTTP.CORS.AllowHeaders)
	assert.Equal(t, 8, cfg.PasswordPolicy.MinLength)
	assert.Equal(t, "bcrypt", cfg.Auth.TemporaryPasswordAlgorithm)
	assert.Equal(t, 72*time.Hour, cfg.Auth.TemporaryPasswordTTL)
	assert.Equal(t, defaultBcryptCost, cfg.Auth.BcryptCost)
	assert.Equal(t, "local", cfg.Identity.Provider)
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := &Config{
		PasswordPolicy: &PasswordPolicyConfig{MinLength: 12},
		Auth:           &AuthConfig{TemporaryPasswordAlgorithm: "sha256", BcryptCost: 10},
		Identity:       &IdentityConfig{Provider: "firebase"},
	}
	cfg.applyDefaults()

	assert.Equal(t, 12, cfg.PasswordPolicy.MinLength)
	assert.Equal(t, "sha256", cfg.Auth.TemporaryPasswordAlgorithm)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.Equal(t, "firebase", cfg.Identity.Provider)
}
