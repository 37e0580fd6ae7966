package auth

import (
	"strings"

	"loginflow/config"
	"loginflow/internal/domain/constants"
	"loginflow/internal/domain/policy"
	"loginflow/internal/domain/service"
)

// NewPasswordPolicy builds the password policy from passwordPolicy.minLength.
// The local identity provider stores bcrypt hashes, so it also caps passwords at bcrypt's input limit.
func NewPasswordPolicy(cfg *config.Config) *policy.PasswordPolicy {
	minLength := policy.DefaultMinLength
	if cfg != nil && cfg.PasswordPolicy != nil && cfg.PasswordPolicy.MinLength > 0 {
		minLength = cfg.PasswordPolicy.MinLength
	}

	p := policy.NewPasswordPolicy(minLength)
	if usesLocalIdentity(cfg) {
		p = p.WithMaxBytes(BcryptMaxPasswordBytes)
	}

	return p
}

func usesLocalIdentity(cfg *config.Config) bool {
	return cfg == nil || cfg.Identity == nil || cfg.Identity.Provider == "" ||
		strings.EqualFold(cfg.Identity.Provider, constants.IdentityProviderLocal)
}

// NewTokenService returns the JWT service when sessions are issued locally, and nil otherwise.
func NewTokenService(cfg *config.Config) (service.TokenService, error) {
	if !usesLocalIdentity(cfg) {
		return nil, nil
	}

	return NewJWTService(cfg)
}
