// Package local implements the primary identity provider on the service's own credential table.
package local

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"loginflow/internal/domain/entity"
	"loginflow/internal/domain/repository"
	"loginflow/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const tokenTypeBearer = "bearer"

type identityProvider struct {
	credentials repository.CredentialRepository
	hasher      service.PasswordHasher
	tokens      service.TokenService
	dummyHash   func() string
	logger      *slog.Logger
}

// Params holds dependencies for the local identity provider, injected by Fx.
type Params struct {
	fx.In

	CredentialRepo repository.CredentialRepository
	Hasher         service.PasswordHasher
	TokenService   service.TokenService
	Logger         *slog.Logger
}

// NewIdentityProvider creates an identity provider backed by bcrypt credentials and locally signed JWTs.
func NewIdentityProvider(params Params) service.IdentityProvider {
	p := &identityProvider{
		credentials: params.CredentialRepo,
		hasher:      params.Hasher,
		tokens:      params.TokenService,
		logger:      params.Logger,
	}
	// Unknown emails are checked against a throwaway hash so both rejections cost one bcrypt comparison.
	p.dummyHash = sync.OnceValue(func() string {
		hash, err := p.hasher.Hash(uuid.NewString())
		if err != nil {
			p.logger.Warn("Failed to prepare dummy credential hash", slog.Any("error", err))
		}

		return hash
	})

	return p
}

func (p *identityProvider) SignInWithPassword(ctx context.Context, email, password string) (*entity.AuthSession, error) {
	credential, err := p.credentials.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrCredentialNotFound) {
		p.hasher.Check(password, p.dummyHash())

		return nil, errors.Wrap(service.ErrIdentityInvalidCredentials, "unknown email")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load credential")
	}

	if !p.hasher.Check(password, credential.PasswordHash) {
		return nil, errors.Wrap(service.ErrIdentityInvalidCredentials, "password mismatch")
	}

	pair, err := p.tokens.GenerateTokens(credential.UserID, credential.Email)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate session tokens")
	}

	return &entity.AuthSession{
		Session: &entity.Session{
			AccessToken:  pair.AccessToken,
			RefreshToken: pair.RefreshToken,
			TokenType:    tokenTypeBearer,
			ExpiresIn:    int64(pair.AccessTTL.Seconds()),
			ExpiresAt:    pair.IssuedAt.Add(pair.AccessTTL).UTC(),
		},
		User: &entity.SessionUser{
			ID:    credential.UserID,
			Email: credential.Email,
		},
	}, nil
}

func (p *identityProvider) UpdatePassword(ctx context.Context, userID, newPassword string) error {
	hash, err := p.hasher.Hash(newPassword)
	if err != nil {
		return errors.Wrap(err, "failed to hash password")
	}

	if err := p.credentials.UpdatePasswordHash(ctx, userID, hash); err != nil {
		return errors.Wrapf(err, "failed to store password for user %s", userID)
	}

	return nil
}

func (p *identityProvider) CreateUser(ctx context.Context, userID, email, password string) error {
	hash, err := p.hasher.Hash(password)
	if err != nil {
		return errors.Wrap(err, "failed to hash password")
	}

	err = p.credentials.Create(ctx, &entity.Credential{
		UserID:       userID,
		Email:        strings.TrimSpace(email),
		PasswordHash: hash,
	})
	if errors.Is(err, repository.ErrCredentialAlreadyExists) {
		return errors.Wrap(service.ErrIdentityUserExists, email)
	}
	if err != nil {
		return errors.Wrap(err, "failed to create credential")
	}

	return nil
}
