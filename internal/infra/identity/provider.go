// Package identity selects the primary identity provider from configuration.
package identity

import (
	"context"
	"log/slog"
	"strings"

	"loginflow/config"
	"loginflow/internal/domain/constants"
	"loginflow/internal/domain/repository"
	"loginflow/internal/domain/service"
	"loginflow/internal/infra/identity/firebase"
	"loginflow/internal/infra/identity/local"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// ProviderParams holds dependencies for IdentityProvider, injected by Fx
type ProviderParams struct {
	fx.In

	Ctx            context.Context `optional:"true"`
	Config         *config.Config
	CredentialRepo repository.CredentialRepository
	Hasher         service.PasswordHasher
	TokenService   service.TokenService `optional:"true"`
	Logger         *slog.Logger
}

// NewIdentityProvider creates the IdentityProvider named by identity.provider.
func NewIdentityProvider(params ProviderParams) (service.IdentityProvider, error) {
	provider := constants.IdentityProviderLocal
	if params.Config.Identity != nil && params.Config.Identity.Provider != "" {
		provider = strings.ToLower(params.Config.Identity.Provider)
	}

	switch provider {
	case constants.IdentityProviderLocal:
		if params.TokenService == nil {
			return nil, errors.New("local identity provider requires a token service; set secretKey.access and secretKey.refresh")
		}
		params.Logger.Info("Using local identity provider")

		return local.NewIdentityProvider(local.Params{
			CredentialRepo: params.CredentialRepo,
			Hasher:         params.Hasher,
			TokenService:   params.TokenService,
			Logger:         params.Logger,
		}), nil

	case constants.IdentityProviderFirebase:
		ctx := params.Ctx
		if ctx == nil {
			ctx = context.Background()
		}

		params.Logger.Info("Using Firebase identity provider")

		return firebase.NewIdentityProvider(ctx, params.Config.Firebase, params.Logger)

	default:
		return nil, errors.Errorf("unknown identity provider: %s", provider)
	}
}

// Module provides the identity FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewIdentityProvider),
)
