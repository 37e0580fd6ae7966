// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	deliverycontext "loginflow/internal/delivery/context"
	domainerrors "loginflow/internal/domain/errors"
	"loginflow/internal/domain/repository"
	"loginflow/internal/domain/service"
	"loginflow/internal/usecase"
	"loginflow/internal/util"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// loginService implements the LoginUsecase interface.
type loginService struct {
	profileRepo repository.ProfileRepository
	strategies  []loginStrategy
	metrics     service.LoginMetrics
	now         func() time.Time
	logger      *slog.Logger
}

// LoginServiceParams holds dependencies for LoginService, injected by Fx.
type LoginServiceParams struct {
	fx.In

	ProfileRepo      repository.ProfileRepository
	IdentityProvider service.IdentityProvider
	TempHasher       service.TemporaryPasswordHasher
	Publisher        service.EventPublisher `optional:"true"`
	Metrics          service.LoginMetrics   `optional:"true"`
	Clock            func() time.Time       `optional:"true"`
	Logger           *slog.Logger
}

// NewLoginService is the constructor for loginService.
// Strategies are tried in a fixed order: expired temporary password, temporary password, primary password.
func NewLoginService(params LoginServiceParams) usecase.LoginUsecase {
	srv := &loginService{
		profileRepo: params.ProfileRepo,
		metrics:     params.Metrics,
		now:         params.Clock,
		logger:      params.Logger,
	}
	if srv.now == nil {
		srv.now = time.Now
	}

	srv.strategies = []loginStrategy{
		&expiredTemporaryPasswordStrategy{profiles: params.ProfileRepo, publisher: params.Publisher, log: srv.log},
		&temporaryPasswordStrategy{hasher: params.TempHasher},
		&primaryPasswordStrategy{identity: params.IdentityProvider},
	}

	return srv
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *loginService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// VerifyLogin resolves the sign-in path for an email/password pair.
func (srv *loginService) VerifyLogin(ctx context.Context, input *usecase.VerifyLoginInput) (*usecase.VerifyLoginOutput, error) {
	output, err := srv.verifyLogin(ctx, input)
	srv.observe(output, err)

	return output, err
}

func (srv *loginService) verifyLogin(ctx context.Context, input *usecase.VerifyLoginInput) (*usecase.VerifyLoginOutput, error) {
	email := strings.TrimSpace(input.Email)
	if email == "" || input.Password == "" {
		return nil, errors.WithStack(domainerrors.NewValidationError("Email and password are required"))
	}

	profile, err := srv.profileRepo.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrProfileNotFound) {
		profile = nil
	} else if err != nil {
		srv.log(ctx).Error("Failed to look up profile", slog.String("email", util.MaskEmail(email)), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to look up profile")
	}

	attempt := &loginAttempt{
		email:    email,
		password: input.Password,
		profile:  profile,
		now:      srv.now(),
	}

	for _, strategy := range srv.strategies {
		output, err := strategy.resolve(ctx, attempt)
		if errors.Is(err, errStrategyNotApplicable) {
			continue
		}

		srv.log(ctx).Debug("Login resolved", slog.String("strategy", strategy.name()), slog.String("email", util.MaskEmail(email)), slog.Bool("failed", err != nil))

		return output, err
	}

	// primary-password always applies, so this is unreachable with the default chain.
	return nil, errors.New("no login strategy resolved the attempt")
}

func (srv *loginService) observe(output *usecase.VerifyLoginOutput, err error) {
	if srv.metrics == nil {
		return
	}

	switch {
	case err == nil && output.RequiresReset:
		srv.metrics.ObserveVerify(service.VerifyOutcomeRequiresReset)
	case err == nil:
		srv.metrics.ObserveVerify(service.VerifyOutcomeNormal)
	case errors.Is(err, domainerrors.ErrTemporaryPasswordExpired):
		srv.metrics.ObserveVerify(service.VerifyOutcomeExpired)
	case errors.Is(err, domainerrors.ErrInvalidCredentials), errors.Is(err, domainerrors.ErrValidationFailed):
		srv.metrics.ObserveVerify(service.VerifyOutcomeInvalid)
	default:
		srv.metrics.ObserveVerify(service.VerifyOutcomeError)
	}
}
