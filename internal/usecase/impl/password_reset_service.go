package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	deliverycontext "loginflow/internal/delivery/context"
	"loginflow/internal/domain/entity"
	domainerrors "loginflow/internal/domain/errors"
	"loginflow/internal/domain/policy"
	"loginflow/internal/domain/repository"
	"loginflow/internal/domain/service"
	"loginflow/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// passwordResetService implements the PasswordResetUsecase interface.
type passwordResetService struct {
	profileRepo repository.ProfileRepository
	identity    service.IdentityProvider
	policy      *policy.PasswordPolicy
	publisher   service.EventPublisher
	metrics     service.LoginMetrics
	now         func() time.Time
	logger      *slog.Logger
}

// PasswordResetServiceParams holds dependencies for PasswordResetService, injected by Fx.
type PasswordResetServiceParams struct {
	fx.In

	ProfileRepo      repository.ProfileRepository
	IdentityProvider service.IdentityProvider
	Policy           *policy.PasswordPolicy
	Publisher        service.EventPublisher `optional:"true"`
	Metrics          service.LoginMetrics   `optional:"true"`
	Clock            func() time.Time       `optional:"true"`
	Logger           *slog.Logger
}

// NewPasswordResetService is the constructor for passwordResetService.
func NewPasswordResetService(params PasswordResetServiceParams) usecase.PasswordResetUsecase {
	srv := &passwordResetService{
		profileRepo: params.ProfileRepo,
		identity:    params.IdentityProvider,
		policy:      params.Policy,
		publisher:   params.Publisher,
		metrics:     params.Metrics,
		now:         params.Clock,
		logger:      params.Logger,
	}
	if srv.policy == nil {
		srv.policy = policy.NewPasswordPolicy(policy.DefaultMinLength)
	}
	if srv.now == nil {
		srv.now = time.Now
	}

	return srv
}

func (srv *passwordResetService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CompletePasswordReset validates the new password, rotates it at the identity provider and clears the pending reset.
// The sequence is not retried; a failed clear is reported even though the password already changed.
func (srv *passwordResetService) CompletePasswordReset(ctx context.Context, input *usecase.CompletePasswordResetInput) error {
	err := srv.completePasswordReset(ctx, input)
	srv.observe(err)

	return err
}

func (srv *passwordResetService) completePasswordReset(ctx context.Context, input *usecase.CompletePasswordResetInput) error {
	userID := strings.TrimSpace(input.UserID)
	email := strings.TrimSpace(input.Email)
	if userID == "" || email == "" || input.NewPassword == "" {
		return errors.WithStack(domainerrors.NewValidationError("User ID, email, and new password are required"))
	}

	if err := srv.policy.Validate(input.NewPassword, email); err != nil {
		srv.log(ctx).Info("New password rejected by policy", slog.String("userID", userID), slog.Any("reason", err))

		return errors.WithStack(err)
	}

	if err := srv.identity.UpdatePassword(ctx, userID, input.NewPassword); err != nil {
		srv.log(ctx).Error("Failed to update password at identity provider", slog.String("userID", userID), slog.Any("error", err))

		return errors.Wrap(domainerrors.ErrCredentialUpdateFailed, err.Error())
	}

	if err := srv.profileRepo.ClearPendingReset(ctx, userID); err != nil {
		// The password is already rotated; the caller retries the whole request.
		srv.log(ctx).Error("Password updated but pending reset was not cleared", slog.String("userID", userID), slog.Any("error", err))

		return errors.Wrap(domainerrors.ErrProfileUpdateFailed, err.Error())
	}

	srv.log(ctx).Info("Password reset completed", slog.String("userID", userID))
	publishBestEffort(ctx, srv.publisher, srv.log(ctx), entity.EventPasswordResetCompleted, userID, email, srv.now())

	return nil
}

func (srv *passwordResetService) observe(err error) {
	if srv.metrics == nil {
		return
	}

	var violation *domainerrors.PolicyViolationError
	switch {
	case err == nil:
		srv.metrics.ObserveReset(service.ResetOutcomeSuccess)
	case errors.As(err, &violation):
		srv.metrics.ObserveReset(service.ResetOutcomePolicyViolation)
	default:
		srv.metrics.ObserveReset(service.ResetOutcomeError)
	}
}
