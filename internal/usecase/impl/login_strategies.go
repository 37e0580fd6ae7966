package impl

import (
	"context"
	"log/slog"
	"time"

	"loginflow/internal/domain/entity"
	domainerrors "loginflow/internal/domain/errors"
	"loginflow/internal/domain/repository"
	"loginflow/internal/domain/service"
	"loginflow/internal/usecase"

	"github.com/pkg/errors"
)

// errStrategyNotApplicable tells the resolver to try the next strategy.
var errStrategyNotApplicable = errors.New("strategy not applicable")

// loginAttempt is the state shared by the strategies of one verify-login call.
type loginAttempt struct {
	email    string
	password string
	profile  *entity.Profile // nil when the email has no profile
	now      time.Time
}

// loginStrategy resolves an attempt or returns errStrategyNotApplicable.
type loginStrategy interface {
	name() string
	resolve(ctx context.Context, attempt *loginAttempt) (*usecase.VerifyLoginOutput, error)
}

// expiredTemporaryPasswordStrategy voids a temporary password whose expiry has passed.
// The submitted password is never compared.
type expiredTemporaryPasswordStrategy struct {
	profiles  repository.ProfileRepository
	publisher service.EventPublisher
	log       func(ctx context.Context) *slog.Logger
}

func (s *expiredTemporaryPasswordStrategy) name() string {
	return "expired-temporary-password"
}

func (s *expiredTemporaryPasswordStrategy) resolve(ctx context.Context, attempt *loginAttempt) (*usecase.VerifyLoginOutput, error) {
	profile := attempt.profile
	if !profile.PendingReset() || !profile.TemporaryPasswordExpired(attempt.now) {
		return nil, errStrategyNotApplicable
	}

	// Conditional on the hash we read so a concurrent re-issue survives.
	cleared, err := s.profiles.ClearPendingResetIfMatch(ctx, profile.ID, *profile.TemporaryPasswordHash)
	switch {
	case err != nil:
		s.log(ctx).Error("Failed to clear expired temporary password",
			slog.String("userID", profile.ID), slog.Any("error", err))
	case !cleared:
		s.log(ctx).Info("Expired temporary password was already replaced or cleared", slog.String("userID", profile.ID))
	default:
		s.log(ctx).Info("Cleared expired temporary password", slog.String("userID", profile.ID))
		publishBestEffort(ctx, s.publisher, s.log(ctx), entity.EventTemporaryPasswordExpired, profile.ID, profile.Email, attempt.now)
	}

	return nil, errors.Wrap(domainerrors.ErrTemporaryPasswordExpired, "temporary password expired")
}

// temporaryPasswordStrategy accepts the issued temporary password and asks the caller to reset.
type temporaryPasswordStrategy struct {
	hasher service.TemporaryPasswordHasher
}

func (s *temporaryPasswordStrategy) name() string {
	return "temporary-password"
}

func (s *temporaryPasswordStrategy) resolve(_ context.Context, attempt *loginAttempt) (*usecase.VerifyLoginOutput, error) {
	profile := attempt.profile
	if !profile.PendingReset() {
		return nil, errStrategyNotApplicable
	}

	if !s.hasher.Check(attempt.password, *profile.TemporaryPasswordHash) {
		return nil, errStrategyNotApplicable
	}

	return &usecase.VerifyLoginOutput{
		RequiresReset: true,
		UserID:        profile.ID,
		Email:         profile.Email,
	}, nil
}

// primaryPasswordStrategy performs the standard sign-in. It always applies.
type primaryPasswordStrategy struct {
	identity service.IdentityProvider
}

func (s *primaryPasswordStrategy) name() string {
	return "primary-password"
}

func (s *primaryPasswordStrategy) resolve(ctx context.Context, attempt *loginAttempt) (*usecase.VerifyLoginOutput, error) {
	authSession, err := s.identity.SignInWithPassword(ctx, attempt.email, attempt.password)
	if errors.Is(err, service.ErrIdentityInvalidCredentials) {
		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "primary sign-in rejected")
	}
	if err != nil {
		return nil, errors.Wrap(err, "primary sign-in failed")
	}

	return &usecase.VerifyLoginOutput{
		RequiresReset: false,
		Session:       authSession.Session,
		User:          authSession.User,
	}, nil
}
