package impl

import (
	"context"
	"crypto/rand"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"loginflow/config"
	deliverycontext "loginflow/internal/delivery/context"
	"loginflow/internal/domain/entity"
	domainerrors "loginflow/internal/domain/errors"
	"loginflow/internal/domain/policy"
	"loginflow/internal/domain/repository"
	"loginflow/internal/domain/service"
	"loginflow/internal/usecase"
	"loginflow/internal/util"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	temporaryPasswordLength   = 16
	maxGenerationAttempts     = 5
	defaultTemporaryPassTTL   = 72 * time.Hour
	temporaryUpperAlphabet    = "ABCDEFGHJKLMNPQRSTUVWXYZ"
	temporaryLowerAlphabet    = "abcdefghijkmnpqrstuvwxyz"
	temporaryDigitAlphabet    = "23456789"
	temporarySymbolAlphabet   = "!@#$%^&*-_=+?"
	temporaryPasswordAlphabet = temporaryUpperAlphabet + temporaryLowerAlphabet + temporaryDigitAlphabet + temporarySymbolAlphabet
)

// temporaryPasswordService implements the TemporaryPasswordUsecase interface.
type temporaryPasswordService struct {
	txManager  repository.TransactionManager
	identity   service.IdentityProvider
	hasher     service.TemporaryPasswordHasher
	policy     *policy.PasswordPolicy
	publisher  service.EventPublisher
	metrics    service.LoginMetrics
	defaultTTL time.Duration
	generate   func(length int) (string, error)
	now        func() time.Time
	logger     *slog.Logger
}

// TemporaryPasswordServiceParams holds dependencies for TemporaryPasswordService, injected by Fx.
type TemporaryPasswordServiceParams struct {
	fx.In

	TxManager        repository.TransactionManager
	IdentityProvider service.IdentityProvider `optional:"true"`
	TempHasher       service.TemporaryPasswordHasher
	Policy           *policy.PasswordPolicy
	Publisher        service.EventPublisher `optional:"true"`
	Metrics          service.LoginMetrics   `optional:"true"`
	Clock            func() time.Time       `optional:"true"`
	Config           *config.Config
	Logger           *slog.Logger
}

// NewTemporaryPasswordService is the constructor for temporaryPasswordService.
func NewTemporaryPasswordService(params TemporaryPasswordServiceParams) usecase.TemporaryPasswordUsecase {
	defaultTTL := defaultTemporaryPassTTL
	if params.Config != nil && params.Config.Auth != nil && params.Config.Auth.TemporaryPasswordTTL > 0 {
		defaultTTL = params.Config.Auth.TemporaryPasswordTTL
	}

	srv := &temporaryPasswordService{
		txManager:  params.TxManager,
		identity:   params.IdentityProvider,
		hasher:     params.TempHasher,
		policy:     params.Policy,
		publisher:  params.Publisher,
		metrics:    params.Metrics,
		defaultTTL: defaultTTL,
		generate:   generateTemporaryPassword,
		now:        params.Clock,
		logger:     params.Logger,
	}
	if srv.policy == nil {
		srv.policy = policy.NewPasswordPolicy(policy.DefaultMinLength)
	}
	if srv.now == nil {
		srv.now = time.Now
	}

	return srv
}

func (srv *temporaryPasswordService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// IssueTemporaryPassword puts the account into forced-reset state with a fresh temporary password.
// A previously issued temporary password stops working.
func (srv *temporaryPasswordService) IssueTemporaryPassword(
	ctx context.Context,
	input *usecase.IssueTemporaryPasswordInput,
) (*usecase.IssueTemporaryPasswordOutput, error) {
	grant, err := srv.prepare(input)
	if err != nil {
		return nil, err
	}

	var profile *entity.Profile
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		profileRepo := repoFactory.NewProfileRepository()

		found, err := profileRepo.FindByEmail(ctx, grant.email)
		if errors.Is(err, repository.ErrProfileNotFound) {
			return errors.Wrap(domainerrors.ErrProfileNotFound, util.MaskEmail(grant.email))
		}
		if err != nil {
			return errors.Wrap(err, "failed to find profile")
		}

		if err := profileRepo.SetPendingReset(ctx, found.ID, grant.hash, grant.expiresAt); err != nil {
			return errors.Wrap(err, "failed to set pending reset")
		}
		profile = found

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to issue temporary password", slog.String("email", util.MaskEmail(grant.email)), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to issue temporary password")
	}

	return srv.issued(ctx, profile, grant), nil
}

// ProvisionAccount registers a new account whose first login must go through a reset.
func (srv *temporaryPasswordService) ProvisionAccount(
	ctx context.Context,
	input *usecase.IssueTemporaryPasswordInput,
) (*usecase.IssueTemporaryPasswordOutput, error) {
	if srv.identity == nil {
		return nil, errors.New("account provisioning requires an identity provider")
	}

	grant, err := srv.prepare(input)
	if err != nil {
		return nil, err
	}

	// Nobody learns the primary password; the account is usable only through the reset flow.
	primary, err := srv.generate(srv.secretLength())
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate primary password")
	}

	profile := &entity.Profile{ID: uuid.NewString(), Email: grant.email}
	if err := srv.identity.CreateUser(ctx, profile.ID, profile.Email, primary); err != nil {
		if errors.Is(err, service.ErrIdentityUserExists) {
			return nil, errors.Wrap(domainerrors.ErrConflict, util.MaskEmail(grant.email))
		}

		return nil, errors.Wrap(err, "failed to create identity user")
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		profileRepo := repoFactory.NewProfileRepository()

		if err := profileRepo.Create(ctx, profile); err != nil {
			return errors.Wrap(err, "failed to create profile")
		}

		return errors.Wrap(profileRepo.SetPendingReset(ctx, profile.ID, grant.hash, grant.expiresAt), "failed to set pending reset")
	})
	if err != nil {
		srv.log(ctx).Error("Identity user created without a profile",
			slog.String("userID", profile.ID),
			slog.String("email", util.MaskEmail(profile.Email)),
			slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to provision account")
	}

	return srv.issued(ctx, profile, grant), nil
}

// temporaryGrant is a hashed temporary password ready to be stored.
type temporaryGrant struct {
	email     string
	secret    string
	hash      string
	issuedAt  time.Time
	expiresAt time.Time
}

func (srv *temporaryPasswordService) prepare(input *usecase.IssueTemporaryPasswordInput) (*temporaryGrant, error) {
	email := strings.TrimSpace(input.Email)
	if email == "" {
		return nil, errors.WithStack(domainerrors.NewValidationError("Email is required"))
	}

	ttl := input.TTL
	if ttl < 0 {
		return nil, errors.WithStack(domainerrors.NewValidationError("TTL must be positive"))
	}
	if ttl == 0 {
		ttl = srv.defaultTTL
	}

	secret, err := srv.newSecret(email)
	if err != nil {
		return nil, err
	}

	hash, err := srv.hasher.Hash(secret)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash temporary password")
	}

	now := srv.now()

	return &temporaryGrant{
		email:     email,
		secret:    secret,
		hash:      hash,
		issuedAt:  now,
		expiresAt: now.Add(ttl).UTC(),
	}, nil
}

func (srv *temporaryPasswordService) issued(
	ctx context.Context,
	profile *entity.Profile,
	grant *temporaryGrant,
) *usecase.IssueTemporaryPasswordOutput {
	srv.log(ctx).Info("Temporary password issued",
		slog.String("userID", profile.ID),
		slog.String("algorithm", srv.hasher.Algorithm()),
		slog.Time("expiresAt", grant.expiresAt))

	publishBestEffort(ctx, srv.publisher, srv.log(ctx), entity.EventTemporaryPasswordIssued, profile.ID, profile.Email, grant.issuedAt)
	if srv.metrics != nil {
		srv.metrics.ObserveIssued()
	}

	return &usecase.IssueTemporaryPasswordOutput{
		UserID:            profile.ID,
		Email:             profile.Email,
		TemporaryPassword: grant.secret,
		ExpiresAt:         grant.expiresAt,
	}
}

// newSecret draws until the secret also passes the password policy for this email.
func (srv *temporaryPasswordService) newSecret(email string) (string, error) {
	for range maxGenerationAttempts {
		secret, err := srv.generate(srv.secretLength())
		if err != nil {
			return "", errors.Wrap(err, "failed to generate temporary password")
		}

		if srv.policy.Validate(secret, email) == nil {
			return secret, nil
		}
	}

	return "", errors.New("failed to generate a temporary password that satisfies the password policy")
}

// secretLength never drops below the policy minimum.
func (srv *temporaryPasswordService) secretLength() int {
	return max(temporaryPasswordLength, srv.policy.MinLength())
}

// generateTemporaryPassword returns a random secret of length characters with at least one character of each policy class.
func generateTemporaryPassword(length int) (string, error) {
	classes := []string{temporaryUpperAlphabet, temporaryLowerAlphabet, temporaryDigitAlphabet, temporarySymbolAlphabet}

	secret := make([]byte, 0, max(length, len(classes)))
	for _, class := range classes {
		c, err := randomChar(class)
		if err != nil {
			return "", err
		}
		secret = append(secret, c)
	}

	for len(secret) < length {
		c, err := randomChar(temporaryPasswordAlphabet)
		if err != nil {
			return "", err
		}
		secret = append(secret, c)
	}

	// Fisher-Yates so the class characters are not always first.
	for i := len(secret) - 1; i > 0; i-- {
		j, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return "", errors.Wrap(err, "crypto/rand")
		}
		secret[i], secret[j.Int64()] = secret[j.Int64()], secret[i]
	}

	return string(secret), nil
}

func randomChar(alphabet string) (byte, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(alphabet))))
	if err != nil {
		return 0, errors.Wrap(err, "crypto/rand")
	}

	return alphabet[n.Int64()], nil
}
