// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"strings"
	"time"

	"loginflow/internal/domain/entity"
	domainerrors "loginflow/internal/domain/errors"
	"loginflow/internal/domain/repository"
	"loginflow/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// profileRepository implements the domain.ProfileRepository interface using GORM.
type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository is the constructor for profileRepository.
// It returns the repository as a domain.ProfileRepository interface, adhering to dependency inversion.
func NewProfileRepository(db *gorm.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

// FindByEmail retrieves a profile with lower(email) = lower(?).
func (repo *profileRepository) FindByEmail(ctx context.Context, email string) (*entity.Profile, error) {
	var profileM model.ProfileModel

	err := repo.db.WithContext(ctx).
		Where("lower(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		Take(&profileM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProfileNotFound
		}

		return nil, errors.Wrap(err, "failed to find profile by email")
	}

	return toProfileDomain(&profileM), nil
}

// FindByID retrieves a profile by id.
func (repo *profileRepository) FindByID(ctx context.Context, id string) (*entity.Profile, error) {
	var profileM model.ProfileModel

	err := repo.db.WithContext(ctx).Where("id = ?", id).Take(&profileM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProfileNotFound
		}

		return nil, errors.Wrap(err, "failed to find profile by id")
	}

	return toProfileDomain(&profileM), nil
}

// Create persists a new profile without a pending reset.
func (repo *profileRepository) Create(ctx context.Context, profile *entity.Profile) error {
	profileM := &model.ProfileModel{
		ID:    profile.ID,
		Email: profile.Email,
	}

	if err := repo.db.WithContext(ctx).Create(profileM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return errors.Wrap(domainerrors.ErrConflict, "profile already exists")
		}
		if isNotNullConstraintViolation(err) {
			return errors.Wrap(domainerrors.ErrValidationFailed, "missing required profile information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create profile")
	}

	profile.CreatedAt = profileM.CreatedAt
	profile.UpdatedAt = profileM.UpdatedAt

	return nil
}

// ClearPendingReset clears the reset group in a single UPDATE. Zero affected rows is success.
func (repo *profileRepository) ClearPendingReset(ctx context.Context, id string) error {
	err := repo.db.WithContext(ctx).
		Model(&model.ProfileModel{}).
		Where("id = ?", id).
		Updates(clearedResetColumns()).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to clear pending reset")
	}

	return nil
}

// ClearPendingResetIfMatch clears the reset group only while temporary_password_hash = expectedHash.
func (repo *profileRepository) ClearPendingResetIfMatch(ctx context.Context, id, expectedHash string) (bool, error) {
	result := repo.db.WithContext(ctx).
		Model(&model.ProfileModel{}).
		Where("id = ? AND temporary_password_hash = ?", id, expectedHash).
		Updates(clearedResetColumns())
	if result.Error != nil {
		return false, domainerrors.NewDatabaseExecuteError(result.Error, "failed to clear expired reset")
	}

	return result.RowsAffected > 0, nil
}

// SetPendingReset sets the reset group in a single UPDATE.
func (repo *profileRepository) SetPendingReset(ctx context.Context, id, hash string, expiresAt time.Time) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ProfileModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"requires_password_reset":  true,
			"temporary_password_hash":  hash,
			"temp_password_expires_at": expiresAt,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to set pending reset")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProfileNotFound
	}

	return nil
}

// clearedResetColumns uses a map so GORM writes the zero values.
func clearedResetColumns() map[string]any {
	return map[string]any{
		"requires_password_reset":  false,
		"temporary_password_hash":  nil,
		"temp_password_expires_at": nil,
	}
}

func toProfileDomain(profileM *model.ProfileModel) *entity.Profile {
	return &entity.Profile{
		ID:                    profileM.ID,
		Email:                 profileM.Email,
		RequiresPasswordReset: profileM.RequiresPasswordReset,
		TemporaryPasswordHash: profileM.TemporaryPasswordHash,
		TempPasswordExpiresAt: profileM.TempPasswordExpiresAt,
		CreatedAt:             profileM.CreatedAt,
		UpdatedAt:             profileM.UpdatedAt,
	}
}
