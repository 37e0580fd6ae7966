package postgres

import (
	"context"
	"strings"

	"loginflow/internal/domain/entity"
	domainerrors "loginflow/internal/domain/errors"
	"loginflow/internal/domain/repository"
	"loginflow/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// credentialRepository implements the domain.CredentialRepository interface using GORM.
type credentialRepository struct {
	db *gorm.DB
}

// NewCredentialRepository is the constructor for credentialRepository.
func NewCredentialRepository(db *gorm.DB) repository.CredentialRepository {
	return &credentialRepository{db: db}
}

func (repo *credentialRepository) FindByEmail(ctx context.Context, email string) (*entity.Credential, error) {
	var credentialM model.CredentialModel

	err := repo.db.WithContext(ctx).
		Where("lower(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		Take(&credentialM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCredentialNotFound
		}

		return nil, errors.Wrap(err, "failed to find credential by email")
	}

	return toCredentialDomain(&credentialM), nil
}

func (repo *credentialRepository) Create(ctx context.Context, credential *entity.Credential) error {
	credentialM := &model.CredentialModel{
		UserID:       credential.UserID,
		Email:        credential.Email,
		PasswordHash: credential.PasswordHash,
	}

	if err := repo.db.WithContext(ctx).Create(credentialM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrCredentialAlreadyExists
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create credential")
	}

	credential.CreatedAt = credentialM.CreatedAt
	credential.UpdatedAt = credentialM.UpdatedAt

	return nil
}

func (repo *credentialRepository) UpdatePasswordHash(ctx context.Context, userID, passwordHash string) error {
	result := repo.db.WithContext(ctx).
		Model(&model.CredentialModel{}).
		Where("user_id = ?", userID).
		Update("password_hash", passwordHash)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update password hash")
	}
	if result.RowsAffected == 0 {
		return repository.ErrCredentialNotFound
	}

	return nil
}

func toCredentialDomain(credentialM *model.CredentialModel) *entity.Credential {
	return &entity.Credential{
		UserID:       credentialM.UserID,
		Email:        credentialM.Email,
		PasswordHash: credentialM.PasswordHash,
		CreatedAt:    credentialM.CreatedAt,
		UpdatedAt:    credentialM.UpdatedAt,
	}
}
