package repository

import (
	"context"

	"loginflow/internal/domain/entity"

	"github.com/stretchr/testify/mock"
)

// MockCredentialRepository is a mock of repository.CredentialRepository.
type MockCredentialRepository struct {
	mock.Mock
}

// NewMockCredentialRepository creates a mock and asserts its expectations on cleanup.
func NewMockCredentialRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockCredentialRepository {
	m := &MockCredentialRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockCredentialRepository) FindByEmail(ctx context.Context, email string) (*entity.Credential, error) {
	args := m.Called(ctx, email)
	credential, _ := args.Get(0).(*entity.Credential)

	return credential, args.Error(1)
}

func (m *MockCredentialRepository) Create(ctx context.Context, credential *entity.Credential) error {
	return m.Called(ctx, credential).Error(0)
}

func (m *MockCredentialRepository) UpdatePasswordHash(ctx context.Context, userID, passwordHash string) error {
	return m.Called(ctx, userID, passwordHash).Error(0)
}
