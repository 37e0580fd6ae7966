package repository

import (
	"context"

	"loginflow/internal/domain/repository"

	"github.com/stretchr/testify/mock"
)

// MockTransactionManager runs the callback against a fixed factory and records calls.
type MockTransactionManager struct {
	mock.Mock
	Factory repository.RepositoryFactory
}

// NewMockTransactionManager creates a transaction manager whose Execute calls fn with factory.
func NewMockTransactionManager(t interface {
	mock.TestingT
	Cleanup(func())
}, factory repository.RepositoryFactory) *MockTransactionManager {
	m := &MockTransactionManager{Factory: factory}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockTransactionManager) Execute(ctx context.Context, fn func(txRepoFactory repository.RepositoryFactory) error) error {
	m.Called(ctx)

	return fn(m.Factory)
}

// MockRepositoryFactory returns the repositories it was built with.
type MockRepositoryFactory struct {
	ProfileRepo    repository.ProfileRepository
	CredentialRepo repository.CredentialRepository
}

func (f *MockRepositoryFactory) NewProfileRepository() repository.ProfileRepository {
	return f.ProfileRepo
}

func (f *MockRepositoryFactory) NewCredentialRepository() repository.CredentialRepository {
	return f.CredentialRepo
}
