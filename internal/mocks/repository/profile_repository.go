// Package repository provides testify mocks of the domain repository interfaces.
package repository

import (
	"context"
	"time"

	"loginflow/internal/domain/entity"

	"github.com/stretchr/testify/mock"
)

// MockProfileRepository is a mock of repository.ProfileRepository.
type MockProfileRepository struct {
	mock.Mock
}

// NewMockProfileRepository creates a mock and asserts its expectations on cleanup.
func NewMockProfileRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockProfileRepository {
	m := &MockProfileRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockProfileRepository) FindByEmail(ctx context.Context, email string) (*entity.Profile, error) {
	args := m.Called(ctx, email)
	profile, _ := args.Get(0).(*entity.Profile)

	return profile, args.Error(1)
}

func (m *MockProfileRepository) FindByID(ctx context.Context, id string) (*entity.Profile, error) {
	args := m.Called(ctx, id)
	profile, _ := args.Get(0).(*entity.Profile)

	return profile, args.Error(1)
}

func (m *MockProfileRepository) Create(ctx context.Context, profile *entity.Profile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *MockProfileRepository) ClearPendingReset(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockProfileRepository) ClearPendingResetIfMatch(ctx context.Context, id, expectedHash string) (bool, error) {
	args := m.Called(ctx, id, expectedHash)

	return args.Bool(0), args.Error(1)
}

func (m *MockProfileRepository) SetPendingReset(ctx context.Context, id, hash string, expiresAt time.Time) error {
	return m.Called(ctx, id, hash, expiresAt).Error(0)
}
