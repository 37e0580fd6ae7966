// Package usecase provides testify mocks of the usecase interfaces.
package usecase

import (
	"context"

	"loginflow/internal/usecase"

	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockLoginUsecase is a mock of usecase.LoginUsecase.
type MockLoginUsecase struct {
	mock.Mock
}

func NewMockLoginUsecase(t testingT) *MockLoginUsecase {
	m := &MockLoginUsecase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockLoginUsecase) VerifyLogin(ctx context.Context, input *usecase.VerifyLoginInput) (*usecase.VerifyLoginOutput, error) {
	args := m.Called(ctx, input)
	output, _ := args.Get(0).(*usecase.VerifyLoginOutput)

	return output, args.Error(1)
}

// MockPasswordResetUsecase is a mock of usecase.PasswordResetUsecase.
type MockPasswordResetUsecase struct {
	mock.Mock
}

func NewMockPasswordResetUsecase(t testingT) *MockPasswordResetUsecase {
	m := &MockPasswordResetUsecase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockPasswordResetUsecase) CompletePasswordReset(ctx context.Context, input *usecase.CompletePasswordResetInput) error {
	return m.Called(ctx, input).Error(0)
}

// MockTemporaryPasswordUsecase is a mock of usecase.TemporaryPasswordUsecase.
type MockTemporaryPasswordUsecase struct {
	mock.Mock
}

func NewMockTemporaryPasswordUsecase(t testingT) *MockTemporaryPasswordUsecase {
	m := &MockTemporaryPasswordUsecase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockTemporaryPasswordUsecase) IssueTemporaryPassword(
	ctx context.Context,
	input *usecase.IssueTemporaryPasswordInput,
) (*usecase.IssueTemporaryPasswordOutput, error) {
	args := m.Called(ctx, input)
	output, _ := args.Get(0).(*usecase.IssueTemporaryPasswordOutput)

	return output, args.Error(1)
}

func (m *MockTemporaryPasswordUsecase) ProvisionAccount(
	ctx context.Context,
	input *usecase.IssueTemporaryPasswordInput,
) (*usecase.IssueTemporaryPasswordOutput, error) {
	args := m.Called(ctx, input)
	output, _ := args.Get(0).(*usecase.IssueTemporaryPasswordOutput)

	return output, args.Error(1)
}
