// Package service provides testify mocks of the domain service interfaces.
package service

import (
	"context"
	"time"

	"loginflow/internal/domain/entity"
	"loginflow/internal/domain/service"

	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockIdentityProvider is a mock of service.IdentityProvider.
type MockIdentityProvider struct {
	mock.Mock
}

func NewMockIdentityProvider(t testingT) *MockIdentityProvider {
	m := &MockIdentityProvider{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockIdentityProvider) SignInWithPassword(ctx context.Context, email, password string) (*entity.AuthSession, error) {
	args := m.Called(ctx, email, password)
	session, _ := args.Get(0).(*entity.AuthSession)

	return session, args.Error(1)
}

func (m *MockIdentityProvider) UpdatePassword(ctx context.Context, userID, newPassword string) error {
	return m.Called(ctx, userID, newPassword).Error(0)
}

func (m *MockIdentityProvider) CreateUser(ctx context.Context, userID, email, password string) error {
	return m.Called(ctx, userID, email, password).Error(0)
}

// MockEventPublisher is a mock of service.EventPublisher.
type MockEventPublisher struct {
	mock.Mock
}

func NewMockEventPublisher(t testingT) *MockEventPublisher {
	m := &MockEventPublisher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockEventPublisher) PublishAccountEvent(ctx context.Context, event *entity.AccountEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *MockEventPublisher) Close() error {
	return m.Called().Error(0)
}

// MockTemporaryPasswordHasher is a mock of service.TemporaryPasswordHasher.
type MockTemporaryPasswordHasher struct {
	mock.Mock
}

func NewMockTemporaryPasswordHasher(t testingT) *MockTemporaryPasswordHasher {
	m := &MockTemporaryPasswordHasher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockTemporaryPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)

	return args.String(0), args.Error(1)
}

func (m *MockTemporaryPasswordHasher) Check(password, hash string) bool {
	return m.Called(password, hash).Bool(0)
}

func (m *MockTemporaryPasswordHasher) Algorithm() string {
	return m.Called().String(0)
}

// MockPasswordHasher is a mock of service.PasswordHasher.
type MockPasswordHasher struct {
	mock.Mock
}

func NewMockPasswordHasher(t testingT) *MockPasswordHasher {
	m := &MockPasswordHasher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)

	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Check(password, hash string) bool {
	return m.Called(password, hash).Bool(0)
}

// MockTokenService is a mock of service.TokenService.
type MockTokenService struct {
	mock.Mock
}

func NewMockTokenService(t testingT) *MockTokenService {
	m := &MockTokenService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockTokenService) GenerateTokens(userID, email string) (*service.TokenPair, error) {
	args := m.Called(userID, email)
	pair, _ := args.Get(0).(*service.TokenPair)

	return pair, args.Error(1)
}

func (m *MockTokenService) ValidateToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	claims, _ := args.Get(0).(*service.Claims)

	return claims, args.Error(1)
}

func (m *MockTokenService) GetRefreshTokenDuration() time.Duration {
	return m.Called().Get(0).(time.Duration)
}

// RecordingMetrics counts observed outcomes.
type RecordingMetrics struct {
	Verify map[service.VerifyOutcome]int
	Reset  map[service.ResetOutcome]int
	Issued int
}

func NewRecordingMetrics() *RecordingMetrics {
	return &RecordingMetrics{
		Verify: make(map[service.VerifyOutcome]int),
		Reset:  make(map[service.ResetOutcome]int),
	}
}

func (m *RecordingMetrics) ObserveVerify(outcome service.VerifyOutcome) { m.Verify[outcome]++ }
func (m *RecordingMetrics) ObserveReset(outcome service.ResetOutcome)   { m.Reset[outcome]++ }
func (m *RecordingMetrics) ObserveIssued()                             { m.Issued++ }
