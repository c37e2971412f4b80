// Package service provides testify mocks of the domain service interfaces.
package service

import (
	"github.com/stretchr/testify/mock"

	"phresh/internal/domain/entity"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockTokenService is a mock of service.TokenService.
type MockTokenService struct {
	mock.Mock
}

// NewMockTokenService creates a mock that asserts its expectations when the test ends.
func NewMockTokenService(t testingT) *MockTokenService {
	m := &MockTokenService{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockTokenService) Issue(principal entity.Principal) (string, error) {
	args := m.Called(principal)
	return args.String(0), args.Error(1)
}

func (m *MockTokenService) Verify(token string) (entity.Principal, error) {
	args := m.Called(token)
	principal, _ := args.Get(0).(entity.Principal)

	return principal, args.Error(1)
}

// MockCredentialHasher is a mock of service.CredentialHasher.
type MockCredentialHasher struct {
	mock.Mock
}

// NewMockCredentialHasher creates a mock that asserts its expectations when the test ends.
func NewMockCredentialHasher(t testingT) *MockCredentialHasher {
	m := &MockCredentialHasher{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockCredentialHasher) Generate(plaintext string) (entity.Credential, error) {
	args := m.Called(plaintext)
	credential, _ := args.Get(0).(entity.Credential)

	return credential, args.Error(1)
}

func (m *MockCredentialHasher) Verify(plaintext string, credential entity.Credential) (bool, error) {
	args := m.Called(plaintext, credential)
	return args.Bool(0), args.Error(1)
}
