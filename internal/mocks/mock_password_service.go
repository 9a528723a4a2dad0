package mocks

import (
	"github.com/jhonDavid20/steady-vitality/domain"
)

// MockPasswordService implements domain.PasswordService for testing
type MockPasswordService struct {
	HashFunc             func(password string) (string, error)
	VerifyFunc           func(hashedPassword, password string) bool
	ValidateStrengthFunc func(password string) domain.PasswordStrength
	GenerateRandomFunc   func(length int) (string, error)
}

// NewMockPasswordService creates a new MockPasswordService with default behaviors
func NewMockPasswordService() *MockPasswordService {
	return &MockPasswordService{}
}

// Hash hashes a password. Defaults to a reversible fake for assertions.
func (m *MockPasswordService) Hash(password string) (string, error) {
	if m.HashFunc != nil {
		return m.HashFunc(password)
	}
	return "hashed:" + password, nil
}

// Verify checks a password against a hash
func (m *MockPasswordService) Verify(hashedPassword, password string) bool {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(hashedPassword, password)
	}
	return hashedPassword == "hashed:"+password
}

// ValidateStrength validates password strength. Defaults to valid.
func (m *MockPasswordService) ValidateStrength(password string) domain.PasswordStrength {
	if m.ValidateStrengthFunc != nil {
		return m.ValidateStrengthFunc(password)
	}
	return domain.PasswordStrength{Valid: true}
}

// GenerateRandom generates a random password
func (m *MockPasswordService) GenerateRandom(length int) (string, error) {
	if m.GenerateRandomFunc != nil {
		return m.GenerateRandomFunc(length)
	}
	return "Aa1!Aa1!Aa1!Aa1!", nil
}

// Compile-time interface compliance verification
var _ domain.PasswordService = (*MockPasswordService)(nil)
