package mocks

import (
	"strings"

	"github.com/jhonDavid20/steady-vitality/domain"
)

// MockTokenService implements domain.TokenService for testing
type MockTokenService struct {
	GenerateAccessTokenFunc  func(userID uint, email, role, sessionID string) (string, error)
	GenerateRefreshTokenFunc func(userID uint, sessionID string) (string, error)
	ValidateAccessTokenFunc  func(token string) (*domain.TokenClaims, error)
	ValidateRefreshTokenFunc func(token string) (*domain.TokenClaims, error)
	ExtractBearerTokenFunc   func(header string) string
	AccessTokenLifetimeFunc  func() int64
}

// NewMockTokenService creates a new MockTokenService with default behaviors
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

// GenerateAccessToken issues an access token
func (m *MockTokenService) GenerateAccessToken(userID uint, email, role, sessionID string) (string, error) {
	if m.GenerateAccessTokenFunc != nil {
		return m.GenerateAccessTokenFunc(userID, email, role, sessionID)
	}
	return "access-token", nil
}

// GenerateRefreshToken issues a refresh token
func (m *MockTokenService) GenerateRefreshToken(userID uint, sessionID string) (string, error) {
	if m.GenerateRefreshTokenFunc != nil {
		return m.GenerateRefreshTokenFunc(userID, sessionID)
	}
	return "refresh-token", nil
}

// ValidateAccessToken validates an access token
func (m *MockTokenService) ValidateAccessToken(token string) (*domain.TokenClaims, error) {
	if m.ValidateAccessTokenFunc != nil {
		return m.ValidateAccessTokenFunc(token)
	}
	return nil, domain.ErrTokenInvalid
}

// ValidateRefreshToken validates a refresh token
func (m *MockTokenService) ValidateRefreshToken(token string) (*domain.TokenClaims, error) {
	if m.ValidateRefreshTokenFunc != nil {
		return m.ValidateRefreshTokenFunc(token)
	}
	return nil, domain.ErrRefreshTokenInvalid
}

// ExtractBearerToken pulls a token out of an Authorization header
func (m *MockTokenService) ExtractBearerToken(header string) string {
	if m.ExtractBearerTokenFunc != nil {
		return m.ExtractBearerTokenFunc(header)
	}
	fields := strings.Fields(header)
	if len(fields) == 2 && fields[0] == "Bearer" {
		return fields[1]
	}
	return ""
}

// AccessTokenLifetime reports the access token lifetime in seconds
func (m *MockTokenService) AccessTokenLifetime() int64 {
	if m.AccessTokenLifetimeFunc != nil {
		return m.AccessTokenLifetimeFunc()
	}
	return 3600
}

// Compile-time interface compliance verification
var _ domain.TokenService = (*MockTokenService)(nil)
