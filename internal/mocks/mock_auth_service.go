package mocks

import (
	"context"

	"github.com/jhonDavid20/steady-vitality/domain"
)

// MockAuthService implements domain.AuthService for testing
type MockAuthService struct {
	RegisterFunc       func(ctx context.Context, input domain.RegisterInput, client domain.ClientInfo) (*domain.AuthResult, error)
	LoginFunc          func(ctx context.Context, email, password string, rememberMe bool, client domain.ClientInfo) (*domain.AuthResult, error)
	LogoutFunc         func(ctx context.Context, sessionID string) error
	LogoutAllFunc      func(ctx context.Context, userID uint) error
	RefreshFunc        func(ctx context.Context, refreshToken string) (*domain.AuthResult, error)
	ChangePasswordFunc func(ctx context.Context, userID uint, currentSessionID, currentPassword, newPassword string) (*domain.AuthResult, error)
	ForgotPasswordFunc func(ctx context.Context, email string) (*domain.AuthResult, error)
	ResetPasswordFunc  func(ctx context.Context, token, newPassword string) (*domain.AuthResult, error)
	VerifyEmailFunc    func(ctx context.Context, token string) (*domain.AuthResult, error)
	GetProfileFunc     func(ctx context.Context, userID uint) (*domain.User, error)
}

// NewMockAuthService creates a new MockAuthService with default behaviors
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

// Register registers a new account
func (m *MockAuthService) Register(ctx context.Context, input domain.RegisterInput, client domain.ClientInfo) (*domain.AuthResult, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, input, client)
	}
	return &domain.AuthResult{Success: true, Message: "Registration successful"}, nil
}

// Login authenticates a user
func (m *MockAuthService) Login(ctx context.Context, email, password string, rememberMe bool, client domain.ClientInfo) (*domain.AuthResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password, rememberMe, client)
	}
	return &domain.AuthResult{Success: true, Message: "Login successful"}, nil
}

// Logout revokes one session
func (m *MockAuthService) Logout(ctx context.Context, sessionID string) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, sessionID)
	}
	return nil
}

// LogoutAll revokes every session of a user
func (m *MockAuthService) LogoutAll(ctx context.Context, userID uint) error {
	if m.LogoutAllFunc != nil {
		return m.LogoutAllFunc(ctx, userID)
	}
	return nil
}

// Refresh exchanges a refresh token for a new pair
func (m *MockAuthService) Refresh(ctx context.Context, refreshToken string) (*domain.AuthResult, error) {
	if m.RefreshFunc != nil {
		return m.RefreshFunc(ctx, refreshToken)
	}
	return &domain.AuthResult{Success: true, Message: "Token refreshed"}, nil
}

// ChangePassword changes the password of an authenticated user
func (m *MockAuthService) ChangePassword(ctx context.Context, userID uint, currentSessionID, currentPassword, newPassword string) (*domain.AuthResult, error) {
	if m.ChangePasswordFunc != nil {
		return m.ChangePasswordFunc(ctx, userID, currentSessionID, currentPassword, newPassword)
	}
	return &domain.AuthResult{Success: true, Message: "Password changed successfully"}, nil
}

// ForgotPassword starts the reset flow
func (m *MockAuthService) ForgotPassword(ctx context.Context, email string) (*domain.AuthResult, error) {
	if m.ForgotPasswordFunc != nil {
		return m.ForgotPasswordFunc(ctx, email)
	}
	return &domain.AuthResult{Success: true, Message: "If the email exists, a password reset link has been sent"}, nil
}

// ResetPassword completes the reset flow
func (m *MockAuthService) ResetPassword(ctx context.Context, token, newPassword string) (*domain.AuthResult, error) {
	if m.ResetPasswordFunc != nil {
		return m.ResetPasswordFunc(ctx, token, newPassword)
	}
	return &domain.AuthResult{Success: true, Message: "Password reset successful"}, nil
}

// VerifyEmail marks an address verified
func (m *MockAuthService) VerifyEmail(ctx context.Context, token string) (*domain.AuthResult, error) {
	if m.VerifyEmailFunc != nil {
		return m.VerifyEmailFunc(ctx, token)
	}
	return &domain.AuthResult{Success: true, Message: "Email verified successfully"}, nil
}

// GetProfile loads the authenticated user's profile
func (m *MockAuthService) GetProfile(ctx context.Context, userID uint) (*domain.User, error) {
	if m.GetProfileFunc != nil {
		return m.GetProfileFunc(ctx, userID)
	}
	return nil, domain.ErrUserNotFound
}

// Compile-time interface compliance verification
var _ domain.AuthService = (*MockAuthService)(nil)
