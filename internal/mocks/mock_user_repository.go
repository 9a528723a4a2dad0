package mocks

import (
	"context"

	"github.com/jhonDavid20/steady-vitality/domain"
)

// MockUserRepository implements domain.UserRepository for testing
type MockUserRepository struct {
	CreateFunc                      func(ctx context.Context, user *domain.User) error
	FindByEmailFunc                 func(ctx context.Context, email string) (*domain.User, error)
	FindByUsernameFunc              func(ctx context.Context, username string) (*domain.User, error)
	FindByIDFunc                    func(ctx context.Context, id uint) (*domain.User, error)
	FindByResetTokenHashFunc        func(ctx context.Context, hash string) (*domain.User, error)
	FindByVerificationTokenHashFunc func(ctx context.Context, hash string) (*domain.User, error)
	UpdateFunc                      func(ctx context.Context, user *domain.User) error
}

// NewMockUserRepository creates a new MockUserRepository with default behaviors
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{}
}

// Create creates a new user
func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	user.ID = 1
	return nil
}

// FindByEmail finds a user by email
func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, domain.ErrUserNotFound
}

// FindByUsername finds a user by username
func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.FindByUsernameFunc != nil {
		return m.FindByUsernameFunc(ctx, username)
	}
	return nil, domain.ErrUserNotFound
}

// FindByID finds a user by ID
func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrUserNotFound
}

// FindByResetTokenHash finds a user by an unexpired reset token digest
func (m *MockUserRepository) FindByResetTokenHash(ctx context.Context, hash string) (*domain.User, error) {
	if m.FindByResetTokenHashFunc != nil {
		return m.FindByResetTokenHashFunc(ctx, hash)
	}
	return nil, domain.ErrUserNotFound
}

// FindByVerificationTokenHash finds a user by an unexpired verification token digest
func (m *MockUserRepository) FindByVerificationTokenHash(ctx context.Context, hash string) (*domain.User, error) {
	if m.FindByVerificationTokenHashFunc != nil {
		return m.FindByVerificationTokenHashFunc(ctx, hash)
	}
	return nil, domain.ErrUserNotFound
}

// Update updates an existing user
func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, user)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.UserRepository = (*MockUserRepository)(nil)
