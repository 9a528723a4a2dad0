package mocks

import (
	"context"

	"github.com/jhonDavid20/steady-vitality/domain"
)

// MockSessionRepository implements domain.SessionRepository for testing
type MockSessionRepository struct {
	CreateFunc              func(ctx context.Context, session *domain.Session) error
	FindByIDFunc            func(ctx context.Context, sessionID string) (*domain.Session, error)
	FindActiveFunc          func(ctx context.Context, sessionID string, userID uint) (*domain.Session, error)
	FindByUserIDFunc        func(ctx context.Context, userID uint) ([]*domain.Session, error)
	UpdateFunc              func(ctx context.Context, session *domain.Session) error
	RevokeAllForUserFunc    func(ctx context.Context, userID uint, reason, revokedBy string) error
	RevokeOthersForUserFunc func(ctx context.Context, userID uint, keepSessionID, reason, revokedBy string) error
	DeleteExpiredFunc       func(ctx context.Context) error
}

// NewMockSessionRepository creates a new MockSessionRepository with default behaviors
func NewMockSessionRepository() *MockSessionRepository {
	return &MockSessionRepository{}
}

// Create stores a session
func (m *MockSessionRepository) Create(ctx context.Context, session *domain.Session) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, session)
	}
	return nil
}

// FindByID finds a session by id
func (m *MockSessionRepository) FindByID(ctx context.Context, sessionID string) (*domain.Session, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, sessionID)
	}
	return nil, domain.ErrSessionNotFound
}

// FindActive finds an active session scoped to a user
func (m *MockSessionRepository) FindActive(ctx context.Context, sessionID string, userID uint) (*domain.Session, error) {
	if m.FindActiveFunc != nil {
		return m.FindActiveFunc(ctx, sessionID, userID)
	}
	return nil, domain.ErrSessionNotFound
}

// FindByUserID lists a user's sessions
func (m *MockSessionRepository) FindByUserID(ctx context.Context, userID uint) ([]*domain.Session, error) {
	if m.FindByUserIDFunc != nil {
		return m.FindByUserIDFunc(ctx, userID)
	}
	return nil, nil
}

// Update persists session mutations
func (m *MockSessionRepository) Update(ctx context.Context, session *domain.Session) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, session)
	}
	return nil
}

// RevokeAllForUser bulk-revokes a user's sessions
func (m *MockSessionRepository) RevokeAllForUser(ctx context.Context, userID uint, reason, revokedBy string) error {
	if m.RevokeAllForUserFunc != nil {
		return m.RevokeAllForUserFunc(ctx, userID, reason, revokedBy)
	}
	return nil
}

// RevokeOthersForUser bulk-revokes all sessions except one
func (m *MockSessionRepository) RevokeOthersForUser(ctx context.Context, userID uint, keepSessionID, reason, revokedBy string) error {
	if m.RevokeOthersForUserFunc != nil {
		return m.RevokeOthersForUserFunc(ctx, userID, keepSessionID, reason, revokedBy)
	}
	return nil
}

// DeleteExpired removes fully expired sessions
func (m *MockSessionRepository) DeleteExpired(ctx context.Context) error {
	if m.DeleteExpiredFunc != nil {
		return m.DeleteExpiredFunc(ctx)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.SessionRepository = (*MockSessionRepository)(nil)
