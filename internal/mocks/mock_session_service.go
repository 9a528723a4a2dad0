package mocks

import (
	"context"
	"time"

	"github.com/jhonDavid20/steady-vitality/domain"
)

// MockSessionService implements domain.SessionService for testing
type MockSessionService struct {
	CreateFunc              func(ctx context.Context, userID uint, ipAddress, userAgent string, lifetime time.Duration) (*domain.Session, error)
	FindFunc                func(ctx context.Context, sessionID string) (*domain.Session, error)
	FindActiveFunc          func(ctx context.Context, sessionID string, userID uint) (*domain.Session, error)
	ListForUserFunc         func(ctx context.Context, userID uint) ([]*domain.Session, error)
	TouchFunc               func(ctx context.Context, session *domain.Session) error
	RevokeFunc              func(ctx context.Context, session *domain.Session, reason, revokedBy string) error
	RevokeAllForUserFunc    func(ctx context.Context, userID uint, reason, revokedBy string) error
	RevokeOthersForUserFunc func(ctx context.Context, userID uint, keepSessionID, reason, revokedBy string) error
	ExtendFunc              func(ctx context.Context, session *domain.Session, hours int) error
}

// NewMockSessionService creates a new MockSessionService with default behaviors
func NewMockSessionService() *MockSessionService {
	return &MockSessionService{}
}

// Create opens a new session. The default returns a valid session.
func (m *MockSessionService) Create(ctx context.Context, userID uint, ipAddress, userAgent string, lifetime time.Duration) (*domain.Session, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, userID, ipAddress, userAgent, lifetime)
	}
	now := time.Now()
	return &domain.Session{
		ID:               "session-1",
		UserID:           userID,
		Token:            "opaque-token",
		RefreshToken:     "opaque-refresh",
		ExpiresAt:        now.Add(lifetime),
		RefreshExpiresAt: now.Add(7 * 24 * time.Hour),
		IsActive:         true,
		LastAccessedAt:   now,
		IPAddress:        ipAddress,
		UserAgent:        userAgent,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

// Find looks a session up regardless of state
func (m *MockSessionService) Find(ctx context.Context, sessionID string) (*domain.Session, error) {
	if m.FindFunc != nil {
		return m.FindFunc(ctx, sessionID)
	}
	return nil, domain.ErrSessionNotFound
}

// FindActive looks up an active session scoped to a user
func (m *MockSessionService) FindActive(ctx context.Context, sessionID string, userID uint) (*domain.Session, error) {
	if m.FindActiveFunc != nil {
		return m.FindActiveFunc(ctx, sessionID, userID)
	}
	return nil, domain.ErrSessionInvalid
}

// ListForUser lists a user's sessions
func (m *MockSessionService) ListForUser(ctx context.Context, userID uint) ([]*domain.Session, error) {
	if m.ListForUserFunc != nil {
		return m.ListForUserFunc(ctx, userID)
	}
	return nil, nil
}

// Touch updates last-accessed bookkeeping
func (m *MockSessionService) Touch(ctx context.Context, session *domain.Session) error {
	if m.TouchFunc != nil {
		return m.TouchFunc(ctx, session)
	}
	return nil
}

// Revoke revokes a single session
func (m *MockSessionService) Revoke(ctx context.Context, session *domain.Session, reason, revokedBy string) error {
	if m.RevokeFunc != nil {
		return m.RevokeFunc(ctx, session, reason, revokedBy)
	}
	session.Revoke(reason, revokedBy)
	return nil
}

// RevokeAllForUser revokes every session of a user
func (m *MockSessionService) RevokeAllForUser(ctx context.Context, userID uint, reason, revokedBy string) error {
	if m.RevokeAllForUserFunc != nil {
		return m.RevokeAllForUserFunc(ctx, userID, reason, revokedBy)
	}
	return nil
}

// RevokeOthersForUser revokes every session except the kept one
func (m *MockSessionService) RevokeOthersForUser(ctx context.Context, userID uint, keepSessionID, reason, revokedBy string) error {
	if m.RevokeOthersForUserFunc != nil {
		return m.RevokeOthersForUserFunc(ctx, userID, keepSessionID, reason, revokedBy)
	}
	return nil
}

// Extend pushes a session's expiry out
func (m *MockSessionService) Extend(ctx context.Context, session *domain.Session, hours int) error {
	if m.ExtendFunc != nil {
		return m.ExtendFunc(ctx, session, hours)
	}
	session.Extend(hours)
	return nil
}

// Compile-time interface compliance verification
var _ domain.SessionService = (*MockSessionService)(nil)
