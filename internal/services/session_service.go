package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhonDavid20/steady-vitality/domain"
)

const (
	defaultSessionLifetime = 24 * time.Hour
	refreshTokenLifetime   = 7 * 24 * time.Hour
)

// SessionServiceImpl implements domain.SessionService
type SessionServiceImpl struct {
	sessions domain.SessionRepository
}

// NewSessionService creates a new session service
func NewSessionService(sessions domain.SessionRepository) domain.SessionService {
	return &SessionServiceImpl{sessions: sessions}
}

// Create implements domain.SessionService. A non-positive lifetime falls
// back to the 24h default; the refresh window is always 7 days.
func (s *SessionServiceImpl) Create(ctx context.Context, userID uint, ipAddress, userAgent string, lifetime time.Duration) (*domain.Session, error) {
	if lifetime <= 0 {
		lifetime = defaultSessionLifetime
	}

	token, err := generateOpaqueToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session token: %w", err)
	}
	refreshToken, err := generateOpaqueToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	deviceType, browser, os := classifyUserAgent(userAgent)
	now := time.Now()

	session := &domain.Session{
		ID:               uuid.NewString(),
		UserID:           userID,
		Token:            token,
		RefreshToken:     refreshToken,
		ExpiresAt:        now.Add(lifetime),
		RefreshExpiresAt: now.Add(refreshTokenLifetime),
		IsActive:         true,
		LastAccessedAt:   now,
		IPAddress:        ipAddress,
		UserAgent:        userAgent,
		DeviceType:       deviceType,
		Browser:          browser,
		OS:               os,
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return session, nil
}

// Find implements domain.SessionService
func (s *SessionServiceImpl) Find(ctx context.Context, sessionID string) (*domain.Session, error) {
	return s.sessions.FindByID(ctx, sessionID)
}

// FindActive implements domain.SessionService. A missing or expired row
// surfaces as ErrSessionInvalid, not as a storage error.
func (s *SessionServiceImpl) FindActive(ctx context.Context, sessionID string, userID uint) (*domain.Session, error) {
	session, err := s.sessions.FindActive(ctx, sessionID, userID)
	if err != nil {
		if err == domain.ErrSessionNotFound {
			return nil, domain.ErrSessionInvalid
		}
		return nil, err
	}
	if !session.IsValid() {
		return nil, domain.ErrSessionInvalid
	}
	return session, nil
}

// ListForUser implements domain.SessionService
func (s *SessionServiceImpl) ListForUser(ctx context.Context, userID uint) ([]*domain.Session, error) {
	return s.sessions.FindByUserID(ctx, userID)
}

// Touch implements domain.SessionService
func (s *SessionServiceImpl) Touch(ctx context.Context, session *domain.Session) error {
	session.Touch()
	return s.sessions.Update(ctx, session)
}

// Revoke implements domain.SessionService
func (s *SessionServiceImpl) Revoke(ctx context.Context, session *domain.Session, reason, revokedBy string) error {
	session.Revoke(reason, revokedBy)
	return s.sessions.Update(ctx, session)
}

// RevokeAllForUser implements domain.SessionService
func (s *SessionServiceImpl) RevokeAllForUser(ctx context.Context, userID uint, reason, revokedBy string) error {
	return s.sessions.RevokeAllForUser(ctx, userID, reason, revokedBy)
}

// RevokeOthersForUser implements domain.SessionService
func (s *SessionServiceImpl) RevokeOthersForUser(ctx context.Context, userID uint, keepSessionID, reason, revokedBy string) error {
	return s.sessions.RevokeOthersForUser(ctx, userID, keepSessionID, reason, revokedBy)
}

// Extend implements domain.SessionService. Extending an invalid session is
// a no-op rather than an error.
func (s *SessionServiceImpl) Extend(ctx context.Context, session *domain.Session, hours int) error {
	if !session.IsValid() {
		return nil
	}
	session.Extend(hours)
	return s.sessions.Update(ctx, session)
}

func generateOpaqueToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// classifyUserAgent is a best-effort substring classifier. It only feeds the
// session listing UI, so an unknown agent just lands in the fallback bucket.
func classifyUserAgent(userAgent string) (deviceType, browser, os string) {
	deviceType, browser, os = "desktop", "Other", "Other"
	if userAgent == "" {
		return
	}
	ua := strings.ToLower(userAgent)

	switch {
	case strings.Contains(ua, "ipad") || strings.Contains(ua, "tablet"):
		deviceType = "tablet"
	case strings.Contains(ua, "mobile") || strings.Contains(ua, "iphone") || strings.Contains(ua, "android"):
		deviceType = "mobile"
	}

	switch {
	case strings.Contains(ua, "edg"):
		browser = "Edge"
	case strings.Contains(ua, "opr") || strings.Contains(ua, "opera"):
		browser = "Opera"
	case strings.Contains(ua, "chrome"):
		browser = "Chrome"
	case strings.Contains(ua, "safari"):
		browser = "Safari"
	case strings.Contains(ua, "firefox"):
		browser = "Firefox"
	}

	switch {
	case strings.Contains(ua, "windows"):
		os = "Windows"
	case strings.Contains(ua, "mac os") || strings.Contains(ua, "macintosh"):
		os = "macOS"
	case strings.Contains(ua, "iphone") || strings.Contains(ua, "ipad") || strings.Contains(ua, "ios"):
		os = "iOS"
	case strings.Contains(ua, "android"):
		os = "Android"
	case strings.Contains(ua, "linux"):
		os = "Linux"
	}
	return
}
