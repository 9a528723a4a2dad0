package domain

import (
	"strings"
	"time"
)

// User roles
const (
	RoleAdmin  = "admin"
	RoleCoach  = "coach"
	RoleClient = "client"
)

// TokenMaterial bundles a stored token digest with its expiry so the two
// fields are always written together.
type TokenMaterial struct {
	Hash      string
	ExpiresAt time.Time
}

// IsZero reports whether no token material is set
func (t TokenMaterial) IsZero() bool {
	return t.Hash == ""
}

// Usable reports whether the material is present and not expired
func (t TokenMaterial) Usable(now time.Time) bool {
	return t.Hash != "" && now.Before(t.ExpiresAt)
}

// User represents an account in the system
type User struct {
	ID                uint
	Email             string
	Username          string
	PasswordHash      string
	FirstName         string
	LastName          string
	Role              string
	IsActive          bool
	IsEmailVerified   bool
	VerificationToken TokenMaterial
	ResetToken        TokenMaterial
	LastLoginAt       *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// FullName returns the display name for the user
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// NormalizeEmail lower-cases and trims an email address. Every persistence
// and lookup path must go through this.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Session represents one login event. It is the server-side record that
// makes stateless tokens revocable: tokens embed the session id, and a
// revoked session invalidates them before their natural expiry.
type Session struct {
	ID               string
	UserID           uint
	Token            string
	RefreshToken     string
	ExpiresAt        time.Time
	RefreshExpiresAt time.Time
	IsActive         bool
	RevokedAt        *time.Time
	RevokedBy        string
	RevokedReason    string
	LastAccessedAt   time.Time
	IPAddress        string
	UserAgent        string
	DeviceType       string
	Browser          string
	OS               string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsValid reports whether the session can authenticate requests
func (s *Session) IsValid() bool {
	return s.IsActive && s.RevokedAt == nil && time.Now().Before(s.ExpiresAt)
}

// CanRefresh reports whether the session may be exchanged for new tokens
func (s *Session) CanRefresh() bool {
	return s.IsActive && s.RevokedAt == nil && time.Now().Before(s.RefreshExpiresAt)
}

// Touch updates the last-accessed timestamp; the caller persists.
func (s *Session) Touch() {
	s.LastAccessedAt = time.Now()
}

// Revoke deactivates the session. Each call overwrites reason and actor.
func (s *Session) Revoke(reason, revokedBy string) {
	now := time.Now()
	s.IsActive = false
	s.RevokedAt = &now
	s.RevokedReason = reason
	s.RevokedBy = revokedBy
}

// Extend pushes the expiry forward. Only a currently valid session can be
// extended; anything else is a no-op.
func (s *Session) Extend(hours int) {
	if !s.IsValid() {
		return
	}
	s.ExpiresAt = time.Now().Add(time.Duration(hours) * time.Hour)
}

// TokenClaims represents verified JWT claims
type TokenClaims struct {
	UserID    uint   `json:"user_id"`
	Email     string `json:"email,omitempty"`
	Role      string `json:"role,omitempty"`
	SessionID string `json:"session_id"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// TokenPair is the access/refresh pair handed to clients
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

// AuthResult represents the outcome of an auth flow. Validation failures are
// reported through Success/Message rather than errors so handlers can relay
// them verbatim.
type AuthResult struct {
	Success   bool
	Message   string
	User      *User
	Tokens    *TokenPair
	SessionID string
}

// PasswordStrength accumulates every violated rule so callers can show all
// of them at once.
type PasswordStrength struct {
	Valid  bool
	Errors []string
}
