package domain

import (
	"context"
	"time"
)

// UserRepository defines user data access operations
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
	FindByResetTokenHash(ctx context.Context, hash string) (*User, error)
	FindByVerificationTokenHash(ctx context.Context, hash string) (*User, error)
	Update(ctx context.Context, user *User) error
}

// SessionRepository defines session data access operations
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	FindByID(ctx context.Context, sessionID string) (*Session, error)
	FindActive(ctx context.Context, sessionID string, userID uint) (*Session, error)
	FindByUserID(ctx context.Context, userID uint) ([]*Session, error)
	Update(ctx context.Context, session *Session) error
	RevokeAllForUser(ctx context.Context, userID uint, reason, revokedBy string) error
	RevokeOthersForUser(ctx context.Context, userID uint, keepSessionID, reason, revokedBy string) error
	DeleteExpired(ctx context.Context) error
}

// AssignmentRepository defines coach assignment data access operations
type AssignmentRepository interface {
	Create(ctx context.Context, a *CoachAssignment) error
	FindByID(ctx context.Context, id uint) (*CoachAssignment, error)
	FindByCoachID(ctx context.Context, coachID uint) ([]*CoachAssignment, error)
	FindByTraineeID(ctx context.Context, traineeID uint) ([]*CoachAssignment, error)
	Update(ctx context.Context, a *CoachAssignment) error
}

// PasswordService defines credential operations
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
	ValidateStrength(password string) PasswordStrength
	GenerateRandom(length int) (string, error)
}

// TokenService defines signed token operations
type TokenService interface {
	GenerateAccessToken(userID uint, email, role, sessionID string) (string, error)
	GenerateRefreshToken(userID uint, sessionID string) (string, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
	ValidateRefreshToken(token string) (*TokenClaims, error)
	ExtractBearerToken(header string) string
	AccessTokenLifetime() int64
}

// SessionService manages session lifecycle on top of SessionRepository
type SessionService interface {
	Create(ctx context.Context, userID uint, ipAddress, userAgent string, lifetime time.Duration) (*Session, error)
	Find(ctx context.Context, sessionID string) (*Session, error)
	FindActive(ctx context.Context, sessionID string, userID uint) (*Session, error)
	ListForUser(ctx context.Context, userID uint) ([]*Session, error)
	Touch(ctx context.Context, session *Session) error
	Revoke(ctx context.Context, session *Session, reason, revokedBy string) error
	RevokeAllForUser(ctx context.Context, userID uint, reason, revokedBy string) error
	RevokeOthersForUser(ctx context.Context, userID uint, keepSessionID, reason, revokedBy string) error
	Extend(ctx context.Context, session *Session, hours int) error
}

// RegisterInput carries the registration form fields
type RegisterInput struct {
	Email     string
	Username  string
	Password  string
	FirstName string
	LastName  string
}

// ClientInfo carries per-request client metadata into auth flows
type ClientInfo struct {
	IPAddress string
	UserAgent string
}

// AuthService defines the authentication orchestrator
type AuthService interface {
	Register(ctx context.Context, input RegisterInput, client ClientInfo) (*AuthResult, error)
	Login(ctx context.Context, email, password string, rememberMe bool, client ClientInfo) (*AuthResult, error)
	Logout(ctx context.Context, sessionID string) error
	LogoutAll(ctx context.Context, userID uint) error
	Refresh(ctx context.Context, refreshToken string) (*AuthResult, error)
	ChangePassword(ctx context.Context, userID uint, currentSessionID, currentPassword, newPassword string) (*AuthResult, error)
	ForgotPassword(ctx context.Context, email string) (*AuthResult, error)
	ResetPassword(ctx context.Context, token, newPassword string) (*AuthResult, error)
	VerifyEmail(ctx context.Context, token string) (*AuthResult, error)
	GetProfile(ctx context.Context, userID uint) (*User, error)
}

// AssignmentService defines coach/trainee relationship operations
type AssignmentService interface {
	Create(ctx context.Context, coachID, traineeID uint, assignmentType, createdBy string) (*CoachAssignment, error)
	Get(ctx context.Context, id uint) (*CoachAssignment, error)
	ListForUser(ctx context.Context, user *User) ([]*CoachAssignment, error)
	Pause(ctx context.Context, id uint, reason, by string) (*CoachAssignment, error)
	Resume(ctx context.Context, id uint, reason, by string) (*CoachAssignment, error)
	Complete(ctx context.Context, id uint, reason, by string) (*CoachAssignment, error)
	Terminate(ctx context.Context, id uint, reason, by string) (*CoachAssignment, error)
	RecordSession(ctx context.Context, id uint) (*CoachAssignment, error)
	CompleteSession(ctx context.Context, id uint) (*CoachAssignment, error)
	AddNote(ctx context.Context, id uint, note, author string) (*CoachAssignment, error)
	SetPreference(ctx context.Context, id uint, key, value string) (*CoachAssignment, error)
	SetGoal(ctx context.Context, id uint, key, value string) (*CoachAssignment, error)
	SetSatisfactionRating(ctx context.Context, id uint, rating float64) (*CoachAssignment, error)
	GetCoachWorkload(ctx context.Context, coachID uint) (*CoachWorkload, error)
}
