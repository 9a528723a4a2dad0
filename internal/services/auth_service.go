package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/jhonDavid20/steady-vitality/domain"
)

const (
	rememberMeLifetime      = 168 * time.Hour
	verificationTokenExpiry = 24 * time.Hour
	resetTokenExpiry        = time.Hour

	// msgInvalidLogin is deliberately identical for unknown email, wrong
	// password and deactivated accounts to prevent account enumeration.
	msgInvalidLogin   = "Invalid email or password"
	msgForgotPassword = "If the email exists, a password reset link has been sent"
	msgInvalidRefresh = "Invalid or expired refresh token"
)

// AuthServiceImpl implements domain.AuthService
type AuthServiceImpl struct {
	userRepo        domain.UserRepository
	sessionSvc      domain.SessionService
	passwordSvc     domain.PasswordService
	tokenSvc        domain.TokenService
	sessionLifetime time.Duration
}

// NewAuthService creates a new auth service. A non-positive sessionLifetime
// falls back to the 24h default.
func NewAuthService(
	userRepo domain.UserRepository,
	sessionSvc domain.SessionService,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	sessionLifetime time.Duration,
) domain.AuthService {
	if sessionLifetime <= 0 {
		sessionLifetime = defaultSessionLifetime
	}
	return &AuthServiceImpl{
		userRepo:        userRepo,
		sessionSvc:      sessionSvc,
		passwordSvc:     passwordSvc,
		tokenSvc:        tokenSvc,
		sessionLifetime: sessionLifetime,
	}
}

// Register implements domain.AuthService. Validation failures are returned
// as unsuccessful results, not errors; email collisions are reported before
// username collisions.
func (s *AuthServiceImpl) Register(ctx context.Context, input domain.RegisterInput, client domain.ClientInfo) (*domain.AuthResult, error) {
	email := domain.NormalizeEmail(input.Email)

	if existing, err := s.userRepo.FindByEmail(ctx, email); err == nil && existing != nil {
		return failure("Email already registered"), nil
	}
	if existing, err := s.userRepo.FindByUsername(ctx, input.Username); err == nil && existing != nil {
		return failure("Username already taken"), nil
	}

	if strength := s.passwordSvc.ValidateStrength(input.Password); !strength.Valid {
		return failure("Password does not meet requirements: " + strings.Join(strength.Errors, "; ")), nil
	}

	hashedPassword, err := s.passwordSvc.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	verificationToken, err := generateOpaqueToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate verification token: %w", err)
	}

	user := &domain.User{
		Email:        email,
		Username:     input.Username,
		PasswordHash: hashedPassword,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Role:         domain.RoleClient,
		IsActive:     true,
		VerificationToken: domain.TokenMaterial{
			Hash:      hashToken(verificationToken),
			ExpiresAt: time.Now().Add(verificationTokenExpiry),
		},
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	session, err := s.sessionSvc.Create(ctx, user.ID, client.IPAddress, client.UserAgent, s.sessionLifetime)
	if err != nil {
		return nil, err
	}

	tokens, err := s.issueTokens(user, session.ID)
	if err != nil {
		return nil, err
	}

	log.Printf("USER_REGISTERED: user_id=%d email=%s timestamp=%s",
		user.ID, user.Email, time.Now().UTC().Format(time.RFC3339))

	return &domain.AuthResult{
		Success:   true,
		Message:   "Registration successful. Please verify your email address.",
		User:      user,
		Tokens:    tokens,
		SessionID: session.ID,
	}, nil
}

// Login implements domain.AuthService
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string, rememberMe bool, client domain.ClientInfo) (*domain.AuthResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if err == domain.ErrUserNotFound {
			return failure(msgInvalidLogin), nil
		}
		return nil, err
	}
	if !user.IsActive {
		return failure(msgInvalidLogin), nil
	}
	if !s.passwordSvc.Verify(user.PasswordHash, password) {
		return failure(msgInvalidLogin), nil
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update last login: %w", err)
	}

	lifetime := s.sessionLifetime
	if rememberMe {
		lifetime = rememberMeLifetime
	}
	session, err := s.sessionSvc.Create(ctx, user.ID, client.IPAddress, client.UserAgent, lifetime)
	if err != nil {
		return nil, err
	}

	tokens, err := s.issueTokens(user, session.ID)
	if err != nil {
		return nil, err
	}

	log.Printf("USER_LOGIN: user_id=%d session_id=%s ip=%s timestamp=%s",
		user.ID, session.ID, client.IPAddress, time.Now().UTC().Format(time.RFC3339))

	return &domain.AuthResult{
		Success:   true,
		Message:   "Login successful",
		User:      user,
		Tokens:    tokens,
		SessionID: session.ID,
	}, nil
}

// Logout implements domain.AuthService. Revoking an already-gone session is
// not an error; the miss is logged and swallowed so logout stays idempotent.
func (s *AuthServiceImpl) Logout(ctx context.Context, sessionID string) error {
	session, err := s.sessionSvc.Find(ctx, sessionID)
	if err != nil {
		if err == domain.ErrSessionNotFound {
			log.Printf("LOGOUT_SESSION_MISSING: session_id=%s timestamp=%s",
				sessionID, time.Now().UTC().Format(time.RFC3339))
			return nil
		}
		return err
	}
	return s.sessionSvc.Revoke(ctx, session, "Logged out", "user")
}

// LogoutAll implements domain.AuthService
func (s *AuthServiceImpl) LogoutAll(ctx context.Context, userID uint) error {
	if err := s.sessionSvc.RevokeAllForUser(ctx, userID, "Logged out of all devices", "user"); err != nil {
		return err
	}
	log.Printf("USER_LOGOUT_ALL: user_id=%d timestamp=%s",
		userID, time.Now().UTC().Format(time.RFC3339))
	return nil
}

// Refresh implements domain.AuthService. Every failure mode collapses into
// the same generic message; a fresh access+refresh pair stays bound to the
// original session id.
func (s *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (*domain.AuthResult, error) {
	claims, err := s.tokenSvc.ValidateRefreshToken(refreshToken)
	if err != nil {
		return failure(msgInvalidRefresh), nil
	}

	session, err := s.sessionSvc.FindActive(ctx, claims.SessionID, claims.UserID)
	if err != nil {
		if err == domain.ErrSessionInvalid {
			return failure(msgInvalidRefresh), nil
		}
		return nil, err
	}
	if !session.CanRefresh() {
		return failure(msgInvalidRefresh), nil
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return failure(msgInvalidRefresh), nil
		}
		return nil, err
	}
	if !user.IsActive {
		return failure(msgInvalidRefresh), nil
	}

	if err := s.sessionSvc.Touch(ctx, session); err != nil {
		return nil, err
	}

	tokens, err := s.issueTokens(user, session.ID)
	if err != nil {
		return nil, err
	}

	return &domain.AuthResult{
		Success:   true,
		Message:   "Token refreshed",
		User:      user,
		Tokens:    tokens,
		SessionID: session.ID,
	}, nil
}

// ChangePassword implements domain.AuthService. The session that made the
// change stays alive; every other active session is revoked.
func (s *AuthServiceImpl) ChangePassword(ctx context.Context, userID uint, currentSessionID, currentPassword, newPassword string) (*domain.AuthResult, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !s.passwordSvc.Verify(user.PasswordHash, currentPassword) {
		return failure("Current password is incorrect"), nil
	}
	if strength := s.passwordSvc.ValidateStrength(newPassword); !strength.Valid {
		return failure("Password does not meet requirements: " + strings.Join(strength.Errors, "; ")), nil
	}

	hashedPassword, err := s.passwordSvc.Hash(newPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = hashedPassword
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update password: %w", err)
	}

	if err := s.sessionSvc.RevokeOthersForUser(ctx, userID, currentSessionID, "Password changed", "user"); err != nil {
		return nil, err
	}

	log.Printf("PASSWORD_CHANGED: user_id=%d timestamp=%s",
		userID, time.Now().UTC().Format(time.RFC3339))

	return &domain.AuthResult{Success: true, Message: "Password changed successfully"}, nil
}

// ForgotPassword implements domain.AuthService. The response is identical
// whether or not the account exists.
func (s *AuthServiceImpl) ForgotPassword(ctx context.Context, email string) (*domain.AuthResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if err == domain.ErrUserNotFound {
			return &domain.AuthResult{Success: true, Message: msgForgotPassword}, nil
		}
		return nil, err
	}

	if user.IsActive {
		resetToken, err := generateOpaqueToken()
		if err != nil {
			return nil, fmt.Errorf("failed to generate reset token: %w", err)
		}
		user.ResetToken = domain.TokenMaterial{
			Hash:      hashToken(resetToken),
			ExpiresAt: time.Now().Add(resetTokenExpiry),
		}
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to store reset token: %w", err)
		}
		// Delivery of the raw token is a collaborator concern; only the
		// event is logged here.
		log.Printf("PASSWORD_RESET_REQUESTED: user_id=%d timestamp=%s",
			user.ID, time.Now().UTC().Format(time.RFC3339))
	}

	return &domain.AuthResult{Success: true, Message: msgForgotPassword}, nil
}

// ResetPassword implements domain.AuthService. A successful reset forces a
// full logout of every session the user holds.
func (s *AuthServiceImpl) ResetPassword(ctx context.Context, token, newPassword string) (*domain.AuthResult, error) {
	user, err := s.userRepo.FindByResetTokenHash(ctx, hashToken(token))
	if err != nil {
		if err == domain.ErrUserNotFound {
			return failure("Invalid or expired reset token"), nil
		}
		return nil, err
	}

	if strength := s.passwordSvc.ValidateStrength(newPassword); !strength.Valid {
		return failure("Password does not meet requirements: " + strings.Join(strength.Errors, "; ")), nil
	}

	hashedPassword, err := s.passwordSvc.Hash(newPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = hashedPassword
	user.ResetToken = domain.TokenMaterial{}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update password: %w", err)
	}

	if err := s.sessionSvc.RevokeAllForUser(ctx, user.ID, "Password reset", "system"); err != nil {
		return nil, err
	}

	log.Printf("PASSWORD_RESET: user_id=%d timestamp=%s",
		user.ID, time.Now().UTC().Format(time.RFC3339))

	return &domain.AuthResult{Success: true, Message: "Password reset successful. Please log in with your new password."}, nil
}

// VerifyEmail implements domain.AuthService
func (s *AuthServiceImpl) VerifyEmail(ctx context.Context, token string) (*domain.AuthResult, error) {
	user, err := s.userRepo.FindByVerificationTokenHash(ctx, hashToken(token))
	if err != nil {
		if err == domain.ErrUserNotFound {
			return failure("Invalid or expired verification token"), nil
		}
		return nil, err
	}

	user.IsEmailVerified = true
	user.VerificationToken = domain.TokenMaterial{}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	log.Printf("EMAIL_VERIFIED: user_id=%d email=%s timestamp=%s",
		user.ID, user.Email, time.Now().UTC().Format(time.RFC3339))

	return &domain.AuthResult{Success: true, Message: "Email verified successfully", User: user}, nil
}

// GetProfile implements domain.AuthService. Deactivated accounts read as
// missing.
func (s *AuthServiceImpl) GetProfile(ctx context.Context, userID uint) (*domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

// issueTokens binds the session id into both tokens of the pair. That link
// is what makes a signed token revocable: revoking the session invalidates
// every token referencing it.
func (s *AuthServiceImpl) issueTokens(user *domain.User, sessionID string) (*domain.TokenPair, error) {
	accessToken, err := s.tokenSvc.GenerateAccessToken(user.ID, user.Email, user.Role, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refreshToken, err := s.tokenSvc.GenerateRefreshToken(user.ID, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return &domain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    s.tokenSvc.AccessTokenLifetime(),
	}, nil
}

func failure(message string) *domain.AuthResult {
	return &domain.AuthResult{Success: false, Message: message}
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
