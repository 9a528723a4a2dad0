package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jhonDavid20/steady-vitality/domain"
	"github.com/jhonDavid20/steady-vitality/internal/mocks"
)

type authFixture struct {
	userRepo    *mocks.MockUserRepository
	sessionSvc  *mocks.MockSessionService
	passwordSvc *mocks.MockPasswordService
	tokenSvc    *mocks.MockTokenService
	svc         domain.AuthService
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		userRepo:    mocks.NewMockUserRepository(),
		sessionSvc:  mocks.NewMockSessionService(),
		passwordSvc: mocks.NewMockPasswordService(),
		tokenSvc:    mocks.NewMockTokenService(),
	}
	f.svc = NewAuthService(f.userRepo, f.sessionSvc, f.passwordSvc, f.tokenSvc, 0)
	return f
}

func activeUser() *domain.User {
	return &domain.User{
		ID:           42,
		Email:        "ana@example.com",
		Username:     "ana",
		PasswordHash: "hashed:MyStr0ng!Pass",
		Role:         domain.RoleClient,
		IsActive:     true,
	}
}

func registerInput() domain.RegisterInput {
	return domain.RegisterInput{
		Email:     "Ana@Example.com",
		Username:  "ana",
		Password:  "MyStr0ng!Pass",
		FirstName: "Ana",
		LastName:  "Souza",
	}
}

func TestRegisterSuccess(t *testing.T) {
	f := newAuthFixture()
	var created *domain.User
	f.userRepo.CreateFunc = func(ctx context.Context, user *domain.User) error {
		user.ID = 7
		created = user
		return nil
	}

	result, err := f.svc.Register(context.Background(), registerInput(), domain.ClientInfo{IPAddress: "203.0.113.9"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if !result.Success {
		t.Fatalf("register failed: %s", result.Message)
	}
	if created == nil {
		t.Fatal("user was not persisted")
	}

	if created.Email != "ana@example.com" {
		t.Errorf("email should be normalized, got %q", created.Email)
	}
	if created.Role != domain.RoleClient {
		t.Errorf("new accounts get the client role, got %q", created.Role)
	}
	if created.IsEmailVerified {
		t.Error("new accounts start unverified")
	}
	if created.PasswordHash == "MyStr0ng!Pass" {
		t.Error("password must be stored hashed")
	}
	if created.VerificationToken.IsZero() {
		t.Error("a verification token should be issued")
	}
	if !created.VerificationToken.Usable(time.Now()) {
		t.Error("verification token should not start expired")
	}
	if result.Tokens == nil || result.Tokens.AccessToken == "" || result.Tokens.RefreshToken == "" {
		t.Error("registration should log the user in with a token pair")
	}
	if result.SessionID == "" {
		t.Error("registration should open a session")
	}
}

func TestRegisterConflicts(t *testing.T) {
	f := newAuthFixture()
	f.userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
		return activeUser(), nil
	}

	result, err := f.svc.Register(context.Background(), registerInput(), domain.ClientInfo{})
	if err != nil {
		t.Fatal(err)
	}
	if result.Success || result.Message != "Email already registered" {
		t.Errorf("email conflict: %+v", result)
	}

	// Email conflicts win over username conflicts; with the email free the
	// username collision is reported.
	f.userRepo.FindByEmailFunc = nil
	f.userRepo.FindByUsernameFunc = func(ctx context.Context, username string) (*domain.User, error) {
		return activeUser(), nil
	}
	result, err = f.svc.Register(context.Background(), registerInput(), domain.ClientInfo{})
	if err != nil {
		t.Fatal(err)
	}
	if result.Success || result.Message != "Username already taken" {
		t.Errorf("username conflict: %+v", result)
	}
}

func TestRegisterWeakPassword(t *testing.T) {
	f := newAuthFixture()
	f.passwordSvc.ValidateStrengthFunc = func(password string) domain.PasswordStrength {
		return domain.PasswordStrength{Valid: false, Errors: []string{"password must contain at least one number"}}
	}
	createCalled := false
	f.userRepo.CreateFunc = func(ctx context.Context, user *domain.User) error {
		createCalled = true
		return nil
	}

	result, err := f.svc.Register(context.Background(), registerInput(), domain.ClientInfo{})
	if err != nil {
		t.Fatal(err)
	}
	if result.Success {
		t.Fatal("weak password should be rejected")
	}
	if !strings.Contains(result.Message, "at least one number") {
		t.Errorf("message should carry the rule violations: %q", result.Message)
	}
	if createCalled {
		t.Error("no user should be created on validation failure")
	}
}

func TestLoginSuccess(t *testing.T) {
	f := newAuthFixture()
	user := activeUser()
	f.userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
		if email != "ana@example.com" {
			t.Errorf("lookup should use the normalized email, got %q", email)
		}
		return user, nil
	}
	var updated *domain.User
	f.userRepo.UpdateFunc = func(ctx context.Context, u *domain.User) error {
		updated = u
		return nil
	}

	result, err := f.svc.Login(context.Background(), "  Ana@Example.COM ", "MyStr0ng!Pass", false, domain.ClientInfo{IPAddress: "203.0.113.9"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if !result.Success {
		t.Fatalf("login failed: %s", result.Message)
	}
	if updated == nil || updated.LastLoginAt == nil {
		t.Error("login should record LastLoginAt")
	}
	if result.Tokens == nil || result.Tokens.TokenType != "Bearer" {
		t.Errorf("tokens = %+v", result.Tokens)
	}
	if result.SessionID == "" {
		t.Error("login should open a session")
	}
}

func TestLoginFailuresShareOneMessage(t *testing.T) {
	// Unknown email, wrong password and a deactivated account must be
	// indistinguishable to the caller.
	ctx := context.Background()

	unknown := newAuthFixture()
	r1, err := unknown.svc.Login(ctx, "ghost@example.com", "whatever", false, domain.ClientInfo{})
	if err != nil {
		t.Fatal(err)
	}

	wrongPassword := newAuthFixture()
	wrongPassword.userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
		return activeUser(), nil
	}
	r2, err := wrongPassword.svc.Login(ctx, "ana@example.com", "nope", false, domain.ClientInfo{})
	if err != nil {
		t.Fatal(err)
	}

	inactive := newAuthFixture()
	inactive.userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
		u := activeUser()
		u.IsActive = false
		return u, nil
	}
	r3, err := inactive.svc.Login(ctx, "ana@example.com", "MyStr0ng!Pass", false, domain.ClientInfo{})
	if err != nil {
		t.Fatal(err)
	}

	for i, r := range []*domain.AuthResult{r1, r2, r3} {
		if r.Success {
			t.Errorf("case %d: login should fail", i)
		}
		if r.Message != "Invalid email or password" {
			t.Errorf("case %d: message = %q", i, r.Message)
		}
		if r.Tokens != nil {
			t.Errorf("case %d: no tokens on failure", i)
		}
	}
}

func TestLoginRememberMe(t *testing.T) {
	f := newAuthFixture()
	f.userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
		return activeUser(), nil
	}
	var lifetime time.Duration
	f.sessionSvc.CreateFunc = func(ctx context.Context, userID uint, ip, ua string, lt time.Duration) (*domain.Session, error) {
		lifetime = lt
		return &domain.Session{ID: "s-1", UserID: userID, IsActive: true, ExpiresAt: time.Now().Add(lt)}, nil
	}

	if _, err := f.svc.Login(context.Background(), "ana@example.com", "MyStr0ng!Pass", true, domain.ClientInfo{}); err != nil {
		t.Fatal(err)
	}
	if lifetime != 168*time.Hour {
		t.Errorf("remember-me lifetime = %v, want 168h", lifetime)
	}

	if _, err := f.svc.Login(context.Background(), "ana@example.com", "MyStr0ng!Pass", false, domain.ClientInfo{}); err != nil {
		t.Fatal(err)
	}
	if lifetime != 24*time.Hour {
		t.Errorf("default lifetime = %v, want 24h", lifetime)
	}
}

func TestLogout(t *testing.T) {
	f := newAuthFixture()
	session := &domain.Session{ID: "s-1", UserID: 42, IsActive: true, ExpiresAt: time.Now().Add(time.Hour)}
	f.sessionSvc.FindFunc = func(ctx context.Context, sessionID string) (*domain.Session, error) {
		return session, nil
	}
	var revokedReason, revokedBy string
	f.sessionSvc.RevokeFunc = func(ctx context.Context, s *domain.Session, reason, by string) error {
		revokedReason, revokedBy = reason, by
		return nil
	}

	if err := f.svc.Logout(context.Background(), "s-1"); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if revokedReason != "Logged out" || revokedBy != "user" {
		t.Errorf("revocation = %q by %q", revokedReason, revokedBy)
	}
}

func TestLogoutMissingSessionIsIdempotent(t *testing.T) {
	f := newAuthFixture()
	// Default mock Find returns ErrSessionNotFound.
	if err := f.svc.Logout(context.Background(), "gone"); err != nil {
		t.Errorf("logout of a missing session should succeed, got %v", err)
	}
}

func TestLogoutAll(t *testing.T) {
	f := newAuthFixture()
	var gotUserID uint
	f.sessionSvc.RevokeAllForUserFunc = func(ctx context.Context, userID uint, reason, by string) error {
		gotUserID = userID
		return nil
	}
	if err := f.svc.LogoutAll(context.Background(), 42); err != nil {
		t.Fatal(err)
	}
	if gotUserID != 42 {
		t.Errorf("revoked user = %d", gotUserID)
	}
}

func TestRefreshSuccess(t *testing.T) {
	f := newAuthFixture()
	session := &domain.Session{
		ID: "s-1", UserID: 42, IsActive: true,
		ExpiresAt:        time.Now().Add(time.Hour),
		RefreshExpiresAt: time.Now().Add(24 * time.Hour),
	}
	f.tokenSvc.ValidateRefreshTokenFunc = func(token string) (*domain.TokenClaims, error) {
		return &domain.TokenClaims{UserID: 42, SessionID: "s-1"}, nil
	}
	f.sessionSvc.FindActiveFunc = func(ctx context.Context, sessionID string, userID uint) (*domain.Session, error) {
		return session, nil
	}
	f.userRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.User, error) {
		return activeUser(), nil
	}
	touched := false
	f.sessionSvc.TouchFunc = func(ctx context.Context, s *domain.Session) error {
		touched = true
		return nil
	}
	var boundSessionID string
	f.tokenSvc.GenerateAccessTokenFunc = func(userID uint, email, role, sessionID string) (string, error) {
		boundSessionID = sessionID
		return "new-access", nil
	}

	result, err := f.svc.Refresh(context.Background(), "refresh-token")
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if !result.Success {
		t.Fatalf("refresh failed: %s", result.Message)
	}
	if !touched {
		t.Error("refresh should touch the session")
	}
	if boundSessionID != "s-1" {
		t.Errorf("new tokens must stay bound to the original session, got %q", boundSessionID)
	}
	if result.SessionID != "s-1" {
		t.Errorf("SessionID = %q", result.SessionID)
	}
}

func TestRefreshFailureModes(t *testing.T) {
	ctx := context.Background()

	// Invalid token.
	f := newAuthFixture()
	r, err := f.svc.Refresh(ctx, "garbage")
	if err != nil {
		t.Fatal(err)
	}
	if r.Success || r.Message != "Invalid or expired refresh token" {
		t.Errorf("invalid token: %+v", r)
	}

	// Token valid but session revoked.
	f = newAuthFixture()
	f.tokenSvc.ValidateRefreshTokenFunc = func(token string) (*domain.TokenClaims, error) {
		return &domain.TokenClaims{UserID: 42, SessionID: "s-1"}, nil
	}
	// Default mock FindActive returns ErrSessionInvalid.
	r, err = f.svc.Refresh(ctx, "token")
	if err != nil {
		t.Fatal(err)
	}
	if r.Success || r.Message != "Invalid or expired refresh token" {
		t.Errorf("revoked session: %+v", r)
	}

	// Session past its refresh window.
	f = newAuthFixture()
	f.tokenSvc.ValidateRefreshTokenFunc = func(token string) (*domain.TokenClaims, error) {
		return &domain.TokenClaims{UserID: 42, SessionID: "s-1"}, nil
	}
	f.sessionSvc.FindActiveFunc = func(ctx context.Context, sessionID string, userID uint) (*domain.Session, error) {
		return &domain.Session{
			ID: "s-1", UserID: 42, IsActive: true,
			ExpiresAt:        time.Now().Add(time.Hour),
			RefreshExpiresAt: time.Now().Add(-time.Minute),
		}, nil
	}
	r, err = f.svc.Refresh(ctx, "token")
	if err != nil {
		t.Fatal(err)
	}
	if r.Success {
		t.Error("refresh past the refresh window should fail")
	}

	// Account deactivated since the token was issued.
	f = newAuthFixture()
	f.tokenSvc.ValidateRefreshTokenFunc = func(token string) (*domain.TokenClaims, error) {
		return &domain.TokenClaims{UserID: 42, SessionID: "s-1"}, nil
	}
	f.sessionSvc.FindActiveFunc = func(ctx context.Context, sessionID string, userID uint) (*domain.Session, error) {
		return &domain.Session{
			ID: "s-1", UserID: 42, IsActive: true,
			ExpiresAt:        time.Now().Add(time.Hour),
			RefreshExpiresAt: time.Now().Add(24 * time.Hour),
		}, nil
	}
	f.userRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.User, error) {
		u := activeUser()
		u.IsActive = false
		return u, nil
	}
	r, err = f.svc.Refresh(ctx, "token")
	if err != nil {
		t.Fatal(err)
	}
	if r.Success || r.Message != "Invalid or expired refresh token" {
		t.Errorf("inactive user: %+v", r)
	}
}

func TestChangePassword(t *testing.T) {
	f := newAuthFixture()
	user := activeUser()
	f.userRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.User, error) {
		return user, nil
	}
	var updated *domain.User
	f.userRepo.UpdateFunc = func(ctx context.Context, u *domain.User) error {
		updated = u
		return nil
	}
	var keptSessionID, reason string
	f.sessionSvc.RevokeOthersForUserFunc = func(ctx context.Context, userID uint, keepSessionID, r, by string) error {
		keptSessionID, reason = keepSessionID, r
		return nil
	}

	result, err := f.svc.ChangePassword(context.Background(), 42, "current-session", "MyStr0ng!Pass", "NewStr0ng!Pass")
	if err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}
	if !result.Success {
		t.Fatalf("change failed: %s", result.Message)
	}
	if updated == nil || updated.PasswordHash != "hashed:NewStr0ng!Pass" {
		t.Error("new password hash was not persisted")
	}
	if keptSessionID != "current-session" {
		t.Errorf("the acting session should survive, kept %q", keptSessionID)
	}
	if reason != "Password changed" {
		t.Errorf("revocation reason = %q", reason)
	}
}

func TestChangePasswordWrongCurrent(t *testing.T) {
	f := newAuthFixture()
	f.userRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.User, error) {
		return activeUser(), nil
	}
	revokeCalled := false
	f.sessionSvc.RevokeOthersForUserFunc = func(ctx context.Context, userID uint, keep, reason, by string) error {
		revokeCalled = true
		return nil
	}

	result, err := f.svc.ChangePassword(context.Background(), 42, "s-1", "wrong", "NewStr0ng!Pass")
	if err != nil {
		t.Fatal(err)
	}
	if result.Success || result.Message != "Current password is incorrect" {
		t.Errorf("result = %+v", result)
	}
	if revokeCalled {
		t.Error("no sessions should be revoked on failure")
	}
}

func TestForgotPasswordAlwaysSucceeds(t *testing.T) {
	ctx := context.Background()
	wantMsg := "If the email exists, a password reset link has been sent"

	// Unknown account.
	f := newAuthFixture()
	r, err := f.svc.ForgotPassword(ctx, "ghost@example.com")
	if err != nil {
		t.Fatal(err)
	}
	if !r.Success || r.Message != wantMsg {
		t.Errorf("unknown account: %+v", r)
	}

	// Known account: same response, but a reset token gets stored.
	f = newAuthFixture()
	user := activeUser()
	f.userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
		return user, nil
	}
	var updated *domain.User
	f.userRepo.UpdateFunc = func(ctx context.Context, u *domain.User) error {
		updated = u
		return nil
	}
	r, err = f.svc.ForgotPassword(ctx, "ana@example.com")
	if err != nil {
		t.Fatal(err)
	}
	if !r.Success || r.Message != wantMsg {
		t.Errorf("known account: %+v", r)
	}
	if updated == nil || updated.ResetToken.IsZero() {
		t.Error("a reset token should be stored for existing accounts")
	}
	if !updated.ResetToken.Usable(time.Now()) {
		t.Error("reset token should not start expired")
	}

	// Deactivated account: same response, no token.
	f = newAuthFixture()
	f.userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
		u := activeUser()
		u.IsActive = false
		return u, nil
	}
	tokenStored := false
	f.userRepo.UpdateFunc = func(ctx context.Context, u *domain.User) error {
		tokenStored = true
		return nil
	}
	r, err = f.svc.ForgotPassword(ctx, "ana@example.com")
	if err != nil {
		t.Fatal(err)
	}
	if !r.Success || r.Message != wantMsg {
		t.Errorf("inactive account: %+v", r)
	}
	if tokenStored {
		t.Error("deactivated accounts must not receive reset tokens")
	}
}

func TestResetPassword(t *testing.T) {
	f := newAuthFixture()
	user := activeUser()
	user.ResetToken = domain.TokenMaterial{Hash: "some-hash", ExpiresAt: time.Now().Add(time.Hour)}
	f.userRepo.FindByResetTokenHashFunc = func(ctx context.Context, hash string) (*domain.User, error) {
		return user, nil
	}
	var updated *domain.User
	f.userRepo.UpdateFunc = func(ctx context.Context, u *domain.User) error {
		updated = u
		return nil
	}
	var revokedUserID uint
	var revokedReason string
	f.sessionSvc.RevokeAllForUserFunc = func(ctx context.Context, userID uint, reason, by string) error {
		revokedUserID, revokedReason = userID, reason
		return nil
	}

	result, err := f.svc.ResetPassword(context.Background(), "raw-token", "NewStr0ng!Pass")
	if err != nil {
		t.Fatalf("ResetPassword: %v", err)
	}
	if !result.Success {
		t.Fatalf("reset failed: %s", result.Message)
	}
	if updated == nil || updated.PasswordHash != "hashed:NewStr0ng!Pass" {
		t.Error("new password hash was not persisted")
	}
	if !updated.ResetToken.IsZero() {
		t.Error("the reset token must be cleared after use")
	}
	if revokedUserID != 42 || revokedReason != "Password reset" {
		t.Errorf("revocation = user %d reason %q", revokedUserID, revokedReason)
	}
}

func TestResetPasswordInvalidToken(t *testing.T) {
	f := newAuthFixture()
	result, err := f.svc.ResetPassword(context.Background(), "bad-token", "NewStr0ng!Pass")
	if err != nil {
		t.Fatal(err)
	}
	if result.Success || result.Message != "Invalid or expired reset token" {
		t.Errorf("result = %+v", result)
	}
}

func TestVerifyEmail(t *testing.T) {
	f := newAuthFixture()
	user := activeUser()
	user.VerificationToken = domain.TokenMaterial{Hash: "some-hash", ExpiresAt: time.Now().Add(time.Hour)}
	f.userRepo.FindByVerificationTokenHashFunc = func(ctx context.Context, hash string) (*domain.User, error) {
		return user, nil
	}
	var updated *domain.User
	f.userRepo.UpdateFunc = func(ctx context.Context, u *domain.User) error {
		updated = u
		return nil
	}

	result, err := f.svc.VerifyEmail(context.Background(), "raw-token")
	if err != nil {
		t.Fatalf("VerifyEmail: %v", err)
	}
	if !result.Success {
		t.Fatalf("verify failed: %s", result.Message)
	}
	if updated == nil || !updated.IsEmailVerified {
		t.Error("the account should be marked verified")
	}
	if !updated.VerificationToken.IsZero() {
		t.Error("the verification token must be cleared after use")
	}
}

func TestVerifyEmailInvalidToken(t *testing.T) {
	f := newAuthFixture()
	result, err := f.svc.VerifyEmail(context.Background(), "bad-token")
	if err != nil {
		t.Fatal(err)
	}
	if result.Success {
		t.Error("unknown verification token should fail")
	}
}

func TestGetProfile(t *testing.T) {
	f := newAuthFixture()
	f.userRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.User, error) {
		return activeUser(), nil
	}
	user, err := f.svc.GetProfile(context.Background(), 42)
	if err != nil {
		t.Fatal(err)
	}
	if user.ID != 42 {
		t.Errorf("user = %+v", user)
	}

	f.userRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.User, error) {
		u := activeUser()
		u.IsActive = false
		return u, nil
	}
	if _, err := f.svc.GetProfile(context.Background(), 42); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("deactivated accounts should read as missing, got %v", err)
	}
}
