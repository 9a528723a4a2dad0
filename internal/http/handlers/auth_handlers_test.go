package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhonDavid20/steady-vitality/domain"
	"github.com/jhonDavid20/steady-vitality/internal/http/middleware"
	"github.com/jhonDavid20/steady-vitality/internal/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func postJSON(r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	b, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func authedContext(userID uint, sessionID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.CtxUserID, userID)
		c.Set(middleware.CtxSessionID, sessionID)
	}
}

func TestRegisterHandler(t *testing.T) {
	authSvc := mocks.NewMockAuthService()
	h := NewAuthHandlers(authSvc, mocks.NewMockSessionService())
	r := gin.New()
	r.POST("/auth/register", h.Register)

	body := gin.H{
		"email":     "ana@example.com",
		"username":  "ana",
		"password":  "MyStr0ng!Pass",
		"firstName": "Ana",
		"lastName":  "Souza",
	}

	authSvc.RegisterFunc = func(ctx context.Context, input domain.RegisterInput, client domain.ClientInfo) (*domain.AuthResult, error) {
		assert.Equal(t, "ana@example.com", input.Email)
		return &domain.AuthResult{
			Success: true,
			Message: "Registration successful. Please verify your email address.",
			User:    &domain.User{ID: 7, Email: input.Email, Username: input.Username, Role: domain.RoleClient, PasswordHash: "secret-hash"},
			Tokens:  &domain.TokenPair{AccessToken: "a", RefreshToken: "r", TokenType: "Bearer", ExpiresIn: 3600},
		}, nil
	}

	w := postJSON(r, "/auth/register", body)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)
	assert.NotContains(t, w.Body.String(), "secret-hash", "hashes must never be serialized")

	// Validation failures from the service surface as 400.
	authSvc.RegisterFunc = func(ctx context.Context, input domain.RegisterInput, client domain.ClientInfo) (*domain.AuthResult, error) {
		return &domain.AuthResult{Success: false, Message: "Email already registered"}, nil
	}
	w = postJSON(r, "/auth/register", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Email already registered")

	// Malformed bodies never reach the service.
	w = postJSON(r, "/auth/register", gin.H{"email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginHandler(t *testing.T) {
	authSvc := mocks.NewMockAuthService()
	h := NewAuthHandlers(authSvc, mocks.NewMockSessionService())
	r := gin.New()
	r.POST("/auth/login", h.Login)

	authSvc.LoginFunc = func(ctx context.Context, email, password string, rememberMe bool, client domain.ClientInfo) (*domain.AuthResult, error) {
		return &domain.AuthResult{
			Success: true,
			Message: "Login successful",
			User:    &domain.User{ID: 7, Email: email, Role: domain.RoleClient},
			Tokens:  &domain.TokenPair{AccessToken: "a", RefreshToken: "r", TokenType: "Bearer"},
		}, nil
	}
	w := postJSON(r, "/auth/login", gin.H{"email": "ana@example.com", "password": "pw"})
	assert.Equal(t, http.StatusOK, w.Code)

	authSvc.LoginFunc = func(ctx context.Context, email, password string, rememberMe bool, client domain.ClientInfo) (*domain.AuthResult, error) {
		return &domain.AuthResult{Success: false, Message: "Invalid email or password"}, nil
	}
	w = postJSON(r, "/auth/login", gin.H{"email": "ana@example.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid email or password")
}

func TestRefreshHandler(t *testing.T) {
	authSvc := mocks.NewMockAuthService()
	h := NewAuthHandlers(authSvc, mocks.NewMockSessionService())
	r := gin.New()
	r.POST("/auth/refresh", h.Refresh)

	authSvc.RefreshFunc = func(ctx context.Context, refreshToken string) (*domain.AuthResult, error) {
		return &domain.AuthResult{Success: false, Message: "Invalid or expired refresh token"}, nil
	}
	w := postJSON(r, "/auth/refresh", gin.H{"refreshToken": "stale"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = postJSON(r, "/auth/refresh", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestForgotPasswordHandlerAlways200(t *testing.T) {
	authSvc := mocks.NewMockAuthService()
	h := NewAuthHandlers(authSvc, mocks.NewMockSessionService())
	r := gin.New()
	r.POST("/auth/forgot-password", h.ForgotPassword)

	w := postJSON(r, "/auth/forgot-password", gin.H{"email": "ghost@example.com"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "If the email exists")
}

func TestMeHandler(t *testing.T) {
	authSvc := mocks.NewMockAuthService()
	h := NewAuthHandlers(authSvc, mocks.NewMockSessionService())
	r := gin.New()
	r.GET("/auth/me", authedContext(42, "s-1"), h.Me)

	// Default mock GetProfile reports the user missing.
	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	authSvc.GetProfileFunc = func(ctx context.Context, userID uint) (*domain.User, error) {
		assert.Equal(t, uint(42), userID)
		return &domain.User{ID: 42, Email: "ana@example.com", FirstName: "Ana", LastName: "Souza", PasswordHash: "secret-hash"}, nil
	}
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"fullName":"Ana Souza"`)
	assert.NotContains(t, w.Body.String(), "secret-hash")
}

func TestSessionsHandlerHidesTokens(t *testing.T) {
	sessionSvc := mocks.NewMockSessionService()
	sessionSvc.ListForUserFunc = func(ctx context.Context, userID uint) ([]*domain.Session, error) {
		return []*domain.Session{
			{ID: "s-1", UserID: 42, Token: "opaque-token", RefreshToken: "opaque-refresh", IsActive: true, ExpiresAt: time.Now().Add(time.Hour), Browser: "Chrome"},
			{ID: "s-2", UserID: 42, Token: "other-token", IsActive: false, RevokedReason: "Logged out"},
		}, nil
	}
	h := NewAuthHandlers(mocks.NewMockAuthService(), sessionSvc)
	r := gin.New()
	r.GET("/auth/sessions", authedContext(42, "s-1"), h.Sessions)

	req := httptest.NewRequest(http.MethodGet, "/auth/sessions", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `"isCurrent":true`)
	assert.Contains(t, body, "Logged out")
	assert.NotContains(t, body, "opaque-token")
	assert.NotContains(t, body, "opaque-refresh")
}

func TestChangePasswordHandler(t *testing.T) {
	authSvc := mocks.NewMockAuthService()
	var gotSessionID string
	authSvc.ChangePasswordFunc = func(ctx context.Context, userID uint, currentSessionID, currentPassword, newPassword string) (*domain.AuthResult, error) {
		gotSessionID = currentSessionID
		return &domain.AuthResult{Success: false, Message: "Current password is incorrect"}, nil
	}
	h := NewAuthHandlers(authSvc, mocks.NewMockSessionService())
	r := gin.New()
	r.POST("/auth/change-password", authedContext(42, "s-1"), h.ChangePassword)

	w := postJSON(r, "/auth/change-password", gin.H{"currentPassword": "wrong", "newPassword": "NewStr0ng!Pass"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "s-1", gotSessionID, "the acting session id must be forwarded")
}
