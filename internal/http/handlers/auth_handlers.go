package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jhonDavid20/steady-vitality/domain"
	"github.com/jhonDavid20/steady-vitality/internal/http/middleware"
)

// AuthHandlers handles authentication HTTP requests
type AuthHandlers struct {
	authSvc    domain.AuthService
	sessionSvc domain.SessionService
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(authSvc domain.AuthService, sessionSvc domain.SessionService) *AuthHandlers {
	return &AuthHandlers{authSvc: authSvc, sessionSvc: sessionSvc}
}

// RegisterRequest represents the registration body
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Username  string `json:"username" binding:"required,min=3,max=32"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
}

// LoginRequest represents the login body
type LoginRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required"`
	RememberMe bool   `json:"rememberMe"`
}

// RefreshRequest represents the token refresh body
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// ChangePasswordRequest represents the change-password body
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

// ForgotPasswordRequest represents the forgot-password body
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest represents the reset-password body
type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

// VerifyEmailRequest represents the verify-email body
type VerifyEmailRequest struct {
	Token string `json:"token" binding:"required"`
}

// Register handles POST /auth/register
func (h *AuthHandlers) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	result, err := h.authSvc.Register(c.Request.Context(), domain.RegisterInput{
		Email:     req.Email,
		Username:  req.Username,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}, clientInfo(c))
	if err != nil {
		internalError(c, err)
		return
	}
	if !result.Success {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": result.Message})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": result.Message,
		"user":    userProjection(result.User),
		"tokens":  result.Tokens,
	})
}

// Login handles POST /auth/login
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), req.Email, req.Password, req.RememberMe, clientInfo(c))
	if err != nil {
		internalError(c, err)
		return
	}
	if !result.Success {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": result.Message})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": result.Message,
		"user":    userProjection(result.User),
		"tokens":  result.Tokens,
	})
}

// Logout handles POST /auth/logout
func (h *AuthHandlers) Logout(c *gin.Context) {
	sessionID := c.GetString(middleware.CtxSessionID)
	if err := h.authSvc.Logout(c.Request.Context(), sessionID); err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out successfully"})
}

// LogoutAll handles POST /auth/logout-all
func (h *AuthHandlers) LogoutAll(c *gin.Context) {
	userID := c.GetUint(middleware.CtxUserID)
	if err := h.authSvc.LogoutAll(c.Request.Context(), userID); err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out of all devices"})
}

// Refresh handles POST /auth/refresh
func (h *AuthHandlers) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	result, err := h.authSvc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		internalError(c, err)
		return
	}
	if !result.Success {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": result.Message})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": result.Message, "tokens": result.Tokens})
}

// Me handles GET /auth/me
func (h *AuthHandlers) Me(c *gin.Context) {
	userID := c.GetUint(middleware.CtxUserID)
	user, err := h.authSvc.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if err == domain.ErrUserNotFound {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
			return
		}
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": userProjection(user)})
}

// Sessions handles GET /auth/sessions. Raw tokens never leave the server.
func (h *AuthHandlers) Sessions(c *gin.Context) {
	userID := c.GetUint(middleware.CtxUserID)
	sessions, err := h.sessionSvc.ListForUser(c.Request.Context(), userID)
	if err != nil {
		internalError(c, err)
		return
	}

	currentID := c.GetString(middleware.CtxSessionID)
	out := make([]gin.H, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, sessionProjection(s, s.ID == currentID))
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "sessions": out})
}

// ChangePassword handles POST /auth/change-password
func (h *AuthHandlers) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	userID := c.GetUint(middleware.CtxUserID)
	sessionID := c.GetString(middleware.CtxSessionID)
	result, err := h.authSvc.ChangePassword(c.Request.Context(), userID, sessionID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		internalError(c, err)
		return
	}
	if !result.Success {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": result.Message})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": result.Message})
}

// ForgotPassword handles POST /auth/forgot-password; always 200.
func (h *AuthHandlers) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	result, err := h.authSvc.ForgotPassword(c.Request.Context(), req.Email)
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": result.Message})
}

// ResetPassword handles POST /auth/reset-password
func (h *AuthHandlers) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	result, err := h.authSvc.ResetPassword(c.Request.Context(), req.Token, req.NewPassword)
	if err != nil {
		internalError(c, err)
		return
	}
	if !result.Success {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": result.Message})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": result.Message})
}

// VerifyEmail handles POST /auth/verify-email
func (h *AuthHandlers) VerifyEmail(c *gin.Context) {
	var req VerifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	result, err := h.authSvc.VerifyEmail(c.Request.Context(), req.Token)
	if err != nil {
		internalError(c, err)
		return
	}
	if !result.Success {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": result.Message})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": result.Message})
}

func clientInfo(c *gin.Context) domain.ClientInfo {
	return domain.ClientInfo{
		IPAddress: c.ClientIP(),
		UserAgent: c.GetHeader("User-Agent"),
	}
}

// userProjection strips everything secret from a user before serialization
func userProjection(u *domain.User) gin.H {
	return gin.H{
		"id":                u.ID,
		"email":             u.Email,
		"username":          u.Username,
		"firstName":         u.FirstName,
		"lastName":          u.LastName,
		"fullName":          u.FullName(),
		"role":              u.Role,
		"isActive":          u.IsActive,
		"isEmailVerified":   u.IsEmailVerified,
		"lastLoginAt":       u.LastLoginAt,
		"createdAt":         u.CreatedAt,
	}
}

// sessionProjection exposes session metadata without the opaque tokens
func sessionProjection(s *domain.Session, current bool) gin.H {
	return gin.H{
		"id":             s.ID,
		"ipAddress":      s.IPAddress,
		"deviceType":     s.DeviceType,
		"browser":        s.Browser,
		"os":             s.OS,
		"isActive":       s.IsActive,
		"isCurrent":      current,
		"lastAccessedAt": s.LastAccessedAt,
		"expiresAt":      s.ExpiresAt,
		"createdAt":      s.CreatedAt,
		"revokedAt":      s.RevokedAt,
		"revokedReason":  s.RevokedReason,
	}
}

func internalError(c *gin.Context, err error) {
	// Internal detail stays in the log, never in the response
	c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
}
