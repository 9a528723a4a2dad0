package middleware

import (
	"log"
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/jhonDavid20/steady-vitality/domain"
)

// Context keys set by the auth middleware
const (
	CtxUser      = "user"
	CtxSession   = "session"
	CtxUserID    = "user_id"
	CtxUserRole  = "user_role"
	CtxSessionID = "session_id"
)

// AuthMW authenticates requests: bearer token verification plus a session
// lookup, because a cryptographically valid token is worthless once its
// session has been revoked.
type AuthMW struct {
	tokenSvc   domain.TokenService
	sessionSvc domain.SessionService
	userRepo   domain.UserRepository
}

// NewAuthMW creates the authentication middleware
func NewAuthMW(tokenSvc domain.TokenService, sessionSvc domain.SessionService, userRepo domain.UserRepository) *AuthMW {
	return &AuthMW{tokenSvc: tokenSvc, sessionSvc: sessionSvc, userRepo: userRepo}
}

// RequireAuth rejects requests without a valid access token and live session
func (m *AuthMW) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, session, code, message := m.authenticate(c)
		if user == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"code": code, "error": message})
			c.Abort()
			return
		}
		m.attach(c, user, session)
		c.Next()
	}
}

// OptionalAuth authenticates when possible and continues anonymously when not
func (m *AuthMW) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if user, session, _, _ := m.authenticate(c); user != nil {
			m.attach(c, user, session)
		}
		c.Next()
	}
}

func (m *AuthMW) authenticate(c *gin.Context) (*domain.User, *domain.Session, string, string) {
	token := m.tokenSvc.ExtractBearerToken(c.GetHeader("Authorization"))
	if token == "" {
		return nil, nil, "missing_token", "Authorization header required"
	}

	claims, err := m.tokenSvc.ValidateAccessToken(token)
	if err != nil {
		switch err {
		case domain.ErrTokenExpired:
			return nil, nil, "token_expired", "Token expired"
		default:
			return nil, nil, "invalid_token", "Invalid token"
		}
	}

	// User and session lookups are independent; run them concurrently.
	var (
		wg      sync.WaitGroup
		user    *domain.User
		userErr error
		session *domain.Session
		sessErr error
	)
	ctx := c.Request.Context()
	wg.Add(2)
	go func() {
		defer wg.Done()
		user, userErr = m.userRepo.FindByID(ctx, claims.UserID)
	}()
	go func() {
		defer wg.Done()
		session, sessErr = m.sessionSvc.FindActive(ctx, claims.SessionID, claims.UserID)
	}()
	wg.Wait()

	if userErr != nil || !user.IsActive {
		return nil, nil, "invalid_session", "Session invalid or expired"
	}
	if sessErr != nil {
		return nil, nil, "invalid_session", "Session invalid or expired"
	}

	if err := m.sessionSvc.Touch(ctx, session); err != nil {
		// A failed touch only loses last-accessed freshness
		log.Printf("SESSION_TOUCH_FAILED: session_id=%s error=%v", session.ID, err)
	}
	return user, session, "", ""
}

func (m *AuthMW) attach(c *gin.Context, user *domain.User, session *domain.Session) {
	c.Set(CtxUser, user)
	c.Set(CtxSession, session)
	c.Set(CtxUserID, user.ID)
	c.Set(CtxUserRole, user.Role)
	c.Set(CtxSessionID, session.ID)
}

// RequireRole gates a route to the given roles. Admin always passes: the
// escalation rule is explicit here rather than scattered through handlers.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleVal, exists := c.Get(CtxUserRole)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"code": "missing_token", "error": "Authorization required"})
			c.Abort()
			return
		}
		role, _ := roleVal.(string)
		if role == domain.RoleAdmin {
			c.Next()
			return
		}
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		c.JSON(http.StatusForbidden, gin.H{
			"code":  "insufficient_role",
			"error": "Requires role: " + strings.Join(roles, " or "),
		})
		c.Abort()
	}
}

// RequireVerifiedEmail gates a route to users who verified their address
func RequireVerifiedEmail() gin.HandlerFunc {
	return func(c *gin.Context) {
		userVal, exists := c.Get(CtxUser)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"code": "missing_token", "error": "Authorization required"})
			c.Abort()
			return
		}
		user, _ := userVal.(*domain.User)
		if user == nil || !user.IsEmailVerified {
			c.JSON(http.StatusForbidden, gin.H{"code": "email_not_verified", "error": "Email address must be verified"})
			c.Abort()
			return
		}
		c.Next()
	}
}
