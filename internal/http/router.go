package httpx

import (
	"github.com/gin-gonic/gin"

	"github.com/jhonDavid20/steady-vitality/domain"
	"github.com/jhonDavid20/steady-vitality/internal/http/handlers"
	"github.com/jhonDavid20/steady-vitality/internal/http/middleware"
)

// BuildRouter wires all routes. Assignment routes sit behind both the auth
// and verified-email gates; auth entry points carry the rate limiter.
func BuildRouter(ah *handlers.AuthHandlers, asg *handlers.AssignmentHandlers, authMW *middleware.AuthMW, rl *middleware.RateLimiter) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	auth := r.Group("/auth")
	auth.POST("/register", rl.Limit("register"), ah.Register)
	auth.POST("/login", rl.Limit("login"), ah.Login)
	auth.POST("/refresh", ah.Refresh)
	auth.POST("/forgot-password", rl.Limit("forgot-password"), ah.ForgotPassword)
	auth.POST("/reset-password", ah.ResetPassword)
	auth.POST("/verify-email", ah.VerifyEmail)

	authed := auth.Group("").Use(authMW.RequireAuth())
	authed.GET("/me", ah.Me)
	authed.GET("/sessions", ah.Sessions)
	authed.POST("/logout", ah.Logout)
	authed.POST("/logout-all", ah.LogoutAll)
	authed.POST("/change-password", ah.ChangePassword)

	assignments := r.Group("/assignments").Use(authMW.RequireAuth(), middleware.RequireVerifiedEmail())
	assignments.POST("", middleware.RequireRole(domain.RoleCoach), asg.Create)
	assignments.GET("", asg.List)
	assignments.GET("/:id", asg.Get)
	assignments.POST("/:id/pause", middleware.RequireRole(domain.RoleCoach), asg.Pause)
	assignments.POST("/:id/resume", middleware.RequireRole(domain.RoleCoach), asg.Resume)
	assignments.POST("/:id/complete", middleware.RequireRole(domain.RoleCoach), asg.Complete)
	assignments.POST("/:id/terminate", middleware.RequireRole(domain.RoleCoach), asg.Terminate)
	assignments.POST("/:id/sessions", middleware.RequireRole(domain.RoleCoach), asg.RecordSession)
	assignments.POST("/:id/sessions/complete", middleware.RequireRole(domain.RoleCoach), asg.CompleteSession)
	assignments.POST("/:id/notes", asg.AddNote)
	assignments.POST("/:id/rating", asg.SetRating)
	assignments.PUT("/:id/preferences", asg.SetPreference)
	assignments.PUT("/:id/goals", asg.SetGoal)

	coaches := r.Group("/coaches").Use(authMW.RequireAuth(), middleware.RequireVerifiedEmail())
	coaches.GET("/:id/workload", middleware.RequireRole(domain.RoleCoach), asg.Workload)

	return r
}
