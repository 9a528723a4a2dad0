package app

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jhonDavid20/steady-vitality/internal/config"
	httpx "github.com/jhonDavid20/steady-vitality/internal/http"
	"github.com/jhonDavid20/steady-vitality/internal/http/handlers"
	"github.com/jhonDavid20/steady-vitality/internal/http/middleware"
)

// Run wires the container into the HTTP server and blocks
func Run(cfg *config.Config) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	c, err := NewContainer(cfg)
	if err != nil {
		return err
	}
	defer c.Close()

	// A dead Redis only disables rate limiting; the service still starts.
	rateLimitClient := c.RedisClient
	if err := c.RedisClient.Ping(context.Background()).Err(); err != nil {
		log.Printf("redis unavailable, rate limiting disabled: %v", err)
		rateLimitClient = nil
	}
	if !cfg.RateLimitEnabled {
		rateLimitClient = nil
	}

	authH := handlers.NewAuthHandlers(c.AuthSvc, c.SessionSvc)
	assignmentH := handlers.NewAssignmentHandlers(c.AssignmentSvc)

	authMW := middleware.NewAuthMW(c.TokenSvc, c.SessionSvc, c.UserRepo)
	rl := middleware.NewRateLimiter(rateLimitClient, cfg.RateLimit, cfg.RateLimitWindow)

	r := httpx.BuildRouter(authH, assignmentH, authMW, rl)

	addr := ":" + cfg.Port
	log.Printf("listening on %s", addr)
	return http.ListenAndServe(addr, r)
}
