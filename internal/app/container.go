package app

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/jhonDavid20/steady-vitality/domain"
	"github.com/jhonDavid20/steady-vitality/internal/config"
	"github.com/jhonDavid20/steady-vitality/internal/infrastructure/auth"
	"github.com/jhonDavid20/steady-vitality/internal/infrastructure/database"
	"github.com/jhonDavid20/steady-vitality/internal/infrastructure/repositories"
	"github.com/jhonDavid20/steady-vitality/internal/services"
)

// Container holds all dependencies
type Container struct {
	Config *config.Config

	DB          *gorm.DB
	RedisClient *redis.Client

	UserRepo       domain.UserRepository
	SessionRepo    domain.SessionRepository
	AssignmentRepo domain.AssignmentRepository

	PasswordSvc   domain.PasswordService
	TokenSvc      domain.TokenService
	SessionSvc    domain.SessionService
	AuthSvc       domain.AuthService
	AssignmentSvc domain.AssignmentService
}

// NewContainer creates and initializes all dependencies
func NewContainer(cfg *config.Config) (*Container, error) {
	container := &Container{Config: cfg}

	if err := container.initDatabase(); err != nil {
		return nil, err
	}
	container.initRedis()
	container.initRepositories()
	container.initServices()

	return container, nil
}

func (c *Container) initDatabase() error {
	db, err := database.Open(c.Config.DSN)
	if err != nil {
		return err
	}
	if err := database.AutoMigrate(db); err != nil {
		return err
	}
	c.DB = db
	return nil
}

func (c *Container) initRedis() {
	c.RedisClient = database.NewRedis(c.Config.RedisAddr, c.Config.RedisPassword, c.Config.RedisDB)
}

func (c *Container) initRepositories() {
	c.UserRepo = repositories.NewUserRepository(c.DB)
	c.SessionRepo = repositories.NewSessionRepository(c.DB)
	c.AssignmentRepo = repositories.NewAssignmentRepository(c.DB)
}

func (c *Container) initServices() {
	c.PasswordSvc = auth.NewPasswordService(c.Config.BcryptCost)
	c.TokenSvc = auth.NewJWTService(
		c.Config.JWTSecret,
		c.Config.JWTIssuer,
		c.Config.AccessTTL,
		c.Config.RefreshTTL,
	)
	c.SessionSvc = services.NewSessionService(c.SessionRepo)
	c.AuthSvc = services.NewAuthService(
		c.UserRepo,
		c.SessionSvc,
		c.PasswordSvc,
		c.TokenSvc,
		time.Duration(c.Config.SessionLifetimeHours)*time.Hour,
	)
	c.AssignmentSvc = services.NewAssignmentService(c.AssignmentRepo, c.UserRepo)
}

// Close closes all connections
func (c *Container) Close() error {
	if c.RedisClient != nil {
		c.RedisClient.Close()
	}
	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}
