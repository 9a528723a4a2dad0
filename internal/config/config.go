package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port    int    `yaml:"port"`
	GinMode string `yaml:"gin_mode"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	Secret     string `yaml:"secret"`
	Issuer     string `yaml:"issuer"`
	AccessTTL  string `yaml:"access_ttl"`
	RefreshTTL string `yaml:"refresh_ttl"`
}

type AuthConfig struct {
	BcryptCost           int `yaml:"bcrypt_cost"`
	SessionLifetimeHours int `yaml:"session_lifetime_hours"`
}

type RateLimitConfig struct {
	Enabled       bool   `yaml:"enabled"`
	Limit         int    `yaml:"limit"`
	WindowSeconds int    `yaml:"window_seconds"`
}

type ConfigFile struct {
	App       AppConfig       `yaml:"app"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	JWT       JWTConfig       `yaml:"jwt"`
	Auth      AuthConfig      `yaml:"auth"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

type Config struct {
	Port                 string
	GinMode              string
	DSN                  string
	RedisAddr            string
	RedisPassword        string
	RedisDB              int
	JWTSecret            string
	JWTIssuer            string
	AccessTTL            string
	RefreshTTL           string
	BcryptCost           int
	SessionLifetimeHours int
	RateLimitEnabled     bool
	RateLimit            int
	RateLimitWindow      time.Duration
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// Load reads config/config.yml with environment overrides on top. A .env
// file is honored when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	configFile, err := loadConfigFile(env("CONFIG_PATH", "config/config.yml"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	cfg := &Config{
		Port:                 fmt.Sprintf("%d", configFile.App.Port),
		GinMode:              configFile.App.GinMode,
		DSN:                  env("DATABASE_DSN", configFile.Database.DSN),
		RedisAddr:            env("REDIS_ADDR", configFile.Redis.Addr),
		RedisPassword:        env("REDIS_PASSWORD", configFile.Redis.Password),
		RedisDB:              configFile.Redis.DB,
		JWTSecret:            env("JWT_SECRET", configFile.JWT.Secret),
		JWTIssuer:            configFile.JWT.Issuer,
		AccessTTL:            env("JWT_ACCESS_TTL", configFile.JWT.AccessTTL),
		RefreshTTL:           env("JWT_REFRESH_TTL", configFile.JWT.RefreshTTL),
		BcryptCost:           configFile.Auth.BcryptCost,
		SessionLifetimeHours: configFile.Auth.SessionLifetimeHours,
		RateLimitEnabled:     configFile.RateLimit.Enabled,
		RateLimit:            configFile.RateLimit.Limit,
		RateLimitWindow:      time.Duration(configFile.RateLimit.WindowSeconds) * time.Second,
	}

	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.RedisDB = n
		}
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}
	return cfg, nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	var config ConfigFile
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}
	return &config, nil
}
