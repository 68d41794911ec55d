package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ayodele/storefront/auth"
	"github.com/ayodele/storefront/store"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// AppConfig is the top level application configuration, loaded from
// environment variables with github.com/caarlos0/env.
type AppConfig struct {
	// IsDev relaxes cookie security so local HTTP clients work.
	IsDev bool `env:"DEV" envDefault:"false"`

	HTTP   HTTPConfig `envPrefix:"HTTP_"`
	Tokens TokensConfig
	Cookie CookieConfig `envPrefix:"COOKIE_"`
	DB     DBConfig     `envPrefix:"DB_"`
	Seed   SeedConfig   `envPrefix:"SEED_SUPERADMIN_"`
}

// HTTPConfig holds the server listen address and edge middleware knobs.
type HTTPConfig struct {
	Addr string `env:"ADDR" envDefault:":6969"`

	// CORSOrigins is a comma separated allow list. Empty allows any origin.
	CORSOrigins string `env:"CORS_ORIGINS"`

	// RateLimit is the per client request budget per minute.
	RateLimit int `env:"RATE_LIMIT" envDefault:"100"`
}

// TokensConfig configures the two token signing secrets and lifetimes.
type TokensConfig struct {
	AccessSecret  string        `env:"ACCESS_TOKEN_SECRET"`
	RefreshSecret string        `env:"REFRESH_TOKEN_SECRET"`
	AccessTTL     time.Duration `env:"ACCESS_TOKEN_EXPIRY" envDefault:"15m"`
	RefreshTTL    time.Duration `env:"REFRESH_TOKEN_EXPIRY" envDefault:"168h"`
	Issuer        string        `env:"TOKEN_ISSUER" envDefault:"storefront"`
}

// CookieConfig configures the token carrier cookie.
type CookieConfig struct {
	Name   string `env:"NAME" envDefault:"tokens"`
	Secure bool   `env:"SECURE" envDefault:"true"`
}

// DBConfig holds the sqlite connection string.
type DBConfig struct {
	DSN string `env:"DSN" envDefault:"file:storefront.db?cache=shared&_pragma=foreign_keys(1)"`
}

// SeedConfig describes the super admin bootstrapped on startup.
// Leaving it empty skips seeding.
type SeedConfig struct {
	Name     string `env:"NAME"`
	Email    string `env:"EMAIL"`
	Password string `env:"PASSWORD"`
}

// Load reads an optional .env file, then the process environment.
func Load() (AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return AppConfig{}, fmt.Errorf("load .env file: %w", err)
		}
	}

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	cfg.Sanitize()

	return cfg, cfg.Validate()
}

// Sanitize applies guardrails to values loaded from the environment.
func (c *AppConfig) Sanitize() {
	if c.HTTP.RateLimit <= 0 {
		c.HTTP.RateLimit = 100
	}
	if c.Tokens.AccessTTL <= 0 {
		c.Tokens.AccessTTL = 15 * time.Minute
	}
	if c.Tokens.RefreshTTL <= 0 {
		c.Tokens.RefreshTTL = 168 * time.Hour
	}
	if c.IsDev {
		c.Cookie.Secure = false
	}
}

// Validate rejects configurations that cannot start the service.
func (c *AppConfig) Validate() error {
	if strings.TrimSpace(c.Tokens.AccessSecret) == "" {
		return errors.New("ACCESS_TOKEN_SECRET is required")
	}
	if strings.TrimSpace(c.Tokens.RefreshSecret) == "" {
		return errors.New("REFRESH_TOKEN_SECRET is required")
	}
	if c.Tokens.AccessSecret == c.Tokens.RefreshSecret {
		return errors.New("access and refresh token secrets must differ")
	}
	if strings.TrimSpace(c.DB.DSN) == "" {
		return errors.New("DB_DSN is required")
	}
	return nil
}

// TokenConfig maps the env values onto the token service configuration.
func (c *AppConfig) TokenConfig() auth.TokenConfig {
	return auth.TokenConfig{
		AccessSecret:  []byte(c.Tokens.AccessSecret),
		RefreshSecret: []byte(c.Tokens.RefreshSecret),
		AccessTTL:     c.Tokens.AccessTTL,
		RefreshTTL:    c.Tokens.RefreshTTL,
		Issuer:        c.Tokens.Issuer,
	}
}

// SuperAdminSeed maps the env values onto the startup seed.
func (c *AppConfig) SuperAdminSeed() store.SuperAdminSeed {
	return store.SuperAdminSeed{
		Name:     c.Seed.Name,
		Email:    c.Seed.Email,
		Password: c.Seed.Password,
	}
}

// AllowedOrigins splits the CORS allow list, defaulting to any origin.
func (c *HTTPConfig) AllowedOrigins() string {
	if strings.TrimSpace(c.CORSOrigins) == "" {
		return "*"
	}
	parts := strings.Split(c.CORSOrigins, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return strings.Join(parts, ",")
}
