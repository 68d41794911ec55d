package config

import (
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseEnv(t *testing.T) AppConfig {
	t.Helper()
	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()
	return cfg
}

func setRequiredSecrets(t *testing.T) {
	t.Helper()
	t.Setenv("ACCESS_TOKEN_SECRET", "access-secret")
	t.Setenv("REFRESH_TOKEN_SECRET", "refresh-secret")
}

func TestAppConfig_Defaults(t *testing.T) {
	setRequiredSecrets(t)
	cfg := parseEnv(t)

	assert.Equal(t, ":6969", cfg.HTTP.Addr)
	assert.Equal(t, 100, cfg.HTTP.RateLimit)
	assert.Equal(t, 15*time.Minute, cfg.Tokens.AccessTTL)
	assert.Equal(t, 168*time.Hour, cfg.Tokens.RefreshTTL)
	assert.Equal(t, "storefront", cfg.Tokens.Issuer)
	assert.Equal(t, "tokens", cfg.Cookie.Name)
	assert.True(t, cfg.Cookie.Secure)
	assert.NoError(t, cfg.Validate())
}

func TestAppConfig_Overrides(t *testing.T) {
	setRequiredSecrets(t)
	t.Setenv("HTTP_ADDR", ":8080")
	t.Setenv("ACCESS_TOKEN_EXPIRY", "5m")
	t.Setenv("REFRESH_TOKEN_EXPIRY", "24h")
	t.Setenv("COOKIE_NAME", "session")
	t.Setenv("DB_DSN", "file:test.db")

	cfg := parseEnv(t)

	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, 5*time.Minute, cfg.Tokens.AccessTTL)
	assert.Equal(t, 24*time.Hour, cfg.Tokens.RefreshTTL)
	assert.Equal(t, "session", cfg.Cookie.Name)
	assert.Equal(t, "file:test.db", cfg.DB.DSN)
}

func TestAppConfig_Validate(t *testing.T) {
	t.Run("missing access secret", func(t *testing.T) {
		t.Setenv("REFRESH_TOKEN_SECRET", "refresh-secret")
		cfg := parseEnv(t)
		assert.ErrorContains(t, cfg.Validate(), "ACCESS_TOKEN_SECRET")
	})

	t.Run("missing refresh secret", func(t *testing.T) {
		t.Setenv("ACCESS_TOKEN_SECRET", "access-secret")
		cfg := parseEnv(t)
		assert.ErrorContains(t, cfg.Validate(), "REFRESH_TOKEN_SECRET")
	})

	t.Run("shared secret rejected", func(t *testing.T) {
		t.Setenv("ACCESS_TOKEN_SECRET", "same")
		t.Setenv("REFRESH_TOKEN_SECRET", "same")
		cfg := parseEnv(t)
		assert.ErrorContains(t, cfg.Validate(), "must differ")
	})
}

func TestAppConfig_DevMode(t *testing.T) {
	setRequiredSecrets(t)
	t.Setenv("DEV", "true")

	cfg := parseEnv(t)

	assert.True(t, cfg.IsDev)
	assert.False(t, cfg.Cookie.Secure, "dev mode drops the secure cookie flag")
}

func TestAppConfig_TokenConfig(t *testing.T) {
	setRequiredSecrets(t)
	cfg := parseEnv(t)

	tc := cfg.TokenConfig()
	assert.Equal(t, []byte("access-secret"), tc.AccessSecret)
	assert.Equal(t, []byte("refresh-secret"), tc.RefreshSecret)
	assert.Equal(t, "storefront", tc.Issuer)
}

func TestHTTPConfig_AllowedOrigins(t *testing.T) {
	cfg := HTTPConfig{}
	assert.Equal(t, "*", cfg.AllowedOrigins())

	cfg.CORSOrigins = "https://a.example, https://b.example"
	assert.Equal(t, "https://a.example,https://b.example", cfg.AllowedOrigins())
}

func TestAppConfig_SuperAdminSeed(t *testing.T) {
	setRequiredSecrets(t)
	t.Setenv("SEED_SUPERADMIN_EMAIL", "root@example.com")
	t.Setenv("SEED_SUPERADMIN_PASSWORD", "super-secret")

	cfg := parseEnv(t)
	seed := cfg.SuperAdminSeed()

	assert.Equal(t, "root@example.com", seed.Email)
	assert.False(t, seed.IsZero())
}
