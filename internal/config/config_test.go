package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "ENV", "AUTH_TRANSPORT", "AUTH_COOKIE_NAME", "ALLOWED_ORIGINS", "COOKIE_SECURE"} {
		t.Setenv(key, "")
	}
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, AuthTransportBearer, cfg.AuthTransport)
	assert.Equal(t, "focusnow_token", cfg.AuthCookieName)
	assert.False(t, cfg.IsProduction())
	assert.Contains(t, cfg.AllowedOrigins, "capacitor://localhost")
	assert.Contains(t, cfg.AllowedOrigins, "ionic://localhost")
}

func TestAuthTransportSelection(t *testing.T) {
	t.Setenv("AUTH_TRANSPORT", "cookie")
	cfg := Load()
	assert.True(t, cfg.UseCookieAuth())

	t.Setenv("AUTH_TRANSPORT", "nonsense")
	cfg = Load()
	assert.Equal(t, AuthTransportBearer, cfg.AuthTransport)
}

func TestAllowedOriginsFromEnv(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", "https://app.focusnow.dev, https://www.focusnow.dev")
	cfg := Load()
	assert.Contains(t, cfg.AllowedOrigins, "https://app.focusnow.dev")
	assert.Contains(t, cfg.AllowedOrigins, "https://www.focusnow.dev")
}

func TestCookieSecureInProduction(t *testing.T) {
	t.Setenv("ENV", "production")
	cfg := Load()
	assert.True(t, cfg.IsProduction())
	assert.True(t, cfg.CookieSecure)
}
