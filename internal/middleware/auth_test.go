package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractTokenPrefersBearerHeader(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/me?token=query-token", nil)
	r.Header.Set("Authorization", "Bearer header-token")
	r.AddCookie(&http.Cookie{Name: "focusnow_token", Value: "cookie-token"})

	assert.Equal(t, "header-token", ExtractToken(r, "focusnow_token"))
}

func TestExtractTokenFallsBackToCookie(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	r.AddCookie(&http.Cookie{Name: "focusnow_token", Value: "cookie-token"})

	assert.Equal(t, "cookie-token", ExtractToken(r, "focusnow_token"))
}

func TestExtractTokenQueryParamForWebSockets(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/ws/events?token=ws-token", nil)

	assert.Equal(t, "ws-token", ExtractToken(r, "focusnow_token"))
}

func TestExtractTokenEmpty(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/me", nil)

	assert.Equal(t, "", ExtractToken(r, "focusnow_token"))
}
