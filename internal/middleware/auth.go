package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/focusnow-app/focusnow-backend/internal/config"
	"github.com/focusnow-app/focusnow-backend/internal/services"

	"github.com/google/uuid"
)

type contextKey string

const (
	// UserIDKey carries the authenticated user's UUID.
	UserIDKey contextKey = "user_id"
	// TokenKey carries the raw session token (logout needs it).
	TokenKey contextKey = "session_token"
)

// ExtractToken pulls the session token from the Authorization header or,
// failing that, from the configured HttpOnly cookie. Both transports are
// always accepted so web and mobile clients can coexist.
func ExtractToken(r *http.Request, cookieName string) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	if cookieName != "" {
		if c, err := r.Cookie(cookieName); err == nil {
			return c.Value
		}
	}
	// Browsers cannot set headers on WebSocket dials; allow query param
	// for the events socket.
	return r.URL.Query().Get("token")
}

// RequireAuth validates the session and injects the user ID into the
// request context. 401 on any failure.
func RequireAuth(cfg *config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ExtractToken(r, cfg.AuthCookieName)
			if token == "" {
				writeUnauthorized(w, "Token não fornecido")
				return
			}

			userID, valid, err := services.ValidateSession(token)
			if err != nil || !valid {
				writeUnauthorized(w, "Sessão inválida ou expirada")
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			ctx = context.WithValue(ctx, TokenKey, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserID returns the authenticated user from the request context.
func UserID(r *http.Request) (uuid.UUID, bool) {
	id, ok := r.Context().Value(UserIDKey).(uuid.UUID)
	return id, ok
}

// SessionToken returns the raw token from the request context.
func SessionToken(r *http.Request) string {
	token, _ := r.Context().Value(TokenKey).(string)
	return token
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"` + message + `"}`))
}
