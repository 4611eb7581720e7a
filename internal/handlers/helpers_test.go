package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/focusnow-app/focusnow-backend/internal/database"
	"github.com/focusnow-app/focusnow-backend/internal/middleware"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

// newMockDB swaps the global Postgres handle for a sqlmock and points
// Redis at an unreachable address so cache and publish calls fail soft.
func newMockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	database.PostgresDB = db
	if database.RedisClient == nil {
		database.RedisClient = redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	}
	return mock
}

// authedRequest builds a request carrying the user ID the auth
// middleware would have injected.
func authedRequest(method, target, body string, userID uuid.UUID) *http.Request {
	r := httptest.NewRequest(method, target, strings.NewReader(body))
	return r.WithContext(context.WithValue(r.Context(), middleware.UserIDKey, userID))
}
