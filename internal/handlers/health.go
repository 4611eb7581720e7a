package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/focusnow-app/focusnow-backend/internal/database"
)

// Health handles GET /health for load balancers and uptime checks.
func Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := "ok"
	code := http.StatusOK
	checks := map[string]string{"postgres": "ok", "redis": "ok"}

	if err := database.PostgresDB.PingContext(ctx); err != nil {
		checks["postgres"] = "down"
		status = "degraded"
		code = http.StatusServiceUnavailable
	}
	if err := database.RedisClient.Ping(ctx).Err(); err != nil {
		checks["redis"] = "down"
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	writeJSON(w, code, map[string]interface{}{
		"status": status,
		"checks": checks,
	})
}
