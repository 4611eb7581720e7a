package handlers

import (
	"net/http"
	"strconv"

	"github.com/focusnow-app/focusnow-backend/internal/middleware"
	"github.com/focusnow-app/focusnow-backend/internal/services"
)

// Activity handles GET /api/me/activity?limit: the user's recent
// progression events from the journal, newest first.
func Activity(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Não autenticado")
		return
	}

	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}

	events, err := services.RecentActivity(r.Context(), userID.String(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Erro ao carregar atividade")
		return
	}

	writeJSON(w, http.StatusOK, events)
}
