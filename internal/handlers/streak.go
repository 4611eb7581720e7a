package handlers

import (
	"net/http"

	"github.com/focusnow-app/focusnow-backend/internal/middleware"
	"github.com/focusnow-app/focusnow-backend/internal/services"
)

// GetStreak handles GET /api/streak?tzOffset.
func GetStreak(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Não autenticado")
		return
	}

	tzOffset := parseTzOffset(r.URL.Query().Get("tzOffset"))
	streak, err := services.UserStreak(r.Context(), userID.String(), tzOffset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Erro ao calcular streak")
		return
	}

	writeJSON(w, http.StatusOK, streak)
}
