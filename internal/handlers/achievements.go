package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/focusnow-app/focusnow-backend/internal/database"
	"github.com/focusnow-app/focusnow-backend/internal/middleware"
	"github.com/focusnow-app/focusnow-backend/internal/models"
	"github.com/focusnow-app/focusnow-backend/internal/services"
)

// GetAchievements handles GET /api/me/achievements: a map keyed by
// achievement key.
func GetAchievements(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Não autenticado")
		return
	}

	rows, err := database.PostgresDB.QueryContext(r.Context(), `
		SELECT achievement_key, seen, achieved_at
		FROM user_achievements
		WHERE usuario_id = $1
	`, userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Erro no banco de dados")
		return
	}
	defer rows.Close()

	achievements := map[string]models.AchievementState{}
	for rows.Next() {
		var key string
		var state models.AchievementState
		if err := rows.Scan(&key, &state.Seen, &state.AchievedAt); err != nil {
			writeError(w, http.StatusInternalServerError, "Erro ao ler conquistas")
			return
		}
		achievements[key] = state
	}
	if err := rows.Err(); err != nil {
		writeError(w, http.StatusInternalServerError, "Erro ao ler conquistas")
		return
	}

	writeJSON(w, http.StatusOK, achievements)
}

// Achieve handles POST /api/me/achievements/achieve: idempotent insert,
// seen defaults to false and a repeat call changes nothing.
func Achieve(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Não autenticado")
		return
	}

	key, ok := decodeAchievementKey(w, r)
	if !ok {
		return
	}

	result, err := database.PostgresDB.ExecContext(r.Context(), `
		INSERT INTO user_achievements (usuario_id, achievement_key, seen)
		VALUES ($1, $2, FALSE)
		ON CONFLICT (usuario_id, achievement_key) DO NOTHING
	`, userID, key)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Erro no banco de dados")
		return
	}

	if inserted, _ := result.RowsAffected(); inserted > 0 {
		services.PublishProgression(userID.String(), models.EventAchievement,
			map[string]interface{}{"key": key})
	}

	writeJSON(w, http.StatusOK, map[string]string{"mensagem": "Conquista registrada"})
}

// MarkAchievementSeen handles POST /api/me/achievements/seen.
func MarkAchievementSeen(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Não autenticado")
		return
	}

	key, ok := decodeAchievementKey(w, r)
	if !ok {
		return
	}

	if _, err := database.PostgresDB.ExecContext(r.Context(), `
		UPDATE user_achievements SET seen = TRUE
		WHERE usuario_id = $1 AND achievement_key = $2
	`, userID, key); err != nil {
		writeError(w, http.StatusInternalServerError, "Erro no banco de dados")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"mensagem": "Conquista marcada como vista"})
}

func decodeAchievementKey(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req struct {
		Key string `json:"key"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Key == "" {
		writeError(w, http.StatusBadRequest, "Chave da conquista é obrigatória")
		return "", false
	}
	if len(req.Key) > 100 {
		writeError(w, http.StatusBadRequest, "Chave da conquista muito longa")
		return "", false
	}
	return req.Key, true
}
