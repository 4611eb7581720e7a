package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/focusnow-app/focusnow-backend/internal/database"
	"github.com/focusnow-app/focusnow-backend/internal/middleware"
	"github.com/focusnow-app/focusnow-backend/internal/services"
)

// GetUnlocks handles GET /api/me/unlocks: a bare array of sound IDs
// ordered by unlock time. The set is cached in Redis between timer
// completions.
func GetUnlocks(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Não autenticado")
		return
	}

	var unlocks []string
	if hit, _ := services.CachedUnlocks(userID.String(), &unlocks); hit {
		writeJSON(w, http.StatusOK, unlocks)
		return
	}

	rows, err := database.PostgresDB.QueryContext(r.Context(), `
		SELECT sound_id
		FROM user_unlocked_sounds
		WHERE usuario_id = $1
		ORDER BY unlocked_at ASC
	`, userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Erro no banco de dados")
		return
	}
	defer rows.Close()

	unlocks = []string{}
	for rows.Next() {
		var soundID string
		if err := rows.Scan(&soundID); err != nil {
			writeError(w, http.StatusInternalServerError, "Erro ao ler desbloqueios")
			return
		}
		unlocks = append(unlocks, soundID)
	}
	if err := rows.Err(); err != nil {
		writeError(w, http.StatusInternalServerError, "Erro ao ler desbloqueios")
		return
	}

	services.StoreUnlocks(userID.String(), unlocks)
	writeJSON(w, http.StatusOK, unlocks)
}

// PutUnlocks handles PUT /api/me/unlocks: duplicate-safe bulk insert
// used by clients syncing locally-earned unlocks. The set only grows.
// The body is either a bare array or {"items":[...]}.
func PutUnlocks(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Não autenticado")
		return
	}

	items, ok := decodeIDList(w, r)
	if !ok {
		return
	}
	if len(items) == 0 {
		writeJSON(w, http.StatusOK, map[string]interface{}{"ok": true, "inserted": 0})
		return
	}

	granted, err := services.GrantUnlocks(r.Context(), userID.String(), items)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Erro ao salvar desbloqueios")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"ok": true, "inserted": granted})
}

// decodeIDList accepts ["id",...] or {"items":["id",...]}.
func decodeIDList(w http.ResponseWriter, r *http.Request) ([]string, bool) {
	var raw json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeError(w, http.StatusBadRequest, "Corpo da requisição inválido")
		return nil, false
	}

	var items []string
	if err := json.Unmarshal(raw, &items); err != nil {
		var wrapped struct {
			Items []string `json:"items"`
		}
		if err := json.Unmarshal(raw, &wrapped); err != nil {
			writeError(w, http.StatusBadRequest, "Corpo da requisição inválido")
			return nil, false
		}
		items = wrapped.Items
	}
	if len(items) > 200 {
		writeError(w, http.StatusBadRequest, "Lista muito longa")
		return nil, false
	}
	return items, true
}
