package handlers

import (
	"net/http"

	"github.com/focusnow-app/focusnow-backend/internal/database"
	"github.com/focusnow-app/focusnow-backend/internal/middleware"
	"github.com/focusnow-app/focusnow-backend/internal/services"
)

// GetPlaylist handles GET /api/me/playlist, ordered by position.
func GetPlaylist(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Não autenticado")
		return
	}

	rows, err := database.PostgresDB.QueryContext(r.Context(), `
		SELECT sound_id FROM user_playlists
		WHERE usuario_id = $1
		ORDER BY position ASC
	`, userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Erro no banco de dados")
		return
	}
	defer rows.Close()

	playlist := []string{}
	for rows.Next() {
		var soundID string
		if err := rows.Scan(&soundID); err != nil {
			writeError(w, http.StatusInternalServerError, "Erro ao ler playlist")
			return
		}
		playlist = append(playlist, soundID)
	}
	if err := rows.Err(); err != nil {
		writeError(w, http.StatusInternalServerError, "Erro ao ler playlist")
		return
	}

	writeJSON(w, http.StatusOK, playlist)
}

// PutPlaylist handles PUT /api/me/playlist: full replace, delete-all
// then reinsert in order. Saving [A,B] then [C] leaves only C. The
// body is either a bare array or {"items":[...]}.
func PutPlaylist(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Não autenticado")
		return
	}

	items, ok := decodeIDList(w, r)
	if !ok {
		return
	}
	if len(items) > 100 {
		writeError(w, http.StatusBadRequest, "Playlist muito longa")
		return
	}
	for _, soundID := range items {
		if _, ok := services.CatalogSound(soundID); !ok {
			writeError(w, http.StatusBadRequest, "Som desconhecido: "+soundID)
			return
		}
	}

	ctx := r.Context()
	tx, err := database.PostgresDB.BeginTx(ctx, nil)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Erro no banco de dados")
		return
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM user_playlists WHERE usuario_id = $1", userID); err != nil {
		writeError(w, http.StatusInternalServerError, "Erro ao salvar playlist")
		return
	}
	for position, soundID := range items {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO user_playlists (usuario_id, sound_id, position)
			VALUES ($1, $2, $3)
		`, userID, soundID, position); err != nil {
			writeError(w, http.StatusInternalServerError, "Erro ao salvar playlist")
			return
		}
	}

	if err := tx.Commit(); err != nil {
		writeError(w, http.StatusInternalServerError, "Erro ao salvar playlist")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
