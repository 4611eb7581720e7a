package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/focusnow-app/focusnow-backend/internal/database"
	"github.com/focusnow-app/focusnow-backend/internal/middleware"
	"github.com/focusnow-app/focusnow-backend/internal/models"
	"github.com/focusnow-app/focusnow-backend/internal/services"
)

// Cycle Request
type CycleRequest struct {
	Tipo       string `json:"tipo"`
	Duracao    int    `json:"duracao"`
	Completado *bool  `json:"completado"`
}

// Cycle Response
type CycleResponse struct {
	CicloID       int64    `json:"cicloId"`
	XP            int      `json:"xp,omitempty"`
	Nivel         int      `json:"nivel,omitempty"`
	LevelUp       bool     `json:"levelUp"`
	NewlyUnlocked []string `json:"newlyUnlocked"`
}

// CreateCycle handles POST /api/ciclos: persists the cycle and, when it
// was completed, runs the progression engine.
func CreateCycle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Não autenticado")
		return
	}

	var req CycleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Corpo da requisição inválido")
		return
	}
	if !models.ValidCycleType(req.Tipo) {
		writeError(w, http.StatusBadRequest, "Tipo de ciclo inválido")
		return
	}
	if req.Duracao <= 0 || req.Duracao > 600 {
		writeError(w, http.StatusBadRequest, "Duração inválida")
		return
	}
	completado := true
	if req.Completado != nil {
		completado = *req.Completado
	}

	result, err := services.RecordCycle(r.Context(), userID.String(), req.Tipo, req.Duracao, completado)
	if errors.Is(err, services.ErrUserNotFound) {
		writeError(w, http.StatusBadRequest, "Usuário não encontrado")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Falha ao registrar ciclo")
		return
	}

	resp := CycleResponse{
		CicloID:       result.CycleID,
		XP:            result.XP,
		Nivel:         result.Level,
		LevelUp:       result.LevelUp,
		NewlyUnlocked: result.NewlyUnlocked,
	}
	if resp.NewlyUnlocked == nil {
		resp.NewlyUnlocked = []string{}
	}
	writeJSON(w, http.StatusCreated, resp)
}

// History handles GET /api/historico: the user's last 50 cycles, newest
// first.
func History(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Não autenticado")
		return
	}

	rows, err := database.PostgresDB.QueryContext(r.Context(), `
		SELECT id, usuario_id, tipo, duracao, completado, data_conclusao
		FROM ciclos_pomodoro
		WHERE usuario_id = $1
		ORDER BY data_conclusao DESC
		LIMIT 50
	`, userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Erro no banco de dados")
		return
	}
	defer rows.Close()

	cycles := []models.Cycle{}
	for rows.Next() {
		var c models.Cycle
		if err := rows.Scan(&c.ID, &c.UsuarioID, &c.Tipo, &c.Duracao, &c.Completado, &c.DataConclusao); err != nil {
			writeError(w, http.StatusInternalServerError, "Erro ao ler histórico")
			return
		}
		cycles = append(cycles, c)
	}
	if err := rows.Err(); err != nil {
		writeError(w, http.StatusInternalServerError, "Erro ao ler histórico")
		return
	}

	writeJSON(w, http.StatusOK, cycles)
}
