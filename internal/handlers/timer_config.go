package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"github.com/focusnow-app/focusnow-backend/internal/database"
	"github.com/focusnow-app/focusnow-backend/internal/middleware"
	"github.com/focusnow-app/focusnow-backend/internal/models"
)

// GetTimerConfig handles GET /api/me/timer-config. The row is created
// lazily with defaults on first read.
func GetTimerConfig(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Não autenticado")
		return
	}

	var cfg models.TimerConfig
	err := database.PostgresDB.QueryRowContext(r.Context(), `
		SELECT foco_min, pausa_curta_min, pausa_longa_min, ciclos_ate_pausa_longa
		FROM configuracoes WHERE usuario_id = $1
	`, userID).Scan(&cfg.Pomodoro, &cfg.ShortBreak, &cfg.LongBreak, &cfg.LongBreakInterval)

	if err == sql.ErrNoRows {
		cfg = models.DefaultTimerConfig()
		_, err = database.PostgresDB.ExecContext(r.Context(), `
			INSERT INTO configuracoes (usuario_id, foco_min, pausa_curta_min, pausa_longa_min, ciclos_ate_pausa_longa)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (usuario_id) DO NOTHING
		`, userID, cfg.Pomodoro, cfg.ShortBreak, cfg.LongBreak, cfg.LongBreakInterval)
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Erro no banco de dados")
		return
	}

	writeJSON(w, http.StatusOK, cfg)
}

// PutTimerConfig handles PUT /api/me/timer-config (upsert).
func PutTimerConfig(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Não autenticado")
		return
	}

	var req models.TimerConfig
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Corpo da requisição inválido")
		return
	}
	if !validMinutes(req.Pomodoro) || !validMinutes(req.ShortBreak) || !validMinutes(req.LongBreak) {
		writeError(w, http.StatusBadRequest, "Durações devem estar entre 1 e 180 minutos")
		return
	}
	if req.LongBreakInterval < 1 || req.LongBreakInterval > 12 {
		writeError(w, http.StatusBadRequest, "Intervalo de pausa longa deve estar entre 1 e 12 ciclos")
		return
	}

	_, err := database.PostgresDB.ExecContext(r.Context(), `
		INSERT INTO configuracoes (usuario_id, foco_min, pausa_curta_min, pausa_longa_min, ciclos_ate_pausa_longa, atualizado_em)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (usuario_id) DO UPDATE SET
			foco_min = EXCLUDED.foco_min,
			pausa_curta_min = EXCLUDED.pausa_curta_min,
			pausa_longa_min = EXCLUDED.pausa_longa_min,
			ciclos_ate_pausa_longa = EXCLUDED.ciclos_ate_pausa_longa,
			atualizado_em = NOW()
	`, userID, req.Pomodoro, req.ShortBreak, req.LongBreak, req.LongBreakInterval)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Erro no banco de dados")
		return
	}

	writeJSON(w, http.StatusOK, req)
}

func validMinutes(m int) bool {
	return m >= 1 && m <= 180
}
