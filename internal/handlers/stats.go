package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/focusnow-app/focusnow-backend/internal/database"
	"github.com/focusnow-app/focusnow-backend/internal/middleware"
)

// Statistics handles GET /api/estatisticas: all-time aggregates over the
// cycle log.
func Statistics(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Não autenticado")
		return
	}

	var stats struct {
		TotalCiclos       int `json:"total_ciclos"`
		CiclosFoco        int `json:"ciclos_foco"`
		CiclosCompletados int `json:"ciclos_completados"`
		TotalMinutos      int `json:"total_minutos"`
	}

	err := database.PostgresDB.QueryRowContext(r.Context(), `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE tipo = 'foco'),
			COUNT(*) FILTER (WHERE completado = TRUE),
			COALESCE(SUM(duracao) FILTER (WHERE completado = TRUE), 0)
		FROM ciclos_pomodoro
		WHERE usuario_id = $1
	`, userID).Scan(&stats.TotalCiclos, &stats.CiclosFoco, &stats.CiclosCompletados, &stats.TotalMinutos)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Erro no banco de dados")
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// FocusDay is one calendar-day aggregate for the focus calendar.
type FocusDay struct {
	Dia               string `json:"dia"`
	MinutosFoco       int    `json:"minutos_foco"`
	CiclosFoco        int    `json:"ciclos_foco"`
	CiclosCompletados int    `json:"ciclos_completados"`
	PausasCurtas      int    `json:"pausas_curtas"`
	PausasLongas      int    `json:"pausas_longas"`
}

// DateRange echoes the effective range back to the caller.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// FocusCalendar handles GET /api/dias-foco?start&end&tzOffset: per-day
// aggregates for a date range, defaulting to the current month. Day
// boundaries follow the caller's UTC offset (minutes), not the server
// timezone.
func FocusCalendar(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Não autenticado")
		return
	}

	start := r.URL.Query().Get("start")
	end := r.URL.Query().Get("end")
	if !validDate(start) || !validDate(end) {
		now := time.Now()
		firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		start = firstOfMonth.Format("2006-01-02")
		end = firstOfMonth.AddDate(0, 1, -1).Format("2006-01-02")
	}
	tzOffset := parseTzOffset(r.URL.Query().Get("tzOffset"))

	rows, err := database.PostgresDB.QueryContext(r.Context(), `
		SELECT
			to_char(data_conclusao + ($2 * interval '1 minute'), 'YYYY-MM-DD') AS dia,
			COALESCE(SUM(duracao) FILTER (WHERE tipo = 'foco' AND completado = TRUE), 0),
			COUNT(*) FILTER (WHERE tipo = 'foco' AND completado = TRUE),
			COUNT(*) FILTER (WHERE completado = TRUE),
			COUNT(*) FILTER (WHERE tipo = 'pausa_curta' AND completado = TRUE),
			COUNT(*) FILTER (WHERE tipo = 'pausa_longa' AND completado = TRUE)
		FROM ciclos_pomodoro
		WHERE usuario_id = $1
		  AND to_char(data_conclusao + ($2 * interval '1 minute'), 'YYYY-MM-DD') BETWEEN $3 AND $4
		GROUP BY dia
		ORDER BY dia ASC
	`, userID, tzOffset, start, end)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Erro no banco de dados")
		return
	}
	defer rows.Close()

	days := []FocusDay{}
	for rows.Next() {
		var d FocusDay
		if err := rows.Scan(&d.Dia, &d.MinutosFoco, &d.CiclosFoco, &d.CiclosCompletados, &d.PausasCurtas, &d.PausasLongas); err != nil {
			writeError(w, http.StatusInternalServerError, "Erro ao agregar dias")
			return
		}
		days = append(days, d)
	}
	if err := rows.Err(); err != nil {
		writeError(w, http.StatusInternalServerError, "Erro ao agregar dias")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"range": DateRange{Start: start, End: end},
		"days":  days,
	})
}

func validDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// parseTzOffset clamps the caller-supplied UTC offset to the real-world
// range; garbage falls back to UTC.
func parseTzOffset(s string) int {
	if s == "" {
		return 0
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < -840 || v > 840 {
		return 0
	}
	return v
}
