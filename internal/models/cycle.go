package models

import "time"

// Cycle types as they appear on the wire.
const (
	CycleFocus      = "foco"
	CycleShortBreak = "pausa_curta"
	CycleLongBreak  = "pausa_longa"
)

// ValidCycleType reports whether tipo is one of the three known phases.
func ValidCycleType(tipo string) bool {
	switch tipo {
	case CycleFocus, CycleShortBreak, CycleLongBreak:
		return true
	}
	return false
}

// Cycle is a recorded pomodoro cycle (table ciclos_pomodoro).
type Cycle struct {
	ID            int64     `json:"id"`
	UsuarioID     string    `json:"usuario_id"`
	Tipo          string    `json:"tipo"`
	Duracao       int       `json:"duracao"`
	Completado    bool      `json:"completado"`
	DataConclusao time.Time `json:"data_conclusao"`
}

// TimerConfig holds the per-user timer durations (table configuracoes).
// JSON field names are the wire format the clients already speak.
type TimerConfig struct {
	Pomodoro          int `json:"pomodoro"`
	ShortBreak        int `json:"shortBreak"`
	LongBreak         int `json:"longBreak"`
	LongBreakInterval int `json:"longBreakInterval"`
}

// DefaultTimerConfig returns the 25/5/15/4 defaults.
func DefaultTimerConfig() TimerConfig {
	return TimerConfig{
		Pomodoro:          25,
		ShortBreak:        5,
		LongBreak:         15,
		LongBreakInterval: 4,
	}
}
