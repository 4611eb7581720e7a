package services

// Sound is a catalog entry. Unlock predicates are AND-combined, and a
// predicate left at zero is vacuously satisfied: a MinLevel-only sound
// unlocks by level, a MinCycles-only sound by total completed cycles.
type Sound struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	File      string `json:"file"`
	MinLevel  int    `json:"minLevel,omitempty"`
	MinCycles int    `json:"minCycles,omitempty"`
}

// SoundCatalog is the built-in track list. Order matters for the UI.
var SoundCatalog = []Sound{
	{ID: "sons-da-floresta", Title: "Sons da Floresta", File: "sons-da-floresta.mp3", MinLevel: 1},
	{ID: "sons-de-chuva", Title: "Sons de Chuva", File: "sons-de-chuva.mp3", MinCycles: 2},
	{ID: "alvida-neve", Title: "Alvida Neve", File: "alvida-neve.mp3", MinLevel: 1},
	{ID: "correnteza-tranquila", Title: "Correnteza Tranquila", File: "correnteza-tranquila.mp3", MinCycles: 2},
	{ID: "focus-flow", Title: "Focus Flow", File: "focus-flow.mp3", MinLevel: 2},
	{ID: "focus-flow-2", Title: "Focus Flow 2", File: "focus-flow-2.mp3", MinCycles: 3},
	{ID: "focus-now", Title: "Focus Now", File: "focus-now.mp3", MinLevel: 1},
	{ID: "focus-now-2", Title: "Focus Now 2", File: "focus-now-2.mp3", MinCycles: 3},
	{ID: "mar-aberto", Title: "Mar Aberto", File: "mar-aberto.mp3", MinLevel: 2},
	{ID: "more-five-minutes", Title: "More Five Minutes", File: "more-five-minutes.mp3", MinCycles: 2},
	{ID: "quietude-do-inverno", Title: "Quietude do Inverno", File: "quietude-do-inverno.mp3", MinLevel: 3},
	{ID: "snowfall-in-silence", Title: "Snowfall in Silence", File: "snowfall-in-silence.mp3", MinCycles: 4},
	{ID: "snowfall-serenity", Title: "Snowfall Serenity", File: "snowfall-serenity.mp3", MinLevel: 4},
	{ID: "take-five-minutes", Title: "Take Five Minutes", File: "take-five-minutes.mp3", MinCycles: 2},
	{ID: "vale-sussurante", Title: "Vale Sussurante", File: "vale-sussurante.mp3", MinLevel: 2},
	{ID: "vale-sussurante-2", Title: "Vale Sussurante 2", File: "vale-sussurante-2.mp3", MinLevel: 6},
}

// CatalogSound looks up a sound by ID.
func CatalogSound(id string) (Sound, bool) {
	for _, s := range SoundCatalog {
		if s.ID == id {
			return s, true
		}
	}
	return Sound{}, false
}

// Unlockable reports whether the sound's predicates hold for the given
// effective level and all-time completed cycle count (any type).
func (s Sound) Unlockable(level, totalCompletedCycles int) bool {
	if s.MinLevel > 0 && level < s.MinLevel {
		return false
	}
	if s.MinCycles > 0 && totalCompletedCycles < s.MinCycles {
		return false
	}
	return true
}
