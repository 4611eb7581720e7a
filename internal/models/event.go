package models

import "time"

// Progression event types written to the journal and broadcast over the
// events WebSocket.
const (
	EventCycleRecorded = "cycle_recorded"
	EventLevelUp       = "level_up"
	EventSoundUnlocked = "sound_unlocked"
	EventAchievement   = "achievement"
)

// ProgressionEvent is a journal entry (Mongo collection progression_events).
type ProgressionEvent struct {
	UserID    string                 `bson:"user_id" json:"user_id"`
	Type      string                 `bson:"type" json:"type"`
	Payload   map[string]interface{} `bson:"payload,omitempty" json:"payload,omitempty"`
	Timestamp time.Time              `bson:"timestamp" json:"timestamp"`
}
