package models

import "time"

// AchievementState is the per-key value in the achievements map.
type AchievementState struct {
	Seen       bool      `json:"seen"`
	AchievedAt time.Time `json:"achieved_at"`
}
