package client

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/focusnow-app/focusnow-backend/internal/models"
)

// State is the locally mirrored slice of server-held user state. It is
// what the UI reads; the server stays the source of truth.
type State struct {
	XP           int                                `json:"xp"`
	Nivel        int                                `json:"nivel"`
	Unlocks      []string                           `json:"unlocks"`
	Playlist     []string                           `json:"playlist"`
	Achievements map[string]models.AchievementState `json:"achievements"`
	TimerConfig  models.TimerConfig                 `json:"timer_config"`

	// LegacyMigrated flags that the one-time local-storage import ran.
	LegacyMigrated bool `json:"legacy_migrated"`
}

// Cache mirrors State to a JSON file so the app starts with the last
// known state before the first sync completes.
type Cache struct {
	mu    sync.RWMutex
	state State
	path  string
}

// NewCache loads the cache file if present; a missing or corrupt file
// yields a fresh state.
func NewCache(path string) *Cache {
	c := &Cache{path: path}
	c.state.Achievements = map[string]models.AchievementState{}
	c.state.TimerConfig = models.DefaultTimerConfig()

	if data, err := os.ReadFile(path); err == nil {
		var s State
		if err := json.Unmarshal(data, &s); err == nil {
			if s.Achievements == nil {
				s.Achievements = map[string]models.AchievementState{}
			}
			c.state = s
		}
	}
	return c
}

// State returns a copy of the current state.
func (c *Cache) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s := c.state
	s.Unlocks = append([]string(nil), c.state.Unlocks...)
	s.Playlist = append([]string(nil), c.state.Playlist...)
	s.Achievements = make(map[string]models.AchievementState, len(c.state.Achievements))
	for k, v := range c.state.Achievements {
		s.Achievements[k] = v
	}
	return s
}

func (c *Cache) persistLocked() {
	if c.path == "" {
		return
	}
	data, err := json.MarshalIndent(c.state, "", "  ")
	if err != nil {
		return
	}
	os.WriteFile(c.path, data, 0o600)
}

// Sync pulls the full server-held state. Partial failures leave the
// previous values for the pieces that failed.
func (c *Cache) Sync(ctx context.Context, api *Client) error {
	user, err := api.Me(ctx)
	if err != nil {
		return fmt.Errorf("sync profile: %w", err)
	}

	unlocks, err := api.Unlocks(ctx)
	if err != nil {
		return fmt.Errorf("sync unlocks: %w", err)
	}
	playlist, err := api.Playlist(ctx)
	if err != nil {
		return fmt.Errorf("sync playlist: %w", err)
	}
	achievements, err := api.Achievements(ctx)
	if err != nil {
		return fmt.Errorf("sync achievements: %w", err)
	}
	timerConfig, err := api.TimerConfig(ctx)
	if err != nil {
		return fmt.Errorf("sync timer config: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.XP = user.XP
	c.state.Nivel = user.Nivel
	c.state.Unlocks = unlocks
	c.state.Playlist = playlist
	c.state.Achievements = achievements
	c.state.TimerConfig = *timerConfig
	c.persistLocked()
	return nil
}

// ApplyCycleResult merges a progression diff without a full re-sync:
// new XP/level overwrite, newly unlocked sounds append.
func (c *Cache) ApplyCycleResult(res *CycleResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if res.XP > 0 {
		c.state.XP = res.XP
	}
	if res.Nivel > 0 {
		c.state.Nivel = res.Nivel
	}
	have := make(map[string]bool, len(c.state.Unlocks))
	for _, id := range c.state.Unlocks {
		have[id] = true
	}
	for _, id := range res.NewlyUnlocked {
		if !have[id] {
			c.state.Unlocks = append(c.state.Unlocks, id)
		}
	}
	c.persistLocked()
}

// legacyState is the shape older app versions kept in local storage.
type legacyState struct {
	UnlockedSounds []string            `json:"unlockedSounds"`
	Playlist       []string            `json:"playlist"`
	TimerConfig    *models.TimerConfig `json:"timerConfig"`
}

// MigrateLegacy runs the one-time import of a pre-account local state
// file: unlocks and playlist are pushed to the server, then the flag is
// set so the import never repeats. A missing file counts as migrated.
func (c *Cache) MigrateLegacy(ctx context.Context, api *Client, legacyPath string) error {
	c.mu.RLock()
	done := c.state.LegacyMigrated
	c.mu.RUnlock()
	if done {
		return nil
	}

	data, err := os.ReadFile(legacyPath)
	if os.IsNotExist(err) {
		c.markMigrated()
		return nil
	}
	if err != nil {
		return err
	}

	var legacy legacyState
	if err := json.Unmarshal(data, &legacy); err != nil {
		// Unreadable legacy data is dropped rather than blocking
		// migration forever.
		c.markMigrated()
		return nil
	}

	if len(legacy.UnlockedSounds) > 0 {
		if err := api.SaveUnlocks(ctx, legacy.UnlockedSounds); err != nil {
			return fmt.Errorf("migrate unlocks: %w", err)
		}
	}
	if len(legacy.Playlist) > 0 {
		if err := api.SavePlaylist(ctx, legacy.Playlist); err != nil {
			return fmt.Errorf("migrate playlist: %w", err)
		}
	}
	if legacy.TimerConfig != nil {
		if err := api.SaveTimerConfig(ctx, *legacy.TimerConfig); err != nil {
			return fmt.Errorf("migrate timer config: %w", err)
		}
	}

	c.markMigrated()
	return nil
}

func (c *Cache) markMigrated() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.LegacyMigrated = true
	c.persistLocked()
}
