package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/focusnow-app/focusnow-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeServer serves the minimal API surface Sync and MigrateLegacy hit.
type fakeServer struct {
	unlocks       []string
	playlist      []string
	savedUnlocks  []string
	savedPlaylist []string
	savedConfig   *models.TimerConfig
}

func (f *fakeServer) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/me", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.PublicUser{ID: "u1", Nome: "Ana", Nivel: 3, XP: 215})
	})
	mux.HandleFunc("GET /api/me/unlocks", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(f.unlocks)
	})
	mux.HandleFunc("PUT /api/me/unlocks", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Items []string `json:"items"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		f.savedUnlocks = req.Items
		json.NewEncoder(w).Encode(map[string]bool{"ok": true})
	})
	mux.HandleFunc("GET /api/me/playlist", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(f.playlist)
	})
	mux.HandleFunc("PUT /api/me/playlist", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Items []string `json:"items"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		f.savedPlaylist = req.Items
		json.NewEncoder(w).Encode(map[string]bool{"ok": true})
	})
	mux.HandleFunc("GET /api/me/achievements", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]models.AchievementState{
			"primeiro-foco": {Seen: true},
		})
	})
	mux.HandleFunc("GET /api/me/timer-config", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.TimerConfig{Pomodoro: 50, ShortBreak: 10, LongBreak: 20, LongBreakInterval: 3})
	})
	mux.HandleFunc("PUT /api/me/timer-config", func(w http.ResponseWriter, r *http.Request) {
		var tc models.TimerConfig
		json.NewDecoder(r.Body).Decode(&tc)
		f.savedConfig = &tc
		json.NewEncoder(w).Encode(tc)
	})
	return mux
}

func TestSyncMirrorsServerState(t *testing.T) {
	fake := &fakeServer{
		unlocks:  []string{"focus-now", "mar-aberto"},
		playlist: []string{"mar-aberto"},
	}
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	cache := NewCache(filepath.Join(t.TempDir(), "state.json"))
	api := New(srv.URL)
	api.SetToken("tok")

	require.NoError(t, cache.Sync(context.Background(), api))

	state := cache.State()
	assert.Equal(t, 215, state.XP)
	assert.Equal(t, 3, state.Nivel)
	assert.Equal(t, []string{"focus-now", "mar-aberto"}, state.Unlocks)
	assert.Equal(t, []string{"mar-aberto"}, state.Playlist)
	assert.True(t, state.Achievements["primeiro-foco"].Seen)
	assert.Equal(t, 50, state.TimerConfig.Pomodoro)
}

func TestCachePersistsAcrossRestart(t *testing.T) {
	fake := &fakeServer{unlocks: []string{"focus-now"}}
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "state.json")
	cache := NewCache(path)
	api := New(srv.URL)
	require.NoError(t, cache.Sync(context.Background(), api))

	reloaded := NewCache(path)
	assert.Equal(t, []string{"focus-now"}, reloaded.State().Unlocks)
	assert.Equal(t, 215, reloaded.State().XP)
}

func TestApplyCycleResultMergesDelta(t *testing.T) {
	cache := NewCache("")
	cache.ApplyCycleResult(&CycleResult{XP: 125, Nivel: 2, NewlyUnlocked: []string{"focus-flow"}})
	cache.ApplyCycleResult(&CycleResult{XP: 150, Nivel: 2, NewlyUnlocked: []string{"focus-flow"}})

	state := cache.State()
	assert.Equal(t, 150, state.XP)
	assert.Equal(t, 2, state.Nivel)
	assert.Equal(t, []string{"focus-flow"}, state.Unlocks, "duplicate unlock not appended twice")
}

func TestMigrateLegacyRunsOnce(t *testing.T) {
	fake := &fakeServer{}
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	dir := t.TempDir()
	legacyPath := filepath.Join(dir, "legacy.json")
	legacy := `{"unlockedSounds":["focus-now","sons-de-chuva"],"playlist":["focus-now"],"timerConfig":{"pomodoro":30,"shortBreak":5,"longBreak":15,"longBreakInterval":4}}`
	require.NoError(t, os.WriteFile(legacyPath, []byte(legacy), 0o600))

	cache := NewCache(filepath.Join(dir, "state.json"))
	api := New(srv.URL)

	require.NoError(t, cache.MigrateLegacy(context.Background(), api, legacyPath))
	assert.Equal(t, []string{"focus-now", "sons-de-chuva"}, fake.savedUnlocks)
	assert.Equal(t, []string{"focus-now"}, fake.savedPlaylist)
	require.NotNil(t, fake.savedConfig)
	assert.Equal(t, 30, fake.savedConfig.Pomodoro)

	// Second call is a no-op even with the legacy file still present.
	fake.savedUnlocks = nil
	require.NoError(t, cache.MigrateLegacy(context.Background(), api, legacyPath))
	assert.Nil(t, fake.savedUnlocks)
}

func TestMigrateLegacyMissingFileMarksDone(t *testing.T) {
	cache := NewCache(filepath.Join(t.TempDir(), "state.json"))
	api := New("http://unused.invalid")

	require.NoError(t, cache.MigrateLegacy(context.Background(), api, "/nonexistent/legacy.json"))
	assert.True(t, cache.State().LegacyMigrated)
}
