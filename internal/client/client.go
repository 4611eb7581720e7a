// Package client is the Go API client used by focusctl and by the sync
// layer embedded in desktop builds.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/focusnow-app/focusnow-backend/internal/models"
	"github.com/focusnow-app/focusnow-backend/internal/services"
)

// Client talks to a FocusNow API server using bearer tokens.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// SetToken installs the session token for subsequent calls.
func (c *Client) SetToken(token string) { c.token = token }

// Token returns the current session token.
func (c *Client) Token() string { return c.token }

type apiError struct {
	Status  int
	Message string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// IsUnauthorized reports whether err is a 401 from the API.
func IsUnauthorized(err error) bool {
	apiErr, ok := err.(*apiError)
	return ok && apiErr.Status == http.StatusUnauthorized
}

func (c *Client) do(ctx context.Context, method, path string, body, dest interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var e struct {
			Error string `json:"error"`
		}
		json.NewDecoder(resp.Body).Decode(&e)
		return &apiError{Status: resp.StatusCode, Message: e.Error}
	}
	if dest == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(dest)
}

// Session is the result of Login or Register.
type Session struct {
	Token string             `json:"token"`
	User  *models.PublicUser `json:"user"`
}

// Login authenticates and installs the returned token.
func (c *Client) Login(ctx context.Context, email, senha string) (*Session, error) {
	var s Session
	err := c.do(ctx, http.MethodPost, "/api/login",
		map[string]string{"email": email, "senha": senha}, &s)
	if err != nil {
		return nil, err
	}
	c.token = s.Token
	return &s, nil
}

// Register creates an account and installs the returned token.
func (c *Client) Register(ctx context.Context, nome, email, senha, objetivo string) (*Session, error) {
	var s Session
	err := c.do(ctx, http.MethodPost, "/api/register",
		map[string]string{"nome": nome, "email": email, "senha": senha, "objetivo": objetivo}, &s)
	if err != nil {
		return nil, err
	}
	c.token = s.Token
	return &s, nil
}

// Logout invalidates the session server-side.
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/api/logout", nil, nil)
	c.token = ""
	return err
}

// Me fetches the authenticated profile.
func (c *Client) Me(ctx context.Context) (*models.PublicUser, error) {
	var u models.PublicUser
	if err := c.do(ctx, http.MethodGet, "/api/me", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// CycleResult is the progression diff from recording a cycle.
type CycleResult struct {
	CicloID       int64    `json:"cicloId"`
	XP            int      `json:"xp"`
	Nivel         int      `json:"nivel"`
	LevelUp       bool     `json:"levelUp"`
	NewlyUnlocked []string `json:"newlyUnlocked"`
}

// RecordCycle persists a finished (or abandoned) timer phase.
func (c *Client) RecordCycle(ctx context.Context, tipo string, duracao int, completado bool) (*CycleResult, error) {
	var res CycleResult
	err := c.do(ctx, http.MethodPost, "/api/ciclos", map[string]interface{}{
		"tipo":       tipo,
		"duracao":    duracao,
		"completado": completado,
	}, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// Statistics is the aggregate totals response.
type Statistics struct {
	TotalCiclos       int `json:"total_ciclos"`
	CiclosFoco        int `json:"ciclos_foco"`
	CiclosCompletados int `json:"ciclos_completados"`
	TotalMinutos      int `json:"total_minutos"`
}

func (c *Client) Statistics(ctx context.Context) (*Statistics, error) {
	var s Statistics
	if err := c.do(ctx, http.MethodGet, "/api/estatisticas", nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) Streak(ctx context.Context, tzOffsetMinutes int) (*services.Streak, error) {
	var s services.Streak
	path := "/api/streak?tzOffset=" + strconv.Itoa(tzOffsetMinutes)
	if err := c.do(ctx, http.MethodGet, path, nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) History(ctx context.Context) ([]models.Cycle, error) {
	var cycles []models.Cycle
	if err := c.do(ctx, http.MethodGet, "/api/historico", nil, &cycles); err != nil {
		return nil, err
	}
	return cycles, nil
}

// CalendarDay is one per-day aggregate from the focus calendar.
type CalendarDay struct {
	Dia               string `json:"dia"`
	MinutosFoco       int    `json:"minutos_foco"`
	CiclosFoco        int    `json:"ciclos_foco"`
	CiclosCompletados int    `json:"ciclos_completados"`
	PausasCurtas      int    `json:"pausas_curtas"`
	PausasLongas      int    `json:"pausas_longas"`
}

func (c *Client) FocusCalendar(ctx context.Context, start, end string, tzOffsetMinutes int) ([]CalendarDay, error) {
	q := url.Values{}
	q.Set("start", start)
	q.Set("end", end)
	q.Set("tzOffset", strconv.Itoa(tzOffsetMinutes))
	var resp struct {
		Days []CalendarDay `json:"days"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/dias-foco?"+q.Encode(), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Days, nil
}

func (c *Client) TimerConfig(ctx context.Context) (*models.TimerConfig, error) {
	var tc models.TimerConfig
	if err := c.do(ctx, http.MethodGet, "/api/me/timer-config", nil, &tc); err != nil {
		return nil, err
	}
	return &tc, nil
}

func (c *Client) SaveTimerConfig(ctx context.Context, tc models.TimerConfig) error {
	return c.do(ctx, http.MethodPut, "/api/me/timer-config", tc, nil)
}

// Unlocks returns the unlocked sound IDs, ordered by unlock time.
func (c *Client) Unlocks(ctx context.Context) ([]string, error) {
	var unlocks []string
	if err := c.do(ctx, http.MethodGet, "/api/me/unlocks", nil, &unlocks); err != nil {
		return nil, err
	}
	return unlocks, nil
}

func (c *Client) SaveUnlocks(ctx context.Context, soundIDs []string) error {
	return c.do(ctx, http.MethodPut, "/api/me/unlocks",
		map[string][]string{"items": soundIDs}, nil)
}

func (c *Client) Playlist(ctx context.Context) ([]string, error) {
	var playlist []string
	if err := c.do(ctx, http.MethodGet, "/api/me/playlist", nil, &playlist); err != nil {
		return nil, err
	}
	return playlist, nil
}

func (c *Client) SavePlaylist(ctx context.Context, playlist []string) error {
	return c.do(ctx, http.MethodPut, "/api/me/playlist",
		map[string][]string{"items": playlist}, nil)
}

func (c *Client) Achievements(ctx context.Context) (map[string]models.AchievementState, error) {
	achievements := map[string]models.AchievementState{}
	if err := c.do(ctx, http.MethodGet, "/api/me/achievements", nil, &achievements); err != nil {
		return nil, err
	}
	return achievements, nil
}

func (c *Client) Achieve(ctx context.Context, key string) error {
	return c.do(ctx, http.MethodPost, "/api/me/achievements/achieve",
		map[string]string{"key": key}, nil)
}

func (c *Client) MarkAchievementSeen(ctx context.Context, key string) error {
	return c.do(ctx, http.MethodPost, "/api/me/achievements/seen",
		map[string]string{"key": key}, nil)
}
