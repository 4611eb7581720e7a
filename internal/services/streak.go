package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/focusnow-app/focusnow-backend/internal/database"
)

// StreakLookbackDays bounds the query window so streak computation cost
// stays flat regardless of account age.
const StreakLookbackDays = 400

// Streak is the response shape of GET /api/streak.
type Streak struct {
	CurrentStreak int     `json:"currentStreak"`
	BestStreak    int     `json:"bestStreak"`
	LastFocusDate *string `json:"lastFocusDate"`
}

// ComputeStreak derives current/best consecutive-day streaks from the
// set of calendar days with at least one completed focus cycle. Dates
// use the format "2006-01-02" in the caller's wall-clock zone; today is
// the caller's current date in that same zone.
//
// The current streak counts back from today inclusive and is zero when
// today has no focus day yet. The best streak is the longest run
// anywhere in the window.
func ComputeStreak(days []string, today string) Streak {
	if len(days) == 0 {
		return Streak{}
	}

	set := make(map[string]bool, len(days))
	distinct := make([]string, 0, len(days))
	for _, d := range days {
		if !set[d] {
			set[d] = true
			distinct = append(distinct, d)
		}
	}
	sort.Strings(distinct)

	last := distinct[len(distinct)-1]

	current := 0
	for day := today; set[day]; day = prevDay(day) {
		current++
	}

	best := 1
	run := 1
	for i := 1; i < len(distinct); i++ {
		if distinct[i] == nextDay(distinct[i-1]) {
			run++
		} else {
			run = 1
		}
		if run > best {
			best = run
		}
	}
	if current > best {
		best = current
	}

	return Streak{CurrentStreak: current, BestStreak: best, LastFocusDate: &last}
}

func prevDay(day string) string {
	t, err := time.Parse("2006-01-02", day)
	if err != nil {
		return ""
	}
	return t.AddDate(0, 0, -1).Format("2006-01-02")
}

func nextDay(day string) string {
	t, err := time.Parse("2006-01-02", day)
	if err != nil {
		return ""
	}
	return t.AddDate(0, 0, 1).Format("2006-01-02")
}

// FocusDays loads the distinct calendar days (caller's zone, via
// tzOffset minutes) with a completed focus cycle inside the lookback
// window, ascending.
func FocusDays(ctx context.Context, userID string, tzOffsetMinutes int) ([]string, error) {
	rows, err := database.PostgresDB.QueryContext(ctx,
		`SELECT DISTINCT to_char(data_conclusao + ($2 * interval '1 minute'), 'YYYY-MM-DD') AS dia
		 FROM ciclos_pomodoro
		 WHERE usuario_id = $1
		   AND tipo = 'foco'
		   AND completado = TRUE
		   AND data_conclusao >= NOW() - ($3 * interval '1 day')
		 ORDER BY dia ASC`,
		userID, tzOffsetMinutes, StreakLookbackDays,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load focus days: %w", err)
	}
	defer rows.Close()

	var days []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	return days, rows.Err()
}

// UserStreak computes the streak for a user. tzOffset is the signed UTC
// offset in minutes supplied by the client; it shifts both the stored
// timestamps and "today" so day boundaries match the user's wall clock.
func UserStreak(ctx context.Context, userID string, tzOffsetMinutes int) (Streak, error) {
	days, err := FocusDays(ctx, userID, tzOffsetMinutes)
	if err != nil {
		return Streak{}, err
	}
	today := time.Now().UTC().Add(time.Duration(tzOffsetMinutes) * time.Minute).Format("2006-01-02")
	return ComputeStreak(days, today), nil
}
