package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"sort"

	"github.com/focusnow-app/focusnow-backend/internal/database"
	"github.com/focusnow-app/focusnow-backend/internal/models"

	"github.com/lib/pq"
)

// ErrUserNotFound reports a cycle recorded against an unknown or
// deleted user.
var ErrUserNotFound = errors.New("usuário não encontrado")

// XP awards per completed cycle type.
const (
	XPFocusCycle = 25
	XPBreakCycle = 10
)

// ComputeLevel derives the level from total XP: floor(xp/100) + 1.
func ComputeLevel(xp int) int {
	if xp < 0 {
		xp = 0
	}
	return xp/100 + 1
}

// XPForCycle returns the XP awarded for completing a cycle of the given
// type. Incomplete cycles award nothing; that gate lives in RecordCycle.
func XPForCycle(tipo string) int {
	if tipo == models.CycleFocus {
		return XPFocusCycle
	}
	return XPBreakCycle
}

// EvaluateUnlocks returns the catalog IDs whose predicates hold for the
// given level and cycle count but are not yet in the owned set. Results
// are returned in catalog order.
func EvaluateUnlocks(level, totalCompletedCycles int, owned map[string]bool) []string {
	var newly []string
	for _, s := range SoundCatalog {
		if owned[s.ID] {
			continue
		}
		if s.Unlockable(level, totalCompletedCycles) {
			newly = append(newly, s.ID)
		}
	}
	return newly
}

// CycleResult is the progression diff returned to the client after a
// cycle is recorded.
type CycleResult struct {
	CycleID       int64
	XP            int
	Level         int
	LevelUp       bool
	NewlyUnlocked []string
}

// RecordCycle persists a cycle and, when completed, runs the progression
// engine: XP award, level recompute, unlock evaluation.
//
// The cycle insert happens outside the progression transaction: the
// cycle log is the durable fact, and XP/unlock state is recomputable
// from it, so a progression failure must never take the cycle with it.
func RecordCycle(ctx context.Context, userID, tipo string, duracao int, completado bool) (*CycleResult, error) {
	var one bool
	err := database.PostgresDB.QueryRowContext(ctx,
		`SELECT TRUE FROM usuarios WHERE id = $1`, userID).Scan(&one)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to verify user: %w", err)
	}

	var cycleID int64
	err = database.PostgresDB.QueryRowContext(ctx,
		`INSERT INTO ciclos_pomodoro (usuario_id, tipo, duracao, completado)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		userID, tipo, duracao, completado,
	).Scan(&cycleID)
	if err != nil {
		// The user can be deleted between the check and the insert.
		if isForeignKeyViolation(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to insert cycle: %w", err)
	}

	if !completado {
		return &CycleResult{CycleID: cycleID}, nil
	}

	result, err := applyProgression(ctx, userID, tipo)
	if err != nil {
		return nil, err
	}
	result.CycleID = cycleID

	PublishProgression(userID, models.EventCycleRecorded, map[string]interface{}{
		"cycle_id": cycleID,
		"tipo":     tipo,
		"xp":       result.XP,
		"nivel":    result.Level,
	})
	if result.LevelUp {
		PublishProgression(userID, models.EventLevelUp, map[string]interface{}{
			"nivel": result.Level,
		})
	}
	for _, soundID := range result.NewlyUnlocked {
		PublishProgression(userID, models.EventSoundUnlocked, map[string]interface{}{
			"sound_id": soundID,
		})
	}

	return result, nil
}

// applyProgression runs XP award, level recompute and unlock evaluation
// in one transaction, locking the user row so concurrent completions
// serialize instead of losing XP.
func applyProgression(ctx context.Context, userID, tipo string) (*CycleResult, error) {
	tx, err := database.PostgresDB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var xp, storedLevel int
	err = tx.QueryRowContext(ctx,
		`SELECT xp, nivel FROM usuarios WHERE id = $1 FOR UPDATE`, userID,
	).Scan(&xp, &storedLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to load user for progression: %w", err)
	}

	xp += XPForCycle(tipo)
	level := ComputeLevel(xp)
	levelUp := level > storedLevel

	if _, err := tx.ExecContext(ctx,
		`UPDATE usuarios SET xp = $1, nivel = $2 WHERE id = $3`,
		xp, level, userID,
	); err != nil {
		return nil, fmt.Errorf("failed to update xp: %w", err)
	}

	var totalCompleted int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM ciclos_pomodoro WHERE usuario_id = $1 AND completado = TRUE`,
		userID,
	).Scan(&totalCompleted)
	if err != nil {
		return nil, fmt.Errorf("failed to count cycles: %w", err)
	}

	owned := make(map[string]bool)
	rows, err := tx.QueryContext(ctx,
		`SELECT sound_id FROM user_unlocked_sounds WHERE usuario_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load unlocked sounds: %w", err)
	}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, err
		}
		owned[id] = true
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	newly := EvaluateUnlocks(level, totalCompleted, owned)
	for _, soundID := range newly {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO user_unlocked_sounds (usuario_id, sound_id)
			 VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			userID, soundID,
		); err != nil {
			return nil, fmt.Errorf("failed to persist unlock: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit progression: %w", err)
	}

	if len(newly) > 0 {
		InvalidateUnlockCache(userID)
		log.Printf("✅ User %s unlocked %d sound(s)", userID, len(newly))
	}

	return &CycleResult{XP: xp, Level: level, LevelUp: levelUp, NewlyUnlocked: newly}, nil
}

// GrantUnlocks bulk-inserts sound IDs into the user's unlocked set,
// skipping unknown catalog IDs and existing rows. Used by the client
// sync endpoint; the set only ever grows. Returns how many rows were
// actually inserted, which can be fewer than len(soundIDs).
func GrantUnlocks(ctx context.Context, userID string, soundIDs []string) (int, error) {
	seen := make(map[string]bool)
	var valid []string
	for _, id := range soundIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		if _, ok := CatalogSound(id); ok {
			valid = append(valid, id)
		}
	}
	sort.Strings(valid)

	granted := 0
	for _, id := range valid {
		res, err := database.PostgresDB.ExecContext(ctx,
			`INSERT INTO user_unlocked_sounds (usuario_id, sound_id)
			 VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			userID, id,
		)
		if err != nil {
			return granted, fmt.Errorf("failed to grant unlock: %w", err)
		}
		if n, err := res.RowsAffected(); err == nil {
			granted += int(n)
		}
	}

	if granted > 0 {
		InvalidateUnlockCache(userID)
	}
	return granted, nil
}

// isForeignKeyViolation matches Postgres error class 23503, raised when
// an insert references a row that no longer exists.
func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23503"
}
