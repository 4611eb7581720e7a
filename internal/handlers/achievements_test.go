package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/focusnow-app/focusnow-backend/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const achieveInsertSQL = `(?s)INSERT INTO user_achievements.+ON CONFLICT \(usuario_id, achievement_key\) DO NOTHING`

func TestAchieveIsIdempotent(t *testing.T) {
	mock := newMockDB(t)
	uid := uuid.New()

	// First call inserts the row.
	mock.ExpectExec(achieveInsertSQL).
		WithArgs(uid, "primeiro-foco").
		WillReturnResult(sqlmock.NewResult(0, 1))

	w := httptest.NewRecorder()
	Achieve(w, authedRequest(http.MethodPost, "/api/me/achievements/achieve",
		`{"key":"primeiro-foco"}`, uid))
	require.Equal(t, http.StatusOK, w.Code)

	// Repeat call hits the conflict clause: zero rows touched, still 200.
	mock.ExpectExec(achieveInsertSQL).
		WithArgs(uid, "primeiro-foco").
		WillReturnResult(sqlmock.NewResult(0, 0))

	w = httptest.NewRecorder()
	Achieve(w, authedRequest(http.MethodPost, "/api/me/achievements/achieve",
		`{"key":"primeiro-foco"}`, uid))
	require.Equal(t, http.StatusOK, w.Code)

	// The stored state after both calls is a single unseen row.
	achievedAt := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT achievement_key, seen, achieved_at`).
		WithArgs(uid).
		WillReturnRows(sqlmock.NewRows([]string{"achievement_key", "seen", "achieved_at"}).
			AddRow("primeiro-foco", false, achievedAt))

	w = httptest.NewRecorder()
	GetAchievements(w, authedRequest(http.MethodGet, "/api/me/achievements", "", uid))
	require.Equal(t, http.StatusOK, w.Code)

	var achievements map[string]models.AchievementState
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &achievements))
	require.Len(t, achievements, 1)
	assert.False(t, achievements["primeiro-foco"].Seen)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAchieveRejectsMissingKey(t *testing.T) {
	newMockDB(t)
	uid := uuid.New()

	w := httptest.NewRecorder()
	Achieve(w, authedRequest(http.MethodPost, "/api/me/achievements/achieve", `{}`, uid))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
