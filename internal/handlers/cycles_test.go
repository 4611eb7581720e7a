package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCycleUnknownUser(t *testing.T) {
	mock := newMockDB(t)
	uid := uuid.New()

	mock.ExpectQuery(`SELECT TRUE FROM usuarios WHERE id = \$1`).
		WithArgs(uid.String()).
		WillReturnError(sql.ErrNoRows)

	w := httptest.NewRecorder()
	CreateCycle(w, authedRequest(http.MethodPost, "/api/ciclos",
		`{"tipo":"foco","duracao":25,"completado":true}`, uid))

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Usuário não encontrado")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateCycleIncompleteSkipsProgression(t *testing.T) {
	mock := newMockDB(t)
	uid := uuid.New()

	mock.ExpectQuery(`SELECT TRUE FROM usuarios WHERE id = \$1`).
		WithArgs(uid.String()).
		WillReturnRows(sqlmock.NewRows([]string{"bool"}).AddRow(true))
	mock.ExpectQuery(`INSERT INTO ciclos_pomodoro`).
		WithArgs(uid.String(), "foco", 10, false).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	w := httptest.NewRecorder()
	CreateCycle(w, authedRequest(http.MethodPost, "/api/ciclos",
		`{"tipo":"foco","duracao":10,"completado":false}`, uid))

	require.Equal(t, http.StatusCreated, w.Code)
	var resp CycleResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(7), resp.CicloID)
	assert.Zero(t, resp.XP)
	assert.False(t, resp.LevelUp)
	assert.Empty(t, resp.NewlyUnlocked)
	require.NoError(t, mock.ExpectationsWereMet())
}
