package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutUnlocksReportsActualInsertCount(t *testing.T) {
	mock := newMockDB(t)
	uid := uuid.New()

	// Duplicates and unknown IDs are dropped; of the two valid IDs one
	// is already owned, so only one row lands.
	mock.ExpectExec(`INSERT INTO user_unlocked_sounds`).
		WithArgs(uid.String(), "focus-now").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO user_unlocked_sounds`).
		WithArgs(uid.String(), "mar-aberto").
		WillReturnResult(sqlmock.NewResult(0, 0))

	w := httptest.NewRecorder()
	PutUnlocks(w, authedRequest(http.MethodPut, "/api/me/unlocks",
		`["focus-now","focus-now","som-desconhecido","mar-aberto"]`, uid))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		OK       bool `json:"ok"`
		Inserted int  `json:"inserted"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.OK)
	assert.Equal(t, 1, resp.Inserted)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPutUnlocksEmptyBody(t *testing.T) {
	newMockDB(t)
	uid := uuid.New()

	w := httptest.NewRecorder()
	PutUnlocks(w, authedRequest(http.MethodPut, "/api/me/unlocks", `[]`, uid))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"inserted":0`)
}
