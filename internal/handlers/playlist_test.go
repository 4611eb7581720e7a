package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutPlaylistReplacesPreviousList(t *testing.T) {
	mock := newMockDB(t)
	uid := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM user_playlists WHERE usuario_id = \$1`).
		WithArgs(uid).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO user_playlists`).
		WithArgs(uid, "sons-da-floresta", 0).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO user_playlists`).
		WithArgs(uid, "sons-de-chuva", 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	w := httptest.NewRecorder()
	PutPlaylist(w, authedRequest(http.MethodPut, "/api/me/playlist",
		`["sons-da-floresta","sons-de-chuva"]`, uid))
	require.Equal(t, http.StatusOK, w.Code)

	// The second save deletes the two old rows before inserting, so only
	// the new list survives, starting at position 0.
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM user_playlists WHERE usuario_id = \$1`).
		WithArgs(uid).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`INSERT INTO user_playlists`).
		WithArgs(uid, "focus-flow", 0).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	w = httptest.NewRecorder()
	PutPlaylist(w, authedRequest(http.MethodPut, "/api/me/playlist",
		`{"items":["focus-flow"]}`, uid))
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPutPlaylistRejectsUnknownSound(t *testing.T) {
	newMockDB(t)
	uid := uuid.New()

	w := httptest.NewRecorder()
	PutPlaylist(w, authedRequest(http.MethodPut, "/api/me/playlist",
		`["nao-existe"]`, uid))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
