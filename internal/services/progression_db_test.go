package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/focusnow-app/focusnow-backend/internal/database"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	database.PostgresDB = db
	if database.RedisClient == nil {
		database.RedisClient = redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	}
	return mock
}

func TestRecordCycleUnknownUser(t *testing.T) {
	mock := newMockDB(t)
	uid := uuid.New().String()

	mock.ExpectQuery(`SELECT TRUE FROM usuarios WHERE id = \$1`).
		WithArgs(uid).
		WillReturnError(sql.ErrNoRows)

	_, err := RecordCycle(context.Background(), uid, "foco", 25, true)
	assert.ErrorIs(t, err, ErrUserNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordCycleUserDeletedMidFlight(t *testing.T) {
	mock := newMockDB(t)
	uid := uuid.New().String()

	mock.ExpectQuery(`SELECT TRUE FROM usuarios WHERE id = \$1`).
		WithArgs(uid).
		WillReturnRows(sqlmock.NewRows([]string{"bool"}).AddRow(true))
	mock.ExpectQuery(`INSERT INTO ciclos_pomodoro`).
		WithArgs(uid, "foco", 25, true).
		WillReturnError(&pq.Error{Code: "23503"})

	_, err := RecordCycle(context.Background(), uid, "foco", 25, true)
	assert.ErrorIs(t, err, ErrUserNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestForeignKeyViolationDetection(t *testing.T) {
	assert.True(t, isForeignKeyViolation(&pq.Error{Code: "23503"}))
	assert.True(t, isForeignKeyViolation(fmt.Errorf("insert: %w", &pq.Error{Code: "23503"})))
	assert.False(t, isForeignKeyViolation(&pq.Error{Code: "23505"}))
	assert.False(t, isForeignKeyViolation(errors.New("connection reset")))
	assert.False(t, isForeignKeyViolation(nil))
}

func TestGrantUnlocksCountsOnlyNewRows(t *testing.T) {
	mock := newMockDB(t)
	uid := uuid.New().String()

	// Input has a duplicate and an unknown ID; of the two valid sounds
	// one is already owned.
	mock.ExpectExec(`INSERT INTO user_unlocked_sounds`).
		WithArgs(uid, "focus-now").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO user_unlocked_sounds`).
		WithArgs(uid, "mar-aberto").
		WillReturnResult(sqlmock.NewResult(0, 1))

	granted, err := GrantUnlocks(context.Background(), uid,
		[]string{"mar-aberto", "focus-now", "focus-now", "som-desconhecido"})
	require.NoError(t, err)
	assert.Equal(t, 1, granted)
	require.NoError(t, mock.ExpectationsWereMet())
}
