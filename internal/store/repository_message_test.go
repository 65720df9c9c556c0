// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/lumina/internal/logger"
	"github.com/MKhiriev/lumina/models"
	"github.com/jackc/pgerrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMessageRepo(t *testing.T) (*messageRepository, sqlmock.Sqlmock, *sql.DB) {
	d, mock, db := newTestDB(t)
	return &messageRepository{DB: d, logger: logger.Nop()}, mock, db
}

const insertMessage = "INSERT INTO messages \\(user_id,session_token,role,content\\) VALUES \\(\\$1,\\$2,\\$3,\\$4\\)"

// ─────────────────────────────────────────────────────────────
// Append
// ─────────────────────────────────────────────────────────────

func TestAppend_CommitsBothRecordsInOrder(t *testing.T) {
	repo, mock, db := newTestMessageRepo(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(insertMessage).
		WithArgs(int64(1), "tok", "user", "hi").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(insertMessage).
		WithArgs(int64(1), "tok", "assistant", "hello").
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	err := repo.Append(context.Background(), "tok", 1, "hi", "hello")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppend_SecondInsertFails_RollsBack(t *testing.T) {
	repo, mock, db := newTestMessageRepo(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(insertMessage).
		WithArgs(int64(1), "tok", "user", "hi").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(insertMessage).
		WithArgs(int64(1), "tok", "assistant", "hello").
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := repo.Append(context.Background(), "tok", 1, "hi", "hello")
	assert.ErrorIs(t, err, ErrExecutingStatement)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppend_BeginFails(t *testing.T) {
	repo, mock, db := newTestMessageRepo(t)
	defer db.Close()

	mock.ExpectBegin().WillReturnError(errors.New("no connection"))

	err := repo.Append(context.Background(), "tok", 1, "hi", "hello")
	assert.ErrorIs(t, err, ErrBeginningTransaction)
}

func TestAppend_CommitFails(t *testing.T) {
	repo, mock, db := newTestMessageRepo(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(insertMessage).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(insertMessage).WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit().WillReturnError(errors.New("commit failed"))

	err := repo.Append(context.Background(), "tok", 1, "hi", "hello")
	assert.ErrorIs(t, err, ErrCommitingTransaction)
}

func TestAppend_NoRowsAffected(t *testing.T) {
	repo, mock, db := newTestMessageRepo(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(insertMessage).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Append(context.Background(), "tok", 1, "hi", "hello")
	assert.ErrorIs(t, err, ErrMessagesNotSaved)
}

func TestAppend_FailedCommitRunsOnce(t *testing.T) {
	repo, mock, db := newTestMessageRepo(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(insertMessage).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(insertMessage).WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit().WillReturnError(pgError(pgerrcode.ConnectionFailure))

	err := repo.Append(context.Background(), "tok", 1, "hi", "hello")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCommitingTransaction)
	// a second Begin would be an unexpected call and fail the expectations
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppend_SerializationFailureIsReturned(t *testing.T) {
	repo, mock, db := newTestMessageRepo(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(insertMessage).WillReturnError(pgError(pgerrcode.SerializationFailure))
	mock.ExpectRollback()

	err := repo.Append(context.Background(), "tok", 1, "hi", "hello")

	assert.ErrorIs(t, err, ErrExecutingStatement)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ─────────────────────────────────────────────────────────────
// List
// ─────────────────────────────────────────────────────────────

func TestList_ReturnsRecordsInStoredOrder(t *testing.T) {
	repo, mock, db := newTestMessageRepo(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows(messageColumns).
		AddRow(1, 1, "tok", "user", "q1", now).
		AddRow(2, 1, "tok", "assistant", "a1", now).
		AddRow(3, 1, "tok", "user", "q2", now.Add(time.Second)).
		AddRow(4, 1, "tok", "assistant", "a2", now.Add(time.Second))

	mock.ExpectQuery("SELECT id, user_id, session_token, role, content, created_at FROM messages WHERE session_token = \\$1 ORDER BY created_at ASC, id ASC").
		WithArgs("tok").
		WillReturnRows(rows)

	messages, err := repo.List(context.Background(), "tok")
	require.NoError(t, err)
	require.Len(t, messages, 4)

	for i, m := range messages {
		want := models.RoleUser
		if i%2 == 1 {
			want = models.RoleAssistant
		}
		assert.Equal(t, want, m.Role)
		assert.Equal(t, int64(i+1), m.ID)
	}
	assert.Equal(t, "a2", messages[3].Content)
}

func TestList_Empty(t *testing.T) {
	repo, mock, db := newTestMessageRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT id").
		WithArgs("tok").
		WillReturnRows(sqlmock.NewRows(messageColumns))

	messages, err := repo.List(context.Background(), "tok")
	require.NoError(t, err)
	assert.Empty(t, messages)
	assert.NotNil(t, messages)
}

func TestList_QueryError(t *testing.T) {
	repo, mock, db := newTestMessageRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT id").WillReturnError(errors.New("boom"))

	_, err := repo.List(context.Background(), "tok")
	assert.ErrorIs(t, err, ErrExecutingQuery)
}

func TestList_ScanError(t *testing.T) {
	repo, mock, db := newTestMessageRepo(t)
	defer db.Close()

	rows := sqlmock.NewRows(messageColumns).AddRow("not-an-id", 1, "tok", "user", "q", time.Now())
	mock.ExpectQuery("SELECT id").WillReturnRows(rows)

	_, err := repo.List(context.Background(), "tok")
	assert.ErrorIs(t, err, ErrScanningRow)
}

func TestList_RowsError(t *testing.T) {
	repo, mock, db := newTestMessageRepo(t)
	defer db.Close()

	rows := sqlmock.NewRows(messageColumns).
		AddRow(1, 1, "tok", "user", "q", time.Now()).
		RowError(0, errors.New("iteration failed"))
	mock.ExpectQuery("SELECT id").WillReturnRows(rows)

	_, err := repo.List(context.Background(), "tok")
	assert.ErrorIs(t, err, ErrScanningRows)
}

// ─────────────────────────────────────────────────────────────
// Clear
// ─────────────────────────────────────────────────────────────

func TestClear_IsIdempotent(t *testing.T) {
	repo, mock, db := newTestMessageRepo(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM messages WHERE session_token = \\$1").
		WithArgs("tok").
		WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectExec("DELETE FROM messages WHERE session_token = \\$1").
		WithArgs("tok").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Clear(context.Background(), "tok"))
	require.NoError(t, repo.Clear(context.Background(), "tok"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClear_Error(t *testing.T) {
	repo, mock, db := newTestMessageRepo(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM messages").WillReturnError(errors.New("boom"))

	assert.ErrorIs(t, repo.Clear(context.Background(), "tok"), ErrExecutingStatement)
}
