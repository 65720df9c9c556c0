package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/lumina/internal/logger"
	"github.com/MKhiriev/lumina/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSessionRepo(t *testing.T) (*sessionRepository, sqlmock.Sqlmock, *sql.DB) {
	d, mock, db := newTestDB(t)
	return &sessionRepository{db: d, logger: logger.Nop()}, mock, db
}

func TestCreateSession_Success(t *testing.T) {
	repo, mock, db := newTestSessionRepo(t)
	defer db.Close()

	mock.ExpectExec("INSERT INTO sessions \\(token,user_id\\) VALUES \\(\\$1,\\$2\\)").
		WithArgs("tok", int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.CreateSession(context.Background(), models.Session{Token: "tok", UserID: 7})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateSession_Error(t *testing.T) {
	repo, mock, db := newTestSessionRepo(t)
	defer db.Close()

	mock.ExpectExec("INSERT INTO sessions").WillReturnError(errors.New("boom"))

	err := repo.CreateSession(context.Background(), models.Session{Token: "tok", UserID: 7})
	assert.ErrorIs(t, err, ErrExecutingStatement)
}

func TestFindIdentity_Success(t *testing.T) {
	repo, mock, db := newTestSessionRepo(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"user_id", "name", "email", "token"}).
		AddRow(7, "Ann", "ann@example.com", "tok")
	mock.ExpectQuery("SELECT u.user_id, u.name, u.email, s.token FROM sessions s JOIN users u ON u.user_id = s.user_id WHERE s.token = \\$1").
		WithArgs("tok").
		WillReturnRows(rows)

	identity, err := repo.FindIdentity(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, models.Identity{UserID: 7, Name: "Ann", Email: "ann@example.com", SessionToken: "tok"}, identity)
}

func TestFindIdentity_NotFound(t *testing.T) {
	repo, mock, db := newTestSessionRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT u.user_id").
		WithArgs("TOK").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "name", "email", "token"}))

	_, err := repo.FindIdentity(context.Background(), "TOK")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestFindIdentity_QueryError(t *testing.T) {
	repo, mock, db := newTestSessionRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT u.user_id").WillReturnError(errors.New("conn reset"))

	_, err := repo.FindIdentity(context.Background(), "tok")
	assert.ErrorIs(t, err, ErrExecutingQuery)
	assert.NotErrorIs(t, err, ErrSessionNotFound)
}

func TestDeleteSession_MissingRowIsNotAnError(t *testing.T) {
	repo, mock, db := newTestSessionRepo(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM sessions WHERE token = \\$1").
		WithArgs("tok").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.DeleteSession(context.Background(), "tok"))
}
