package store

import (
	"database/sql"

	"github.com/MKhiriev/lumina/models"
	sq "github.com/Masterminds/squirrel"
)

var (
	userColumns    = []string{"user_id", "name", "email", "password_hash", "created_at"}
	messageColumns = []string{"id", "user_id", "session_token", "role", "content", "created_at"}
)

func buildCreateUserQuery(b sq.StatementBuilderType, user models.User) (string, []any, error) {
	return b.Insert(user.TableName()).
		Columns("name", "email", "password_hash").
		Values(user.Name, user.Email, user.PasswordHash).
		Suffix("RETURNING user_id, created_at").
		ToSql()
}

func buildFindUserByEmailQuery(b sq.StatementBuilderType, email string) (string, []any, error) {
	return b.Select(userColumns...).
		From(models.User{}.TableName()).
		Where(sq.Eq{"email": email}).
		ToSql()
}

func buildCreateSessionQuery(b sq.StatementBuilderType, session models.Session) (string, []any, error) {
	return b.Insert(session.TableName()).
		Columns("token", "user_id").
		Values(session.Token, session.UserID).
		ToSql()
}

func buildFindIdentityQuery(b sq.StatementBuilderType, token string) (string, []any, error) {
	return b.Select("u.user_id", "u.name", "u.email", "s.token").
		From("sessions s").
		Join("users u ON u.user_id = s.user_id").
		Where(sq.Eq{"s.token": token}).
		ToSql()
}

func buildDeleteSessionQuery(b sq.StatementBuilderType, token string) (string, []any, error) {
	return b.Delete(models.Session{}.TableName()).
		Where(sq.Eq{"token": token}).
		ToSql()
}

func buildInsertMessageQuery(b sq.StatementBuilderType, message models.Message) (string, []any, error) {
	return b.Insert(message.TableName()).
		Columns("user_id", "session_token", "role", "content").
		Values(message.UserID, message.SessionToken, string(message.Role), message.Content).
		ToSql()
}

func buildListMessagesQuery(b sq.StatementBuilderType, sessionToken string) (string, []any, error) {
	return b.Select(messageColumns...).
		From(models.Message{}.TableName()).
		Where(sq.Eq{"session_token": sessionToken}).
		OrderBy("created_at ASC", "id ASC").
		ToSql()
}

func buildClearMessagesQuery(b sq.StatementBuilderType, sessionToken string) (string, []any, error) {
	return b.Delete(models.Message{}.TableName()).
		Where(sq.Eq{"session_token": sessionToken}).
		ToSql()
}

func buildSaveFeedbackQuery(b sq.StatementBuilderType, feedback models.Feedback) (string, []any, error) {
	return b.Insert(feedback.TableName()).
		Columns("user_id", "session_token", "run_id", "score", "comment").
		Values(feedback.UserID, feedback.SessionToken, nullString(feedback.RunID), feedback.Score, feedback.Comment).
		Suffix("RETURNING id, created_at").
		ToSql()
}

// nullString stores an empty string as SQL NULL.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
