// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MKhiriev/lumina/internal/logger"
	"github.com/MKhiriev/lumina/models"
)

// messageRepository is the SQL-backed conversation log. Every record holds a
// single role; an exchange is two records written in one transaction.
type messageRepository struct {
	*DB
	logger *logger.Logger
}

// NewMessageRepository constructs a [MessageRepository] backed by db.
func NewMessageRepository(db *DB, logger *logger.Logger) MessageRepository {
	return &messageRepository{
		DB:     db,
		logger: logger,
	}
}

// Append inserts the user record and then the assistant record inside one
// transaction. A failure of either insert rolls back both. The transaction
// runs once; errors are returned to the caller as they are.
func (m *messageRepository) Append(ctx context.Context, sessionToken string, userID int64, userText, assistantText string) error {
	log := logger.FromContext(ctx)

	exchange := [2]models.Message{
		{UserID: userID, SessionToken: sessionToken, Role: models.RoleUser, Content: userText},
		{UserID: userID, SessionToken: sessionToken, Role: models.RoleAssistant, Content: assistantText},
	}

	err := m.runTx(ctx, func(tx *sql.Tx) error {
		for idx, message := range exchange {
			query, args, err := buildInsertMessageQuery(m.builder, message)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
			}

			result, err := tx.ExecContext(ctx, query, args...)
			if err != nil {
				log.Err(err).
					Str("func", "messageRepository.Append").
					Int("iteration", idx+1).
					Str("role", string(message.Role)).
					Msg("failed to insert message")
				return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
			}

			if affected, err := result.RowsAffected(); err == nil && affected == 0 {
				return ErrMessagesNotSaved
			}
		}
		return nil
	})
	if err != nil {
		log.Err(err).
			Str("func", "messageRepository.Append").
			Int64("user_id", userID).
			Bool("transient", m.isRetryable(err)).
			Msg("exchange was not persisted")
		return err
	}

	log.Debug().
		Str("func", "messageRepository.Append").
		Int64("user_id", userID).
		Msg("exchange persisted")

	return nil
}

// List returns the session's records ordered by created_at, then id.
func (m *messageRepository) List(ctx context.Context, sessionToken string) ([]models.Message, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListMessagesQuery(m.builder, sessionToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := m.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "messageRepository.List").
			Msg("failed to execute query for listing messages")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	messages := make([]models.Message, 0, 32)

	for rows.Next() {
		var message models.Message

		scanErr := rows.Scan(
			&message.ID,
			&message.UserID,
			&message.SessionToken,
			&message.Role,
			&message.Content,
			&message.CreatedAt,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "messageRepository.List").
				Msg("failed to scan message row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		messages = append(messages, message)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "messageRepository.List").
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return messages, nil
}

// Clear deletes every record of the session. Zero affected rows is success.
func (m *messageRepository) Clear(ctx context.Context, sessionToken string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildClearMessagesQuery(m.builder, sessionToken)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := m.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "messageRepository.Clear").
			Msg("failed to clear messages")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	deleted, _ := result.RowsAffected()
	log.Debug().
		Str("func", "messageRepository.Clear").
		Int64("deleted", deleted).
		Msg("conversation cleared")

	return nil
}
