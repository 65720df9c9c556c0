package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/lumina/internal/logger"
	"github.com/MKhiriev/lumina/models"
)

type feedbackRepository struct {
	*DB
	logger *logger.Logger
}

func NewFeedbackRepository(db *DB, logger *logger.Logger) FeedbackRepository {
	return &feedbackRepository{
		DB:     db,
		logger: logger,
	}
}

// SaveFeedback inserts a rating and returns it with ID and CreatedAt set.
// An empty RunID is stored as NULL.
func (f *feedbackRepository) SaveFeedback(ctx context.Context, feedback models.Feedback) (models.Feedback, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSaveFeedbackQuery(f.builder, feedback)
	if err != nil {
		return models.Feedback{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if err := f.QueryRowContext(ctx, query, args...).Scan(&feedback.ID, &feedback.CreatedAt); err != nil {
		log.Err(err).
			Str("func", "feedbackRepository.SaveFeedback").
			Int64("user_id", feedback.UserID).
			Str("run_id", feedback.RunID).
			Msg("failed to save feedback")
		return models.Feedback{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return feedback, nil
}
