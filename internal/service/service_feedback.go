package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/lumina/internal/logger"
	"github.com/MKhiriev/lumina/internal/store"
	"github.com/MKhiriev/lumina/internal/validators"
	"github.com/MKhiriev/lumina/models"
)

type feedbackService struct {
	feedback  store.FeedbackRepository
	queue     FeedbackQueue
	validator validators.Validator
	logger    *logger.Logger
}

// NewFeedbackService builds a [FeedbackService]. A nil queue disables
// forwarding; ratings are still stored.
func NewFeedbackService(feedback store.FeedbackRepository, queue FeedbackQueue, validator validators.Validator, logger *logger.Logger) FeedbackService {
	return &feedbackService{feedback: feedback, queue: queue, validator: validator, logger: logger}
}

func (f *feedbackService) Submit(ctx context.Context, identity models.Identity, req models.FeedbackRequest) (models.Feedback, error) {
	if err := f.validator.Validate(ctx, req); err != nil {
		return models.Feedback{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	saved, err := f.feedback.SaveFeedback(ctx, models.Feedback{
		UserID:       identity.UserID,
		SessionToken: identity.SessionToken,
		RunID:        req.RunID,
		Score:        *req.Score,
		Comment:      req.Comment,
	})
	if err != nil {
		return models.Feedback{}, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	if f.queue != nil && req.RunID != "" {
		f.queue.Enqueue(saved)
	}

	return saved, nil
}
