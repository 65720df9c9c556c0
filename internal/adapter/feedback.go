package adapter

import (
	"context"
	"fmt"

	"github.com/MKhiriev/lumina/internal/config"
	"github.com/MKhiriev/lumina/internal/logger"
	"github.com/MKhiriev/lumina/models"
)

// feedbackKey is the metric name ratings are recorded under.
const feedbackKey = "user-rating"

// feedbackEvent is the payload shared by the HTTP and AMQP sinks.
type feedbackEvent struct {
	RunID     string  `json:"run_id"`
	Key       string  `json:"key"`
	Score     float64 `json:"score"`
	Value     float64 `json:"value"`
	Comment   string  `json:"comment,omitempty"`
	UserID    int64   `json:"user_id,omitempty"`
	CreatedAt string  `json:"created_at,omitempty"`
}

func newFeedbackEvent(feedback models.Feedback) feedbackEvent {
	event := feedbackEvent{
		RunID:   feedback.RunID,
		Key:     feedbackKey,
		Score:   feedback.Score,
		Value:   feedback.Score,
		Comment: feedback.Comment,
		UserID:  feedback.UserID,
	}
	if !feedback.CreatedAt.IsZero() {
		event.CreatedAt = feedback.CreatedAt.UTC().Format("2006-01-02T15:04:05.000Z07:00")
	}
	return event
}

// NewFeedbackSink returns the [FeedbackSink] named by cfg.Sink.
func NewFeedbackSink(cfg config.Feedback, log *logger.Logger) (FeedbackSink, error) {
	switch cfg.Sink {
	case config.FeedbackSinkNone, "":
		return nopFeedbackSink{}, nil
	case config.FeedbackSinkHTTP:
		return NewHTTPFeedbackSink(cfg, log)
	case config.FeedbackSinkAMQP:
		return NewAMQPFeedbackSink(cfg, log)
	default:
		return nil, fmt.Errorf("%w: feedback %q", ErrUnsupportedTransport, cfg.Sink)
	}
}

type nopFeedbackSink struct{}

func (nopFeedbackSink) Send(context.Context, models.Feedback) error {
	return nil
}
