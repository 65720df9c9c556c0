package adapter

import (
	"context"
	"fmt"

	"github.com/MKhiriev/lumina/internal/config"
	"github.com/MKhiriev/lumina/internal/logger"
	"github.com/MKhiriev/lumina/internal/utils"
	"github.com/MKhiriev/lumina/models"
)

// httpFeedbackSink posts ratings to a LangSmith-compatible /feedback
// endpoint authenticated by an x-api-key header.
type httpFeedbackSink struct {
	client *utils.HTTPClient
	logger *logger.Logger
}

func NewHTTPFeedbackSink(cfg config.Feedback, log *logger.Logger) (FeedbackSink, error) {
	baseURL, err := normalizeBaseURL(cfg.Address)
	if err != nil {
		return nil, fmt.Errorf("invalid feedback address: %w", err)
	}

	client := utils.NewHTTPClient(
		utils.WithBaseURL(baseURL),
		utils.WithTimeout(cfg.Timeout),
		utils.WithHeader("x-api-key", cfg.APIKey),
	)

	return &httpFeedbackSink{client: client, logger: log}, nil
}

func (h *httpFeedbackSink) Send(ctx context.Context, feedback models.Feedback) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(newFeedbackEvent(feedback)).
		Post("/feedback")
	if err != nil {
		return fmt.Errorf("%w: feedback request: %w", ErrFeedbackFailed, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return fmt.Errorf("%w: %w", ErrFeedbackFailed, err)
	}

	return nil
}
