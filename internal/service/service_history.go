package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/lumina/internal/logger"
	"github.com/MKhiriev/lumina/internal/store"
	"github.com/MKhiriev/lumina/models"
)

type historyAssembler struct {
	messages store.MessageRepository
	logger   *logger.Logger
}

func NewHistoryAssembler(messages store.MessageRepository, logger *logger.Logger) ContextAssembler {
	return &historyAssembler{messages: messages, logger: logger}
}

// LoadHistory returns the session transcript in stored order. Records with
// empty content are skipped.
func (h *historyAssembler) LoadHistory(ctx context.Context, sessionToken string) ([]models.RoleMessage, error) {
	messages, err := h.messages.List(ctx, sessionToken)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "historyAssembler.LoadHistory").
			Msg("failed to load conversation")
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	history := make([]models.RoleMessage, 0, len(messages))
	for _, m := range messages {
		if m.Content == "" {
			continue
		}
		history = append(history, models.RoleMessage{Role: m.Role, Content: m.Content})
	}

	return history, nil
}
