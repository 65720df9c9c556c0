package adapter

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/lumina/internal/config"
	"github.com/MKhiriev/lumina/internal/logger"
	"github.com/MKhiriev/lumina/internal/utils"
	"github.com/MKhiriev/lumina/models"
)

const agentQueryPath = "/v1/query"

type httpRetrievalAgent struct {
	client  *utils.HTTPClient
	timeout time.Duration
	logger  *logger.Logger
}

// NewHTTPRetrievalAgent talks to an agent that serves the query contract on
// POST {cfg.Address}/v1/query.
func NewHTTPRetrievalAgent(cfg config.Agent, log *logger.Logger) (RetrievalAgent, error) {
	baseURL, err := normalizeBaseURL(cfg.Address)
	if err != nil {
		return nil, fmt.Errorf("invalid agent address: %w", err)
	}

	client := utils.NewHTTPClient(
		utils.WithBaseURL(baseURL),
		utils.WithTimeout(cfg.Timeout),
	)

	return &httpRetrievalAgent{client: client, timeout: cfg.Timeout, logger: log}, nil
}

func (h *httpRetrievalAgent) Ask(ctx context.Context, query string) (models.AgentAnswer, error) {
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	var answer models.AgentAnswer
	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(agentQuery{Query: query}).
		SetResult(&answer).
		Post(agentQueryPath)
	if err != nil {
		return models.AgentAnswer{}, fmt.Errorf("%w: query request: %w", ErrAgentFailed, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AgentAnswer{}, fmt.Errorf("%w: %w", ErrAgentFailed, err)
	}

	if answer.Error != "" {
		logger.FromContext(ctx).Warn().
			Str("func", "httpRetrievalAgent.Ask").
			Str("agent_error", answer.Error).
			Msg("agent reported an error")
		return models.AgentAnswer{}, fmt.Errorf("%w: %s", ErrAgentFailed, answer.Error)
	}

	return answer, nil
}
