package adapter

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/url"
	"time"

	"github.com/MKhiriev/lumina/internal/config"
	"github.com/MKhiriev/lumina/internal/logger"
	"github.com/MKhiriev/lumina/internal/utils"
	"github.com/MKhiriev/lumina/models"
)

type chatCompletionRequest struct {
	Model       string        `json:"model,omitempty"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature"`
}

// chatMessage.Content is either a plain string or a list of content parts.
type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// openAIVisionClient calls an OpenAI-compatible /chat/completions endpoint.
// When apiVersion is set the Azure deployment layout is used instead:
// /openai/deployments/{model}/chat/completions?api-version=... with an
// api-key header.
type openAIVisionClient struct {
	client     *utils.HTTPClient
	model      string
	apiVersion string
	timeout    time.Duration
	logger     *logger.Logger
}

func NewOpenAIVisionClient(cfg config.Vision, log *logger.Logger) (VisionClient, error) {
	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid vision base url: %w", err)
	}

	opts := []utils.HTTPClientOption{
		utils.WithBaseURL(baseURL),
		utils.WithTimeout(cfg.Timeout),
	}
	if cfg.APIVersion != "" {
		opts = append(opts, utils.WithHeader("api-key", cfg.APIKey))
	} else if cfg.APIKey != "" {
		opts = append(opts, utils.WithHeader("Authorization", "Bearer "+cfg.APIKey))
	}

	return &openAIVisionClient{
		client:     utils.NewHTTPClient(opts...),
		model:      cfg.Model,
		apiVersion: cfg.APIVersion,
		timeout:    cfg.Timeout,
		logger:     log,
	}, nil
}

func (o *openAIVisionClient) Complete(ctx context.Context, req models.VisionRequest) (string, error) {
	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	body := chatCompletionRequest{
		Messages:    toChatMessages(req.Messages),
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	}

	path := "/chat/completions"
	r := o.client.R().SetContext(ctx)
	if o.apiVersion != "" {
		path = "/openai/deployments/" + url.PathEscape(o.model) + "/chat/completions"
		r.SetQueryParam("api-version", o.apiVersion)
	} else {
		body.Model = o.model
	}

	var completion chatCompletionResponse
	resp, err := r.
		SetBody(body).
		SetResult(&completion).
		Post(path)
	if err != nil {
		return "", fmt.Errorf("%w: completion request: %w", ErrVisionFailed, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", fmt.Errorf("%w: %w", ErrVisionFailed, err)
	}

	if len(completion.Choices) == 0 {
		logger.FromContext(ctx).Warn().
			Str("func", "openAIVisionClient.Complete").
			Msg("completion has no choices")
		return "", ErrEmptyCompletion
	}

	return completion.Choices[0].Message.Content, nil
}

func toChatMessages(messages []models.VisionMessage) []chatMessage {
	out := make([]chatMessage, 0, len(messages))
	for _, m := range messages {
		if m.Image == nil {
			out = append(out, chatMessage{Role: string(m.Role), Content: m.Text})
			continue
		}

		out = append(out, chatMessage{
			Role: string(m.Role),
			Content: []contentPart{
				{Type: "text", Text: m.Text},
				{Type: "image_url", ImageURL: &imageURL{URL: dataURL(*m.Image)}},
			},
		})
	}
	return out
}

func dataURL(image models.ImagePart) string {
	return "data:" + image.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(image.Data)
}
