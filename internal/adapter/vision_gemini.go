package adapter

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/lumina/internal/config"
	"github.com/MKhiriev/lumina/internal/logger"
	"github.com/MKhiriev/lumina/models"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const defaultGeminiModel = "gemini-1.5-flash"

type geminiVisionClient struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	logger  *logger.Logger
}

// NewGeminiVisionClient creates a Gemini client authenticated with
// cfg.APIKey. OpenAI model names are replaced by a Gemini default.
func NewGeminiVisionClient(ctx context.Context, cfg config.Vision, log *logger.Logger) (VisionClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("error creating gemini client: %w", err)
	}

	model := cfg.Model
	if model == "" || !strings.HasPrefix(model, "gemini") {
		model = defaultGeminiModel
	}

	log.Debug().Str("model", model).Msg("creating gemini vision client")
	return &geminiVisionClient{client: client, model: model, timeout: cfg.Timeout, logger: log}, nil
}

func (g *geminiVisionClient) Complete(ctx context.Context, req models.VisionRequest) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	system, history, last, err := toGeminiContents(req.Messages)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrVisionFailed, err)
	}

	model := g.client.GenerativeModel(g.model)
	model.SystemInstruction = system
	if req.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(req.MaxTokens))
	}
	model.SetTemperature(float32(req.Temperature))

	chat := model.StartChat()
	chat.History = history

	resp, err := chat.SendMessage(ctx, last.Parts...)
	if err != nil {
		return "", fmt.Errorf("%w: gemini SendMessage: %w", ErrVisionFailed, err)
	}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		logger.FromContext(ctx).Warn().
			Str("func", "geminiVisionClient.Complete").
			Msg("gemini returned no candidates")
		return "", ErrEmptyCompletion
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			text.WriteString(string(t))
		}
	}

	return text.String(), nil
}

// toGeminiContents splits messages into the system instruction, the prior
// turns and the final user turn that is sent with SendMessage.
func toGeminiContents(messages []models.VisionMessage) (*genai.Content, []*genai.Content, *genai.Content, error) {
	var (
		system  *genai.Content
		history []*genai.Content
	)

	for _, m := range messages {
		switch m.Role {
		case models.RoleSystem:
			system = &genai.Content{Parts: []genai.Part{genai.Text(m.Text)}}
			continue
		case models.RoleAssistant:
			history = append(history, &genai.Content{Role: "model", Parts: []genai.Part{genai.Text(m.Text)}})
			continue
		}

		parts := []genai.Part{genai.Text(m.Text)}
		if m.Image != nil {
			parts = append(parts, genai.ImageData(strings.TrimPrefix(m.Image.MIMEType, "image/"), m.Image.Data))
		}
		history = append(history, &genai.Content{Role: "user", Parts: parts})
	}

	if len(history) == 0 || history[len(history)-1].Role != "user" {
		return nil, nil, nil, fmt.Errorf("last message is not from the user")
	}

	return system, history[:len(history)-1], history[len(history)-1], nil
}

// Close releases the underlying gRPC connection.
func (g *geminiVisionClient) Close() error {
	return g.client.Close()
}
