// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/lumina/internal/adapter"
	"github.com/MKhiriev/lumina/internal/config"
	"github.com/MKhiriev/lumina/internal/logger"
	"github.com/MKhiriev/lumina/internal/store"
	"github.com/MKhiriev/lumina/models"
)

type chatService struct {
	history     ContextAssembler
	messages    store.MessageRepository
	attachments store.AttachmentStore

	agent  adapter.RetrievalAgent
	vision adapter.VisionClient

	systemPrompt  string
	defaultPrompt string
	maxTokens     int
	temperature   float64

	logger *logger.Logger
}

func NewChatService(
	history ContextAssembler,
	messages store.MessageRepository,
	attachments store.AttachmentStore,
	agent adapter.RetrievalAgent,
	vision adapter.VisionClient,
	cfg config.Vision,
	logger *logger.Logger,
) ChatService {
	return &chatService{
		history:       history,
		messages:      messages,
		attachments:   attachments,
		agent:         agent,
		vision:        vision,
		systemPrompt:  cfg.SystemPrompt,
		defaultPrompt: cfg.DefaultPrompt,
		maxTokens:     cfg.MaxTokens,
		temperature:   cfg.Temperature,
		logger:        logger,
	}
}

func (c *chatService) Handle(ctx context.Context, identity models.Identity, userText string, attachment *models.Attachment) (models.Reply, error) {
	log := logger.FromContext(ctx)

	history, err := c.history.LoadHistory(ctx, identity.SessionToken)
	if err != nil {
		return models.Reply{}, err
	}

	var reply models.Reply
	if attachment != nil {
		if strings.TrimSpace(userText) == "" {
			userText = c.defaultPrompt
		}
		reply.AssistantResponse, err = c.askVision(ctx, history, userText, *attachment)
	} else {
		reply.AssistantResponse, reply.RunID, err = c.askAgent(ctx, userText)
	}
	if err != nil {
		return models.Reply{}, err
	}

	if err = c.messages.Append(ctx, identity.SessionToken, identity.UserID, userText, reply.AssistantResponse); err != nil {
		log.Err(err).
			Str("func", "chatService.Handle").
			Int64("user_id", identity.UserID).
			Msg("failed to persist exchange")
		return models.Reply{}, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	reply.Chats = append(history,
		models.RoleMessage{Role: models.RoleUser, Content: userText},
		models.RoleMessage{Role: models.RoleAssistant, Content: reply.AssistantResponse},
	)

	log.Info().
		Str("func", "chatService.Handle").
		Int64("user_id", identity.UserID).
		Bool("vision", attachment != nil).
		Str("run_id", reply.RunID).
		Msg("chat message answered")

	return reply, nil
}

func (c *chatService) askAgent(ctx context.Context, userText string) (string, string, error) {
	answer, err := c.agent.Ask(ctx, userText)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "chatService.askAgent").
			Msg("retrieval agent failed")
		return "", "", fmt.Errorf("%w: %w", ErrUpstreamAgent, err)
	}

	return answer.Output, answer.RunID, nil
}

// askVision stages the attachment for the lifetime of the call. The staged
// object is removed on every return path, including upstream failures.
// Staging and reading back the attachment are storage steps, so their
// failures are reported as [ErrPersistence] rather than [ErrUpstreamLLM];
// both map to 500.
func (c *chatService) askVision(ctx context.Context, history []models.RoleMessage, prompt string, attachment models.Attachment) (string, error) {
	log := logger.FromContext(ctx)

	ref, err := c.attachments.Stage(ctx, attachment)
	if err != nil {
		log.Err(err).Str("func", "chatService.askVision").Msg("failed to stage attachment")
		return "", fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	defer func() {
		if err := c.attachments.Delete(context.WithoutCancel(ctx), ref); err != nil {
			log.Err(err).
				Str("func", "chatService.askVision").
				Str("ref", ref).
				Msg("failed to remove staged attachment")
		}
	}()

	data, err := c.attachments.Load(ctx, ref)
	if err != nil {
		log.Err(err).Str("func", "chatService.askVision").Msg("failed to read staged attachment")
		return "", fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	req := models.VisionRequest{
		Messages:    c.visionMessages(history, prompt, models.ImagePart{MIMEType: attachment.ContentType, Data: data}),
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	}

	text, err := c.vision.Complete(ctx, req)
	if err != nil {
		log.Err(err).Str("func", "chatService.askVision").Msg("vision completion failed")
		return "", fmt.Errorf("%w: %w", ErrUpstreamLLM, err)
	}

	return text, nil
}

func (c *chatService) visionMessages(history []models.RoleMessage, prompt string, image models.ImagePart) []models.VisionMessage {
	messages := make([]models.VisionMessage, 0, len(history)+2)
	if c.systemPrompt != "" {
		messages = append(messages, models.VisionMessage{Role: models.RoleSystem, Text: c.systemPrompt})
	}
	for _, m := range history {
		messages = append(messages, models.VisionMessage{Role: m.Role, Text: m.Content})
	}
	return append(messages, models.VisionMessage{Role: models.RoleUser, Text: prompt, Image: &image})
}

func (c *chatService) ListChats(ctx context.Context, identity models.Identity) ([]models.RoleMessage, error) {
	return c.history.LoadHistory(ctx, identity.SessionToken)
}

func (c *chatService) ClearChats(ctx context.Context, identity models.Identity) error {
	if err := c.messages.Clear(ctx, identity.SessionToken); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return nil
}
