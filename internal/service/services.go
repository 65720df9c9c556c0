package service

import (
	"github.com/MKhiriev/lumina/internal/adapter"
	"github.com/MKhiriev/lumina/internal/config"
	"github.com/MKhiriev/lumina/internal/logger"
	"github.com/MKhiriev/lumina/internal/store"
	"github.com/MKhiriev/lumina/internal/validators"
	"github.com/MKhiriev/lumina/models"
)

type Services struct {
	SessionGate     SessionGate
	AuthService     AuthService
	ChatService     ChatService
	FeedbackService FeedbackService
	AppInfoService  AppInfoService
}

// Collaborators are the outbound dependencies of the chat and feedback flows.
type Collaborators struct {
	Agent         adapter.RetrievalAgent
	Vision        adapter.VisionClient
	FeedbackQueue FeedbackQueue
}

func NewServices(storages *store.Storages, collaborators Collaborators, cfg config.StructuredConfig, build models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg.App, build, logger)
	if err != nil {
		return nil, err
	}

	validator := validators.NewRequestValidator(cfg.Storage.Attachments.MaxBytes)
	history := NewHistoryAssembler(storages.MessageRepository, logger)

	return &Services{
		SessionGate:     NewSessionGate(storages.SessionRepository, cfg.App, logger),
		AuthService:     NewAuthService(storages.UserRepository, storages.SessionRepository, validator, cfg.App, logger),
		ChatService:     NewChatService(history, storages.MessageRepository, storages.AttachmentStore, collaborators.Agent, collaborators.Vision, cfg.Adapter.Vision, logger),
		FeedbackService: NewFeedbackService(storages.FeedbackRepository, collaborators.FeedbackQueue, validator, logger),
		AppInfoService:  appInfo,
	}, nil
}
