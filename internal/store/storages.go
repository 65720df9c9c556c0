package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/lumina/internal/config"
	"github.com/MKhiriev/lumina/internal/logger"
)

// Storages bundles every persistence dependency of the service layer.
type Storages struct {
	DB                 *DB
	UserRepository     UserRepository
	SessionRepository  SessionRepository
	MessageRepository  MessageRepository
	FeedbackRepository FeedbackRepository
	AttachmentStore    AttachmentStore
}

// NewStorages connects to the database, applies migrations and builds the
// repositories and the attachment store selected by cfg.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := NewConnect(ctx, cfg.DB, log)
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(); err != nil {
		log.Err(err).Str("func", "NewStorages").Msg("error applying migrations")
		db.Close()
		return nil, err
	}

	attachments, err := NewAttachmentStore(ctx, cfg.Attachments, log)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Storages{
		DB:                 db,
		UserRepository:     NewUserRepository(db, log),
		SessionRepository:  NewSessionRepository(db, log),
		MessageRepository:  NewMessageRepository(db, log),
		FeedbackRepository: NewFeedbackRepository(db, log),
		AttachmentStore:    attachments,
	}, nil
}

// NewAttachmentStore selects the staging backend named by cfg.Backend.
func NewAttachmentStore(ctx context.Context, cfg config.Attachments, log *logger.Logger) (AttachmentStore, error) {
	switch cfg.Backend {
	case config.AttachmentsLocal, "":
		return NewLocalAttachmentStore(cfg.Dir, log)
	case config.AttachmentsMinIO:
		return NewMinIOAttachmentStore(ctx, cfg.MinIO, log)
	default:
		return nil, fmt.Errorf("unsupported attachment backend %q", cfg.Backend)
	}
}

// Close releases the database connection.
func (s *Storages) Close() error {
	return s.DB.Close()
}
