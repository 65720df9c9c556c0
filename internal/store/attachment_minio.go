package store

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/MKhiriev/lumina/internal/config"
	"github.com/MKhiriev/lumina/internal/logger"
	"github.com/MKhiriev/lumina/internal/utils"
	"github.com/MKhiriev/lumina/models"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const attachmentPrefix = "attachments/"

// minioAttachmentStore stages attachments as objects in an S3-compatible
// bucket, so that several server replicas can share the staging area.
type minioAttachmentStore struct {
	client *minio.Client
	bucket string
	ids    *utils.UUIDGenerator
	logger *logger.Logger
}

// NewMinIOAttachmentStore connects to the object store and creates the
// bucket when it does not exist yet.
func NewMinIOAttachmentStore(ctx context.Context, cfg config.MinIO, log *logger.Logger) (AttachmentStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		log.Err(err).Str("func", "NewMinIOAttachmentStore").Msg("error creating minio client")
		return nil, fmt.Errorf("error creating minio client: %w", err)
	}

	// Create bucket if not exists
	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		log.Err(err).Str("func", "NewMinIOAttachmentStore").Msg("error checking bucket")
		return nil, fmt.Errorf("error checking bucket %q: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			log.Err(err).Str("func", "NewMinIOAttachmentStore").Msg("error creating bucket")
			return nil, fmt.Errorf("error creating bucket %q: %w", cfg.Bucket, err)
		}
		log.Info().Str("bucket", cfg.Bucket).Msg("attachment bucket created")
	}

	return &minioAttachmentStore{
		client: client,
		bucket: cfg.Bucket,
		ids:    utils.NewUUIDGenerator(),
		logger: log,
	}, nil
}

func (s *minioAttachmentStore) Stage(ctx context.Context, attachment models.Attachment) (string, error) {
	key := attachmentPrefix + s.ids.Generate() + attachmentExt(attachment)

	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(attachment.Data), int64(attachment.Size()),
		minio.PutObjectOptions{ContentType: attachment.ContentType})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "minioAttachmentStore.Stage").
			Str("key", key).
			Msg("failed to upload attachment")
		return "", fmt.Errorf("error uploading attachment: %w", err)
	}

	return key, nil
}

func (s *minioAttachmentStore) Load(ctx context.Context, ref string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, ref, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("error fetching attachment: %w", err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, ErrAttachmentNotFound
		}
		return nil, fmt.Errorf("error reading attachment: %w", err)
	}

	return data, nil
}

// Delete removes the object; S3 treats removal of a missing key as success.
func (s *minioAttachmentStore) Delete(ctx context.Context, ref string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, ref, minio.RemoveObjectOptions{}); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "minioAttachmentStore.Delete").
			Str("key", ref).
			Msg("failed to remove attachment")
		return fmt.Errorf("error removing attachment: %w", err)
	}

	return nil
}
