package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/MKhiriev/lumina/internal/logger"
	"github.com/MKhiriev/lumina/models"
)

// localAttachmentStore stages attachments as files in a private directory.
type localAttachmentStore struct {
	dir    string
	logger *logger.Logger
}

// NewLocalAttachmentStore creates dir if needed. An empty dir selects a
// "lumina-attachments" directory under os.TempDir.
func NewLocalAttachmentStore(dir string, log *logger.Logger) (AttachmentStore, error) {
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "lumina-attachments")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("error creating attachment directory: %w", err)
	}

	log.Debug().Str("dir", dir).Msg("creating local attachment store")
	return &localAttachmentStore{dir: dir, logger: log}, nil
}

func (s *localAttachmentStore) Stage(ctx context.Context, attachment models.Attachment) (string, error) {
	f, err := os.CreateTemp(s.dir, "upload-*"+attachmentExt(attachment))
	if err != nil {
		return "", fmt.Errorf("error creating staged file: %w", err)
	}

	ref := filepath.Base(f.Name())
	if _, err := f.Write(attachment.Data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("error writing staged file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("error closing staged file: %w", err)
	}

	logger.FromContext(ctx).Debug().
		Str("func", "localAttachmentStore.Stage").
		Str("ref", ref).
		Int("size", attachment.Size()).
		Msg("attachment staged")

	return ref, nil
}

func (s *localAttachmentStore) Load(ctx context.Context, ref string) ([]byte, error) {
	path, err := s.path(ref)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrAttachmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error reading staged file: %w", err)
	}

	return data, nil
}

func (s *localAttachmentStore) Delete(ctx context.Context, ref string) error {
	path, err := s.path(ref)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("error removing staged file: %w", err)
	}

	logger.FromContext(ctx).Debug().
		Str("func", "localAttachmentStore.Delete").
		Str("ref", ref).
		Msg("attachment removed")

	return nil
}

// path rejects references that would escape the staging directory.
func (s *localAttachmentStore) path(ref string) (string, error) {
	if ref == "" || ref != filepath.Base(ref) || ref == "." || ref == ".." {
		return "", fmt.Errorf("%w: invalid reference %q", ErrAttachmentNotFound, ref)
	}
	return filepath.Join(s.dir, ref), nil
}

// attachmentExt derives a file extension from the content type, falling back
// to the client filename.
func attachmentExt(attachment models.Attachment) string {
	switch attachment.ContentType {
	case "image/png":
		return ".png"
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	}
	if attachment.Filename == "" {
		return ""
	}
	if ext := filepath.Ext(filepath.Base(attachment.Filename)); ext != "." {
		return ext
	}
	return ""
}
