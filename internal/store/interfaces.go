package store

import (
	"context"

	"github.com/MKhiriev/lumina/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists student accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
}

// SessionRepository persists the explicit sessions table. A session is
// active iff a row with the exact token exists.
type SessionRepository interface {
	CreateSession(ctx context.Context, session models.Session) error
	// FindIdentity joins the session with its owner. Returns
	// ErrSessionNotFound when no row carries token.
	FindIdentity(ctx context.Context, token string) (models.Identity, error)
	// DeleteSession removes the session row. Deleting a missing session is
	// not an error.
	DeleteSession(ctx context.Context, token string) error
}

// MessageRepository is the conversation log, keyed by session token.
type MessageRepository interface {
	// Append stores one exchange as a user record followed by an assistant
	// record. Either both are persisted or neither is.
	Append(ctx context.Context, sessionToken string, userID int64, userText, assistantText string) error
	// List returns the records of a session ordered by creation time, with
	// the record id breaking ties.
	List(ctx context.Context, sessionToken string) ([]models.Message, error)
	// Clear deletes every record of a session. It succeeds when there is
	// nothing to delete.
	Clear(ctx context.Context, sessionToken string) error
}

// FeedbackRepository persists user ratings before they are forwarded.
type FeedbackRepository interface {
	SaveFeedback(ctx context.Context, feedback models.Feedback) (models.Feedback, error)
}

// AttachmentStore stages an uploaded image for the duration of a single
// vision request.
type AttachmentStore interface {
	// Stage stores the attachment and returns an opaque reference.
	Stage(ctx context.Context, attachment models.Attachment) (string, error)
	// Load returns the staged bytes.
	Load(ctx context.Context, ref string) ([]byte, error)
	// Delete removes the staged object. Deleting a missing object is not an
	// error.
	Delete(ctx context.Context, ref string) error
}

// ErrorClassificator inspects driver errors of one SQL dialect.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
	IsUniqueViolation(err error) bool
}
