package validators

import (
	"context"
	"fmt"
	"math"
	"net/mail"
	"strings"

	"github.com/MKhiriev/lumina/models"
)

const (
	FieldName     = "name"
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldMessage  = "message"
	FieldImage    = "image"
	FieldScore    = "score"
)

const minPasswordLength = 6

// RequestValidator validates user, chat and feedback requests.
type RequestValidator struct {
	maxAttachmentBytes int64
}

// NewRequestValidator returns a [Validator] that rejects attachments larger
// than maxAttachmentBytes. A non-positive limit disables the size check.
func NewRequestValidator(maxAttachmentBytes int64) Validator {
	return &RequestValidator{maxAttachmentBytes: maxAttachmentBytes}
}

func (v *RequestValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.SignupRequest:
		return v.validateSignup(value, fields...)
	case *models.SignupRequest:
		return v.validateSignup(*value, fields...)

	case models.LoginRequest:
		return v.validateLogin(value, fields...)
	case *models.LoginRequest:
		return v.validateLogin(*value, fields...)

	case models.ChatInput:
		return v.validateChat(value, fields...)
	case *models.ChatInput:
		return v.validateChat(*value, fields...)

	case models.FeedbackRequest:
		return v.validateFeedback(value, fields...)
	case *models.FeedbackRequest:
		return v.validateFeedback(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *RequestValidator) validateSignup(req models.SignupRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldName, FieldEmail, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldName:
			if strings.TrimSpace(req.Name) == "" {
				return ErrEmptyName
			}
		case FieldEmail:
			if !isEmail(req.Email) {
				return ErrInvalidEmail
			}
		case FieldPassword:
			if len(strings.TrimSpace(req.Password)) < minPasswordLength {
				return ErrPasswordTooShort
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, f)
		}
	}

	return nil
}

func (v *RequestValidator) validateLogin(req models.LoginRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldPassword}
	}

	return v.validateSignup(models.SignupRequest{Email: req.Email, Password: req.Password}, fields...)
}

// validateChat accepts a blank message when an image is attached; the
// default vision prompt is used in that case.
func (v *RequestValidator) validateChat(in models.ChatInput, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldMessage, FieldImage}
	}

	for _, f := range fields {
		switch f {
		case FieldMessage:
			if strings.TrimSpace(in.Message) == "" && in.Attachment == nil {
				return ErrEmptyMessage
			}
		case FieldImage:
			if in.Attachment == nil {
				continue
			}
			if in.Attachment.Size() == 0 {
				return ErrEmptyAttachment
			}
			if v.maxAttachmentBytes > 0 && int64(in.Attachment.Size()) > v.maxAttachmentBytes {
				return ErrAttachmentTooLarge
			}
			if !strings.HasPrefix(in.Attachment.ContentType, "image/") {
				return ErrUnsupportedImageType
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, f)
		}
	}

	return nil
}

func (v *RequestValidator) validateFeedback(req models.FeedbackRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldScore}
	}

	for _, f := range fields {
		switch f {
		case FieldScore:
			if req.Score == nil {
				return ErrMissingScore
			}
			if math.IsNaN(*req.Score) || math.IsInf(*req.Score, 0) {
				return ErrInvalidScore
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, f)
		}
	}

	return nil
}

// isEmail accepts a bare addr-spec only, so "Name <a@b.c>" is rejected.
func isEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s && strings.Contains(s, "@")
}
