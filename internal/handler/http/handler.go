package http

import (
	"github.com/MKhiriev/lumina/internal/limiter"
	"github.com/MKhiriev/lumina/internal/logger"
	"github.com/MKhiriev/lumina/internal/service"
	"github.com/MKhiriev/lumina/internal/validators"
)

// defaultMaxAttachmentBytes matches the default of the attachment config.
const defaultMaxAttachmentBytes = 5 << 20

type Handler struct {
	services *service.Services
	limiter  limiter.Limiter

	maxAttachmentBytes int64
	validator          validators.Validator

	logger *logger.Logger
}

// Option customizes a [Handler].
type Option func(*Handler)

// WithLimiter enables per-session rate limiting on the chat route.
func WithLimiter(l limiter.Limiter) Option {
	return func(h *Handler) {
		h.limiter = l
	}
}

// WithMaxAttachmentBytes sets the largest accepted image upload.
func WithMaxAttachmentBytes(n int64) Option {
	return func(h *Handler) {
		if n > 0 {
			h.maxAttachmentBytes = n
		}
	}
}

func NewHandler(services *service.Services, logger *logger.Logger, opts ...Option) *Handler {
	h := &Handler{
		services:           services,
		maxAttachmentBytes: defaultMaxAttachmentBytes,
		logger:             logger,
	}
	for _, opt := range opts {
		opt(h)
	}
	h.validator = validators.NewRequestValidator(h.maxAttachmentBytes)

	logger.Info().Int64("max_attachment_bytes", h.maxAttachmentBytes).Msg("http handler created")
	return h
}
