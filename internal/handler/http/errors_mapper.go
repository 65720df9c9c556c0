package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/lumina/internal/logger"
	"github.com/MKhiriev/lumina/internal/service"
	"github.com/MKhiriev/lumina/internal/store"
	"github.com/MKhiriev/lumina/internal/utils"
	"github.com/MKhiriev/lumina/models"
)

var errorStatusMap = map[error]int{
	service.ErrUnauthenticated:  http.StatusUnauthorized,
	service.ErrWrongCredentials: http.StatusUnauthorized,
	service.ErrValidation:       http.StatusUnprocessableEntity,
	service.ErrRateLimited:      http.StatusTooManyRequests,
	service.ErrUpstreamAgent:    http.StatusInternalServerError,
	service.ErrUpstreamLLM:      http.StatusInternalServerError,
	service.ErrPersistence:      http.StatusInternalServerError,

	store.ErrEmailAlreadyExists: http.StatusConflict,

	ErrInvalidJSON:          http.StatusUnprocessableEntity,
	ErrInvalidMultipart:     http.StatusUnprocessableEntity,
	ErrUnsupportedMediaType: http.StatusUnsupportedMediaType,
	ErrPayloadTooLarge:      http.StatusRequestEntityTooLarge,
	ErrNoIdentity:           http.StatusUnauthorized,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// messageFromError keeps internal details out of 5xx bodies.
func messageFromError(err error, status int) string {
	switch {
	case errors.Is(err, service.ErrUpstreamAgent):
		return "the assistant is unavailable, please try again later"
	case errors.Is(err, service.ErrUpstreamLLM):
		return "image analysis failed, please try again later"
	case errors.Is(err, service.ErrWrongCredentials):
		return "invalid email or password"
	case errors.Is(err, store.ErrEmailAlreadyExists):
		return "email already registered"
	case status >= http.StatusInternalServerError:
		return http.StatusText(status)
	default:
		return err.Error()
	}
}

// writeError logs err and writes it as a JSON message with the mapped status.
func writeError(w http.ResponseWriter, r *http.Request, err error, fn string) {
	status := statusFromError(err)

	log := logger.FromRequest(r)
	event := log.Warn()
	if status >= http.StatusInternalServerError {
		event = log.Error()
	}
	event.Err(err).Str("func", fn).Int("status", status).Send()

	utils.WriteJSON(w, models.ErrorResponse{Message: messageFromError(err, status)}, status)
}
