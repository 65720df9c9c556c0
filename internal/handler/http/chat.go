// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/MKhiriev/lumina/internal/service"
	"github.com/MKhiriev/lumina/internal/utils"
	"github.com/MKhiriev/lumina/models"
)

const (
	formFieldMessage = "message"
	formFieldImage   = "image"

	// formOverheadBytes is allowed on top of the attachment limit for the
	// text field and multipart boundaries.
	formOverheadBytes = 64 << 10
)

func (h *Handler) newChat(w http.ResponseWriter, r *http.Request) {
	identity, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		writeError(w, r, ErrNoIdentity, "Handler.newChat")
		return
	}

	input, err := h.decodeChatInput(w, r)
	if err != nil {
		writeError(w, r, err, "Handler.newChat")
		return
	}

	if err = h.validator.Validate(r.Context(), input); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", service.ErrValidation, err), "Handler.newChat")
		return
	}

	reply, err := h.services.ChatService.Handle(r.Context(), identity, input.Message, input.Attachment)
	if err != nil {
		writeError(w, r, err, "Handler.newChat")
		return
	}

	utils.WriteJSON(w, reply, http.StatusOK)
}

func (h *Handler) allChats(w http.ResponseWriter, r *http.Request) {
	identity, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		writeError(w, r, ErrNoIdentity, "Handler.allChats")
		return
	}

	chats, err := h.services.ChatService.ListChats(r.Context(), identity)
	if err != nil {
		writeError(w, r, err, "Handler.allChats")
		return
	}

	utils.WriteJSON(w, models.ChatsResponse{Message: "OK", Chats: chats}, http.StatusOK)
}

func (h *Handler) deleteChats(w http.ResponseWriter, r *http.Request) {
	identity, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		writeError(w, r, ErrNoIdentity, "Handler.deleteChats")
		return
	}

	if err := h.services.ChatService.ClearChats(r.Context(), identity); err != nil {
		writeError(w, r, err, "Handler.deleteChats")
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: "OK"}, http.StatusOK)
}

// decodeChatInput accepts either a multipart form with a "message" field and
// an optional "image" file, or a JSON body {"message": ...}.
func (h *Handler) decodeChatInput(w http.ResponseWriter, r *http.Request) (models.ChatInput, error) {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		mediaType = ""
	}

	limit := h.maxAttachmentBytes + formOverheadBytes
	if r.ContentLength > limit {
		return models.ChatInput{}, ErrPayloadTooLarge
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	switch {
	case mediaType == "multipart/form-data":
		return h.decodeMultipart(r, limit)
	case mediaType == "application/json", mediaType == "":
		var req models.ChatRequest
		if err = json.NewDecoder(r.Body).Decode(&req); err != nil {
			if isTooLarge(err) {
				return models.ChatInput{}, ErrPayloadTooLarge
			}
			return models.ChatInput{}, fmt.Errorf("%w: %w", ErrInvalidJSON, err)
		}
		return models.ChatInput{Message: req.Message}, nil
	default:
		return models.ChatInput{}, fmt.Errorf("%w: %s", ErrUnsupportedMediaType, mediaType)
	}
}

func (h *Handler) decodeMultipart(r *http.Request, limit int64) (models.ChatInput, error) {
	if err := r.ParseMultipartForm(limit); err != nil {
		if isTooLarge(err) {
			return models.ChatInput{}, ErrPayloadTooLarge
		}
		return models.ChatInput{}, fmt.Errorf("%w: %w", ErrInvalidMultipart, err)
	}
	defer r.MultipartForm.RemoveAll()

	input := models.ChatInput{Message: r.FormValue(formFieldMessage)}

	file, header, err := r.FormFile(formFieldImage)
	if errors.Is(err, http.ErrMissingFile) {
		return input, nil
	}
	if err != nil {
		return models.ChatInput{}, fmt.Errorf("%w: %w", ErrInvalidMultipart, err)
	}
	defer file.Close()

	// one byte past the limit is enough for the validator to reject it
	data, err := io.ReadAll(io.LimitReader(file, h.maxAttachmentBytes+1))
	if err != nil {
		return models.ChatInput{}, fmt.Errorf("%w: %w", ErrInvalidMultipart, err)
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}

	input.Attachment = &models.Attachment{
		Filename:    header.Filename,
		ContentType: strings.ToLower(contentType),
		Data:        data,
	}
	return input, nil
}

func isTooLarge(err error) bool {
	var maxBytesErr *http.MaxBytesError
	return errors.As(err, &maxBytesErr)
}
