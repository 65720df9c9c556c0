package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MKhiriev/lumina/internal/logger"
	"github.com/MKhiriev/lumina/internal/utils"
	"github.com/MKhiriev/lumina/models"
)

func (h *Handler) submitFeedback(w http.ResponseWriter, r *http.Request) {
	identity, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		writeError(w, r, ErrNoIdentity, "Handler.submitFeedback")
		return
	}

	var req models.FeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err), "Handler.submitFeedback")
		return
	}

	saved, err := h.services.FeedbackService.Submit(r.Context(), identity, req)
	if err != nil {
		writeError(w, r, err, "Handler.submitFeedback")
		return
	}

	logger.FromRequest(r).Debug().
		Int64("feedback_id", saved.ID).
		Str("run_id", saved.RunID).
		Msg("feedback stored")

	utils.WriteJSON(w, models.MessageResponse{Message: "Feedback submitted successfully"}, http.StatusOK)
}
