package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MKhiriev/lumina/internal/logger"
	"github.com/MKhiriev/lumina/internal/utils"
	"github.com/MKhiriev/lumina/models"
)

// sessionHeader carries the session token in both directions.
const sessionHeader = "X-Session-ID"

// sessionCookie is read for browser clients. The server never sets it.
const sessionCookie = "lumina_session"

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err), "Handler.signup")
		return
	}

	user, session, err := h.services.AuthService.Signup(r.Context(), req)
	if err != nil {
		writeError(w, r, err, "Handler.signup")
		return
	}

	logger.FromRequest(r).Info().Int64("user_id", user.UserID).Msg("user signed up")

	w.Header().Set(sessionHeader, session.Token)
	utils.WriteJSON(w, models.UserResponse{
		Message:      "OK",
		Name:         user.Name,
		Email:        user.Email,
		SessionToken: session.Token,
	}, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err), "Handler.login")
		return
	}

	user, session, err := h.services.AuthService.Login(r.Context(), req)
	if err != nil {
		writeError(w, r, err, "Handler.login")
		return
	}

	logger.FromRequest(r).Info().Int64("user_id", user.UserID).Msg("user logged in")

	w.Header().Set(sessionHeader, session.Token)
	utils.WriteJSON(w, models.UserResponse{
		Message:      "OK",
		Name:         user.Name,
		Email:        user.Email,
		SessionToken: session.Token,
	}, http.StatusOK)
}

func (h *Handler) authStatus(w http.ResponseWriter, r *http.Request) {
	identity, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		writeError(w, r, ErrNoIdentity, "Handler.authStatus")
		return
	}

	utils.WriteJSON(w, models.UserResponse{Message: "OK", Name: identity.Name, Email: identity.Email}, http.StatusOK)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	identity, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		writeError(w, r, ErrNoIdentity, "Handler.logout")
		return
	}

	if err := h.services.AuthService.Logout(r.Context(), identity); err != nil {
		writeError(w, r, err, "Handler.logout")
		return
	}

	utils.WriteJSON(w, models.UserResponse{Message: "OK", Name: identity.Name, Email: identity.Email}, http.StatusOK)
}
