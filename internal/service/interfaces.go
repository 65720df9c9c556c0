// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/lumina/models"
)

// SessionGate turns a session token into the identity that owns it.
type SessionGate interface {
	// Resolve returns [ErrUnauthenticated] for an empty, malformed or unknown
	// token. It has no side effects.
	Resolve(ctx context.Context, token string) (models.Identity, error)
}

// ContextAssembler loads the transcript fed to the model as context.
type ContextAssembler interface {
	LoadHistory(ctx context.Context, sessionToken string) ([]models.RoleMessage, error)
}

// ResponseDispatcher answers one chat message and persists the exchange.
type ResponseDispatcher interface {
	// Handle routes the message to the vision collaborator when attachment
	// is non-nil and to the retrieval agent otherwise. The exchange is
	// stored only when the collaborator succeeds.
	Handle(ctx context.Context, identity models.Identity, userText string, attachment *models.Attachment) (models.Reply, error)
}

type ChatService interface {
	ResponseDispatcher

	ListChats(ctx context.Context, identity models.Identity) ([]models.RoleMessage, error)
	ClearChats(ctx context.Context, identity models.Identity) error
}

type AuthService interface {
	// Signup creates the account and opens its first session.
	Signup(ctx context.Context, req models.SignupRequest) (models.User, models.Session, error)
	// Login opens a new session. Existing sessions of the user stay valid.
	Login(ctx context.Context, req models.LoginRequest) (models.User, models.Session, error)
	// Logout deletes the caller's session.
	Logout(ctx context.Context, identity models.Identity) error
}

type FeedbackService interface {
	// Submit stores the rating and hands it to the forwarding queue.
	Submit(ctx context.Context, identity models.Identity, req models.FeedbackRequest) (models.Feedback, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

// FeedbackQueue accepts feedback for asynchronous forwarding. Enqueue must
// not block.
type FeedbackQueue interface {
	Enqueue(feedback models.Feedback) bool
}
