package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/lumina/internal/config"
	"github.com/MKhiriev/lumina/internal/logger"
	"github.com/MKhiriev/lumina/internal/store"
	"github.com/MKhiriev/lumina/internal/utils"
	"github.com/MKhiriev/lumina/models"
)

type sessionGate struct {
	sessions store.SessionRepository

	signKey string
	issuer  string

	logger *logger.Logger
}

func NewSessionGate(sessions store.SessionRepository, cfg config.App, logger *logger.Logger) SessionGate {
	return &sessionGate{
		sessions: sessions,
		signKey:  cfg.SessionSignKey,
		issuer:   cfg.SessionIssuer,
		logger:   logger,
	}
}

// Resolve checks the token signature first, so forged or truncated tokens
// never reach the store. The sessions table remains the source of truth: a
// correctly signed token whose row was deleted by logout is rejected.
func (g *sessionGate) Resolve(ctx context.Context, token string) (models.Identity, error) {
	log := logger.FromContext(ctx)

	if token == "" {
		return models.Identity{}, ErrUnauthenticated
	}

	if _, err := utils.ValidateSessionToken(token, g.signKey, g.issuer); err != nil {
		log.Debug().Err(err).Str("func", "sessionGate.Resolve").Msg("session token rejected")
		return models.Identity{}, ErrUnauthenticated
	}

	identity, err := g.sessions.FindIdentity(ctx, token)
	if errors.Is(err, store.ErrSessionNotFound) {
		return models.Identity{}, ErrUnauthenticated
	}
	if err != nil {
		log.Err(err).Str("func", "sessionGate.Resolve").Msg("session lookup failed")
		return models.Identity{}, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	return identity, nil
}
