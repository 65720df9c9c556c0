package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/lumina/internal/config"
	"github.com/MKhiriev/lumina/internal/logger"
	"github.com/MKhiriev/lumina/internal/store"
	"github.com/MKhiriev/lumina/internal/utils"
	"github.com/MKhiriev/lumina/internal/validators"
	"github.com/MKhiriev/lumina/models"
)

type authService struct {
	userRepository    store.UserRepository
	sessionRepository store.SessionRepository
	validator         validators.Validator

	bcryptCost int

	tokenSignKey string

	tokenIssuer string

	tokenDuration time.Duration

	logger *logger.Logger
}

func NewAuthService(
	userRepository store.UserRepository,
	sessionRepository store.SessionRepository,
	validator validators.Validator,
	cfg config.App,
	logger *logger.Logger,
) AuthService {
	return &authService{
		userRepository:    userRepository,
		sessionRepository: sessionRepository,
		validator:         validator,
		bcryptCost:        cfg.BcryptCost,
		tokenSignKey:      cfg.SessionSignKey,
		tokenIssuer:       cfg.SessionIssuer,
		tokenDuration:     cfg.SessionDuration,
		logger:            logger,
	}
}

func (a *authService) Signup(ctx context.Context, req models.SignupRequest) (models.User, models.Session, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, req); err != nil {
		return models.User{}, models.Session{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	hash, err := utils.HashPassword(req.Password, a.bcryptCost)
	if err != nil {
		return models.User{}, models.Session{}, fmt.Errorf("error hashing password: %w", err)
	}

	user, err := a.userRepository.CreateUser(ctx, models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
	})
	if err != nil {
		log.Err(err).Str("email", req.Email).Msg("user creation ended with error")
		return models.User{}, models.Session{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	session, err := a.openSession(ctx, user)
	if err != nil {
		return models.User{}, models.Session{}, err
	}

	return user, session, nil
}

func (a *authService) Login(ctx context.Context, req models.LoginRequest) (models.User, models.Session, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, req); err != nil {
		return models.User{}, models.Session{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	user, err := a.userRepository.FindUserByEmail(ctx, req.Email)
	if errors.Is(err, store.ErrNoUserWasFound) {
		log.Info().Str("email", req.Email).Msg("login for unknown email")
		return models.User{}, models.Session{}, ErrWrongCredentials
	}
	if err != nil {
		log.Err(err).Str("email", req.Email).Msg("user search by email failed")
		return models.User{}, models.Session{}, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	if err = utils.CheckPassword(user.PasswordHash, req.Password); err != nil {
		log.Info().Int64("user_id", user.UserID).Msg("wrong password")
		return models.User{}, models.Session{}, ErrWrongCredentials
	}

	session, err := a.openSession(ctx, user)
	if err != nil {
		return models.User{}, models.Session{}, err
	}

	return user, session, nil
}

func (a *authService) Logout(ctx context.Context, identity models.Identity) error {
	if err := a.sessionRepository.DeleteSession(ctx, identity.SessionToken); err != nil {
		logger.FromContext(ctx).Err(err).
			Int64("user_id", identity.UserID).
			Msg("failed to delete session")
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return nil
}

// openSession signs a fresh token and stores it as a new sessions row.
func (a *authService) openSession(ctx context.Context, user models.User) (models.Session, error) {
	token, err := utils.GenerateSessionToken(a.tokenIssuer, user.UserID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Session{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	session := models.Session{Token: token.SignedString, UserID: user.UserID}
	if err = a.sessionRepository.CreateSession(ctx, session); err != nil {
		logger.FromContext(ctx).Err(err).
			Int64("user_id", user.UserID).
			Msg("failed to store session")
		return models.Session{}, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	return session, nil
}
