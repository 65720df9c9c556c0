package service

import (
	"context"
	"errors"
	"testing"

	"github.com/MKhiriev/lumina/internal/logger"
	"github.com/MKhiriev/lumina/internal/mock"
	"github.com/MKhiriev/lumina/internal/store"
	"github.com/MKhiriev/lumina/internal/utils"
	"github.com/MKhiriev/lumina/internal/validators"
	"github.com/MKhiriev/lumina/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestAuthSvc(t *testing.T, ctrl *gomock.Controller) (AuthService, *mock.MockUserRepository, *mock.MockSessionRepository) {
	t.Helper()
	users := mock.NewMockUserRepository(ctrl)
	sessions := mock.NewMockSessionRepository(ctrl)
	svc := NewAuthService(users, sessions, validators.NewRequestValidator(5<<20), testApp, logger.Nop())
	return svc, users, sessions
}

// ── Signup ───────────────────────────────────────────────────────────────────

func TestAuthService_Signup_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, users, sessions := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	users.EXPECT().CreateUser(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, u models.User) (models.User, error) {
			assert.Equal(t, "Ada", u.Name)
			assert.Equal(t, "ada@example.com", u.Email)
			assert.NotEqual(t, "secret1", u.PasswordHash)
			assert.NoError(t, utils.CheckPassword(u.PasswordHash, "secret1"))
			u.UserID = 42
			return u, nil
		},
	)
	sessions.EXPECT().CreateSession(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, s models.Session) error {
			assert.Equal(t, int64(42), s.UserID)
			assert.NotEmpty(t, s.Token)
			return nil
		},
	)

	user, session, err := svc.Signup(ctx, models.SignupRequest{Name: "Ada", Email: "ada@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, int64(42), user.UserID)

	token, err := utils.ValidateSessionToken(session.Token, testApp.SessionSignKey, testApp.SessionIssuer)
	require.NoError(t, err)
	assert.Equal(t, int64(42), token.UserID)
}

func TestAuthService_Signup_InvalidRequest(t *testing.T) {
	tests := []struct {
		name string
		req  models.SignupRequest
	}{
		{"empty name", models.SignupRequest{Email: "a@b.co", Password: "secret1"}},
		{"bad email", models.SignupRequest{Name: "A", Email: "nope", Password: "secret1"}},
		{"short password", models.SignupRequest{Name: "A", Email: "a@b.co", Password: "123"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc, _, _ := newTestAuthSvc(t, ctrl)

			_, _, err := svc.Signup(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestAuthService_Signup_DuplicateEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, users, _ := newTestAuthSvc(t, ctrl)

	users.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(models.User{}, store.ErrEmailAlreadyExists)

	_, _, err := svc.Signup(context.Background(), models.SignupRequest{Name: "Ada", Email: "ada@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, store.ErrEmailAlreadyExists)
}

func TestAuthService_Signup_SessionStoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, users, sessions := newTestAuthSvc(t, ctrl)

	users.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(models.User{UserID: 1}, nil)
	sessions.EXPECT().CreateSession(gomock.Any(), gomock.Any()).Return(errors.New("db down"))

	_, _, err := svc.Signup(context.Background(), models.SignupRequest{Name: "Ada", Email: "ada@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrPersistence)
}

// ── Login ────────────────────────────────────────────────────────────────────

func storedUser(t *testing.T) models.User {
	t.Helper()
	hash, err := utils.HashPassword("secret1", testApp.BcryptCost)
	require.NoError(t, err)
	return models.User{UserID: 7, Name: "Ada", Email: "ada@example.com", PasswordHash: hash}
}

func TestAuthService_Login_OpensNewSessionEachTime(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, users, sessions := newTestAuthSvc(t, ctrl)
	user := storedUser(t)

	users.EXPECT().FindUserByEmail(gomock.Any(), "ada@example.com").Return(user, nil).Times(2)
	sessions.EXPECT().CreateSession(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	req := models.LoginRequest{Email: "ada@example.com", Password: "secret1"}
	_, first, err := svc.Login(context.Background(), req)
	require.NoError(t, err)
	_, second, err := svc.Login(context.Background(), req)
	require.NoError(t, err)

	assert.NotEqual(t, first.Token, second.Token)
}

func TestAuthService_Login_WrongCredentials(t *testing.T) {
	t.Run("unknown email", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, users, _ := newTestAuthSvc(t, ctrl)
		users.EXPECT().FindUserByEmail(gomock.Any(), "ghost@example.com").Return(models.User{}, store.ErrNoUserWasFound)

		_, _, err := svc.Login(context.Background(), models.LoginRequest{Email: "ghost@example.com", Password: "secret1"})
		assert.ErrorIs(t, err, ErrWrongCredentials)
	})

	t.Run("wrong password", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, users, _ := newTestAuthSvc(t, ctrl)
		users.EXPECT().FindUserByEmail(gomock.Any(), "ada@example.com").Return(storedUser(t), nil)
		// no session may be created

		_, _, err := svc.Login(context.Background(), models.LoginRequest{Email: "ada@example.com", Password: "wrong-pass"})
		assert.ErrorIs(t, err, ErrWrongCredentials)
	})
}

func TestAuthService_Login_StoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, users, _ := newTestAuthSvc(t, ctrl)
	users.EXPECT().FindUserByEmail(gomock.Any(), gomock.Any()).Return(models.User{}, errors.New("timeout"))

	_, _, err := svc.Login(context.Background(), models.LoginRequest{Email: "ada@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrPersistence)
}

func TestAuthService_Login_InvalidRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, _ := newTestAuthSvc(t, ctrl)

	_, _, err := svc.Login(context.Background(), models.LoginRequest{Email: "", Password: "secret1"})
	assert.ErrorIs(t, err, ErrValidation)
}

// ── Logout ───────────────────────────────────────────────────────────────────

func TestAuthService_Logout(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, sessions := newTestAuthSvc(t, ctrl)
	identity := models.Identity{UserID: 7, SessionToken: "tok"}

	sessions.EXPECT().DeleteSession(gomock.Any(), "tok").Return(nil)
	require.NoError(t, svc.Logout(context.Background(), identity))

	sessions.EXPECT().DeleteSession(gomock.Any(), "tok").Return(errors.New("boom"))
	assert.ErrorIs(t, svc.Logout(context.Background(), identity), ErrPersistence)
}
