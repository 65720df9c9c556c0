package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/MKhiriev/lumina/internal/limiter"
	"github.com/MKhiriev/lumina/internal/logger"
	"github.com/MKhiriev/lumina/internal/service"
	"github.com/MKhiriev/lumina/internal/utils"
	"github.com/MKhiriev/lumina/models"
)

// ─────────────────────────────────────────────
// Fake services
// ─────────────────────────────────────────────

type fakeSessionGate struct {
	mu     sync.Mutex
	tokens map[string]models.Identity
	err    error
	calls  int
}

func (f *fakeSessionGate) Resolve(_ context.Context, token string) (models.Identity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++

	if f.err != nil {
		return models.Identity{}, f.err
	}
	identity, ok := f.tokens[token]
	if !ok {
		return models.Identity{}, service.ErrUnauthenticated
	}
	return identity, nil
}

type fakeAuthService struct {
	signupFn func(ctx context.Context, req models.SignupRequest) (models.User, models.Session, error)
	loginFn  func(ctx context.Context, req models.LoginRequest) (models.User, models.Session, error)
	logoutFn func(ctx context.Context, identity models.Identity) error
}

func (f *fakeAuthService) Signup(ctx context.Context, req models.SignupRequest) (models.User, models.Session, error) {
	return f.signupFn(ctx, req)
}

func (f *fakeAuthService) Login(ctx context.Context, req models.LoginRequest) (models.User, models.Session, error) {
	return f.loginFn(ctx, req)
}

func (f *fakeAuthService) Logout(ctx context.Context, identity models.Identity) error {
	return f.logoutFn(ctx, identity)
}

type fakeChatService struct {
	handleFn func(ctx context.Context, identity models.Identity, text string, attachment *models.Attachment) (models.Reply, error)
	listFn   func(ctx context.Context, identity models.Identity) ([]models.RoleMessage, error)
	clearFn  func(ctx context.Context, identity models.Identity) error
}

func (f *fakeChatService) Handle(ctx context.Context, identity models.Identity, text string, attachment *models.Attachment) (models.Reply, error) {
	return f.handleFn(ctx, identity, text, attachment)
}

func (f *fakeChatService) ListChats(ctx context.Context, identity models.Identity) ([]models.RoleMessage, error) {
	return f.listFn(ctx, identity)
}

func (f *fakeChatService) ClearChats(ctx context.Context, identity models.Identity) error {
	return f.clearFn(ctx, identity)
}

type fakeFeedbackService struct {
	submitFn func(ctx context.Context, identity models.Identity, req models.FeedbackRequest) (models.Feedback, error)
}

func (f *fakeFeedbackService) Submit(ctx context.Context, identity models.Identity, req models.FeedbackRequest) (models.Feedback, error) {
	return f.submitFn(ctx, identity, req)
}

type fakeAppInfoService struct {
	version string
}

func (f *fakeAppInfoService) GetAppVersion(context.Context) string {
	return f.version
}

type fakeLimiter struct {
	decision limiter.Decision
	err      error
	keys     []string
}

func (f *fakeLimiter) Allow(_ context.Context, key string) (limiter.Decision, error) {
	f.keys = append(f.keys, key)
	return f.decision, f.err
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

const testToken = "session-token"

var ada = models.Identity{UserID: 1, Name: "Ada", Email: "ada@example.com", SessionToken: testToken}

// newTestServices returns services whose session gate knows testToken.
func newTestServices() *service.Services {
	return &service.Services{
		SessionGate:     &fakeSessionGate{tokens: map[string]models.Identity{testToken: ada}},
		AuthService:     &fakeAuthService{},
		ChatService:     &fakeChatService{},
		FeedbackService: &fakeFeedbackService{},
		AppInfoService:  &fakeAppInfoService{version: "test-version"},
	}
}

// withIdentity mimics withSession for handlers called directly.
func withIdentity(r *http.Request) *http.Request {
	return r.WithContext(utils.WithIdentity(r.Context(), ada))
}

func serve(t *testing.T, h *Handler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, req)
	return rec
}

func newHandler(svcs *service.Services, opts ...Option) *Handler {
	return NewHandler(svcs, logger.Nop(), opts...)
}
