package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/MKhiriev/lumina/internal/service"
	"github.com/MKhiriev/lumina/internal/utils"
	"github.com/MKhiriev/lumina/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeSession(h *Handler, setHeaders func(r *http.Request)) (*httptest.ResponseRecorder, *models.Identity) {
	var seen *models.Identity
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if identity, ok := utils.GetIdentityFromContext(r.Context()); ok {
			seen = &identity
		}
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if setHeaders != nil {
		setHeaders(req)
	}
	rec := httptest.NewRecorder()
	h.withSession(next).ServeHTTP(rec, req)
	return rec, seen
}

func TestSessionTokenFromRequest(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{"session header", map[string]string{sessionHeader: "abc"}, "abc"},
		{"session header is kept as sent", map[string]string{sessionHeader: "abc.DEF-ghi_"}, "abc.DEF-ghi_"},
		{"bearer header", map[string]string{"Authorization": "Bearer xyz"}, "xyz"},
		{"session header wins", map[string]string{sessionHeader: "abc", "Authorization": "Bearer xyz"}, "abc"},
		{"basic auth is ignored", map[string]string{"Authorization": "Basic Zm9v"}, ""},
		{"bearer without token", map[string]string{"Authorization": "Bearer"}, ""},
		{"nothing", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, sessionTokenFromRequest(req))
		})
	}
}

func TestSessionTokenFromRequest_Cookie(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		cookie  string
		want    string
	}{
		{"cookie only", nil, "from-cookie", "from-cookie"},
		{"header wins over cookie", map[string]string{sessionHeader: "abc"}, "from-cookie", "abc"},
		{"bearer wins over cookie", map[string]string{"Authorization": "Bearer xyz"}, "from-cookie", "xyz"},
		{"malformed bearer falls back to cookie", map[string]string{"Authorization": "Basic Zm9v"}, "from-cookie", "from-cookie"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			req.AddCookie(&http.Cookie{Name: sessionCookie, Value: tt.cookie})

			assert.Equal(t, tt.want, sessionTokenFromRequest(req))
		})
	}
}

func TestWithSession_TableTest(t *testing.T) {
	tests := []struct {
		name         string
		setHeaders   func(r *http.Request)
		wantStatus   int
		wantIdentity bool
	}{
		{
			name:         "valid session header",
			setHeaders:   func(r *http.Request) { r.Header.Set(sessionHeader, testToken) },
			wantStatus:   http.StatusOK,
			wantIdentity: true,
		},
		{
			name:         "valid bearer token",
			setHeaders:   func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+testToken) },
			wantStatus:   http.StatusOK,
			wantIdentity: true,
		},
		{
			name:       "unknown token",
			setHeaders: func(r *http.Request) { r.Header.Set(sessionHeader, "logged-out-token") },
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "token differing in case",
			setHeaders: func(r *http.Request) { r.Header.Set(sessionHeader, "SESSION-TOKEN") },
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "no token",
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, seen := executeSession(newHandler(newTestServices()), tt.setHeaders)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantIdentity {
				require.NotNil(t, seen)
				assert.Equal(t, ada, *seen)
			} else {
				assert.Nil(t, seen, "next handler must not run")
			}
		})
	}
}

func TestWithSession_StoreFailureIs500(t *testing.T) {
	svcs := newTestServices()
	svcs.SessionGate = &fakeSessionGate{err: errors.Join(service.ErrPersistence, errors.New("db down"))}

	rec, seen := executeSession(newHandler(svcs), func(r *http.Request) { r.Header.Set(sessionHeader, testToken) })

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Nil(t, seen)
}

func TestWithSession_ConcurrentRequests(t *testing.T) {
	gate := &fakeSessionGate{tokens: map[string]models.Identity{testToken: ada}}
	svcs := newTestServices()
	svcs.SessionGate = gate
	h := newHandler(svcs)

	const n = 50
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			token := testToken
			if i%2 == 1 {
				token = "bogus"
			}
			rec, _ := executeSession(h, func(r *http.Request) { r.Header.Set(sessionHeader, token) })
			if i%2 == 1 {
				assert.Equal(t, http.StatusUnauthorized, rec.Code)
			} else {
				assert.Equal(t, http.StatusOK, rec.Code)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, n, gate.calls)
}
