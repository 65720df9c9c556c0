package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

type panickingAppInfo struct{}

func (panickingAppInfo) GetAppVersion(context.Context) string {
	panic("version unavailable")
}

func TestGetServerVersion(t *testing.T) {
	rec := serve(t, newHandler(newTestServices()), httptest.NewRequest(http.MethodGet, "/api/v1/version", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "test-version", rec.Body.String())
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
}

func TestGetServerVersion_NoSessionNeeded(t *testing.T) {
	svcs := newTestServices()
	gate := &fakeSessionGate{}
	svcs.SessionGate = gate

	rec := serve(t, newHandler(svcs), httptest.NewRequest(http.MethodGet, "/api/v1/version", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, gate.calls)
}
