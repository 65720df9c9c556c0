package http

import (
	"net/http"

	"github.com/MKhiriev/lumina/internal/logger"
	"github.com/MKhiriev/lumina/internal/utils"
	"github.com/rs/zerolog"
)

// withSession resolves the caller's session and stores the identity in the
// request context. The token is taken from the X-Session-ID header, then an
// "Authorization: Bearer" header, then the session cookie. Requests without
// an active session are rejected with 401 before any handler runs.
func (h *Handler) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		identity, err := h.services.SessionGate.Resolve(ctx, sessionTokenFromRequest(r))
		if err != nil {
			writeError(w, r, err, "Handler.withSession")
			return
		}

		l := logger.FromRequest(r).GetChildLogger()
		l.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Int64("user_id", identity.UserID)
		})
		ctx = l.WithContext(utils.WithIdentity(ctx, identity))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// sessionTokenFromRequest returns the token exactly as sent, or an empty
// string when no token is present; the session gate treats that as
// unauthenticated.
func sessionTokenFromRequest(r *http.Request) string {
	if token := r.Header.Get(sessionHeader); token != "" {
		return token
	}

	if token, err := utils.ParseBearerToken(r.Header.Get("Authorization")); err == nil {
		return token
	}

	if cookie, err := r.Cookie(sessionCookie); err == nil {
		return cookie.Value
	}
	return ""
}
