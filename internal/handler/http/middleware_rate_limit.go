package http

import (
	"math"
	"net/http"
	"strconv"

	"github.com/MKhiriev/lumina/internal/logger"
	"github.com/MKhiriev/lumina/internal/service"
	"github.com/MKhiriev/lumina/internal/utils"
)

// withRateLimit takes one token from the caller's bucket. It must run after
// withSession since buckets are keyed by session token. Limiter errors fail
// open.
func (h *Handler) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.limiter == nil {
			next.ServeHTTP(w, r)
			return
		}

		identity, ok := utils.GetIdentityFromContext(r.Context())
		if !ok {
			writeError(w, r, ErrNoIdentity, "Handler.withRateLimit")
			return
		}

		decision, err := h.limiter.Allow(r.Context(), identity.SessionToken)
		if err != nil {
			logger.FromRequest(r).Warn().Err(err).
				Str("func", "Handler.withRateLimit").
				Msg("rate limiter failed, letting request through")
		}

		if decision.Limit > 0 {
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
		}

		if !decision.Allowed {
			seconds := int(math.Ceil(decision.RetryAfter.Seconds()))
			w.Header().Set("Retry-After", strconv.Itoa(max(seconds, 1)))
			writeError(w, r, service.ErrRateLimited, "Handler.withRateLimit")
			return
		}

		next.ServeHTTP(w, r)
	})
}
