// Package limiter implements per-session token buckets for the chat route.
//
// Two backends are provided: a Redis bucket evaluated atomically by a Lua
// script, shared by every server instance, and an in-process bucket built on
// golang.org/x/time/rate. [New] prefers Redis and falls back to the local
// bucket when Redis is not configured or cannot be reached.
package limiter

import (
	"context"
	"time"

	"github.com/MKhiriev/lumina/internal/config"
	"github.com/MKhiriev/lumina/internal/logger"
)

// Decision is the outcome of one [Limiter.Allow] call.
type Decision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// Limiter takes one token from the bucket identified by key.
type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
}

// New builds the limiter described by cfg. Bucket keys are HMAC-hashed with
// hashKey so raw session tokens never reach Redis. A disabled config yields a
// limiter that allows everything.
func New(ctx context.Context, cfg config.RateLimit, hashKey string, log *logger.Logger) Limiter {
	if !cfg.Enabled {
		return allowAll{}
	}

	if cfg.RedisAddress != "" {
		l, err := NewRedisLimiter(ctx, cfg, hashKey, log)
		if err == nil {
			return l
		}
		log.Warn().Err(err).
			Str("func", "limiter.New").
			Str("redis", cfg.RedisAddress).
			Msg("redis limiter unavailable, falling back to in-process buckets")
	}

	return NewLocalLimiter(cfg)
}

type allowAll struct{}

func (allowAll) Allow(context.Context, string) (Decision, error) {
	return Decision{Allowed: true}, nil
}
