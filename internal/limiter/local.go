package limiter

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/lumina/internal/config"
	"golang.org/x/time/rate"
)

// localLimiter keeps one rate.Limiter per key. Buckets idle for longer than
// idleTTL are evicted on the next sweep.
type localLimiter struct {
	mu      sync.Mutex
	buckets map[string]*localBucket

	every    rate.Limit
	capacity int
	idleTTL  time.Duration
	lastGC   time.Time
	now      func() time.Time
}

type localBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewLocalLimiter(cfg config.RateLimit) Limiter {
	idle := time.Duration(cfg.Capacity) * cfg.RefillInterval
	if idle < time.Minute {
		idle = time.Minute
	}

	return &localLimiter{
		buckets:  make(map[string]*localBucket),
		every:    rate.Every(cfg.RefillInterval),
		capacity: cfg.Capacity,
		idleTTL:  idle,
		now:      time.Now,
	}
}

func (l *localLimiter) Allow(_ context.Context, key string) (Decision, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	b, ok := l.buckets[key]
	if !ok {
		b = &localBucket{limiter: rate.NewLimiter(l.every, l.capacity)}
		l.buckets[key] = b
	}
	b.lastSeen = now

	r := b.limiter.ReserveN(now, 1)
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return Decision{Allowed: false, Limit: l.capacity, RetryAfter: delay}, nil
	}

	return Decision{
		Allowed:   true,
		Limit:     l.capacity,
		Remaining: int(b.limiter.TokensAt(now)),
	}, nil
}

func (l *localLimiter) sweep(now time.Time) {
	if now.Sub(l.lastGC) < l.idleTTL {
		return
	}
	for key, b := range l.buckets {
		if now.Sub(b.lastSeen) > l.idleTTL {
			delete(l.buckets, key)
		}
	}
	l.lastGC = now
}
