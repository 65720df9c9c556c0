package limiter

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/MKhiriev/lumina/internal/config"
	"github.com/MKhiriev/lumina/internal/logger"
	"github.com/MKhiriev/lumina/internal/utils"
	"github.com/redis/go-redis/v9"
)

// tokenBucketScript refills the bucket by whole intervals, takes one token if
// any is left and returns {allowed, tokens, retry_after_ms}.
var tokenBucketScript = redis.NewScript(`
local key = KEYS[1]
local now_ms = tonumber(ARGV[1])
local capacity = tonumber(ARGV[2])
local interval_ms = tonumber(ARGV[3])
local ttl_seconds = tonumber(ARGV[4])

local state = redis.call('HMGET', key, 'tokens', 'last_refill_ms')
local tokens = tonumber(state[1])
local last_refill = tonumber(state[2])

if tokens == nil or last_refill == nil then
	tokens = capacity
	last_refill = now_ms
end

if interval_ms > 0 then
	local elapsed = math.max(0, now_ms - last_refill)
	local intervals = math.floor(elapsed / interval_ms)
	if intervals > 0 then
		tokens = math.min(capacity, tokens + intervals)
		last_refill = last_refill + (intervals * interval_ms)
	end
end

local allowed = 0
local retry_after_ms = 0
if tokens > 0 then
	allowed = 1
	tokens = tokens - 1
else
	retry_after_ms = math.max(0, interval_ms - (now_ms - last_refill))
end

redis.call('HSET', key, 'tokens', tokens, 'last_refill_ms', last_refill)
redis.call('EXPIRE', key, ttl_seconds)

return { allowed, tokens, retry_after_ms }
`)

type redisLimiter struct {
	client   *redis.Client
	capacity int
	interval time.Duration
	prefix   string
	hashKey  string
	logger   *logger.Logger
}

// NewRedisLimiter connects to cfg.RedisAddress and pings it once.
func NewRedisLimiter(ctx context.Context, cfg config.RateLimit, hashKey string, log *logger.Logger) (Limiter, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &redisLimiter{
		client:   client,
		capacity: cfg.Capacity,
		interval: cfg.RefillInterval,
		prefix:   cfg.Prefix,
		hashKey:  hashKey,
		logger:   log,
	}, nil
}

// Allow fails open: a Redis error lets the request through and is returned
// alongside the permissive decision so the caller can log it.
func (r *redisLimiter) Allow(ctx context.Context, key string) (Decision, error) {
	ttl := time.Duration(r.capacity) * r.interval
	if ttl < time.Second {
		ttl = time.Second
	}

	args := []any{
		time.Now().UnixMilli(),
		r.capacity,
		r.interval.Milliseconds(),
		int64(ttl / time.Second),
	}

	vals, err := tokenBucketScript.Run(ctx, r.client, []string{r.bucketKey(key)}, args...).Slice()
	if err != nil {
		return Decision{Allowed: true, Limit: r.capacity}, fmt.Errorf("token bucket script: %w", err)
	}
	if len(vals) != 3 {
		return Decision{Allowed: true, Limit: r.capacity}, fmt.Errorf("unexpected token bucket result: %v", vals)
	}

	return Decision{
		Allowed:    asInt64(vals[0]) == 1,
		Limit:      r.capacity,
		Remaining:  int(asInt64(vals[1])),
		RetryAfter: time.Duration(asInt64(vals[2])) * time.Millisecond,
	}, nil
}

func (r *redisLimiter) bucketKey(key string) string {
	return r.prefix + ":chat:" + utils.HashString(key, r.hashKey)
}

func asInt64(v any) int64 {
	switch t := v.(type) {
	case int64:
		return t
	case int:
		return int64(t)
	case float64:
		return int64(t)
	case string:
		if n, err := strconv.ParseInt(t, 10, 64); err == nil {
			return n
		}
	}
	return 0
}
