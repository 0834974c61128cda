package cache

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Fixed window: INCR the key, arm the expiry on the first hit, report the remaining TTL.
var fixedWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
local ttl = redis.call("PTTL", KEYS[1])
if ttl < 0 then
  ttl = tonumber(ARGV[1])
end
return {current, ttl}
`)

// AttemptLimiter counts attempts per subject inside a fixed window.
type AttemptLimiter struct {
	client redis.UniversalClient
	prefix string
	limit  int
	window time.Duration
}

// NewAttemptLimiter disables itself when limit or window is not positive.
func NewAttemptLimiter(client redis.UniversalClient, prefix string, limit int, window time.Duration) *AttemptLimiter {
	p := strings.TrimSuffix(strings.TrimSpace(prefix), ":")
	if p == "" {
		p = "loanhub:attempts"
	}
	return &AttemptLimiter{client: client, prefix: p, limit: limit, window: window}
}

func (l *AttemptLimiter) key(subject string) string {
	return fmt.Sprintf("%s:%s", l.prefix, strings.ToLower(strings.TrimSpace(subject)))
}

// Allow records one attempt and reports whether it is within the limit.
// retryAfter is the time left in the current window.
func (l *AttemptLimiter) Allow(ctx context.Context, subject string) (allowed bool, retryAfter time.Duration, err error) {
	if l == nil || l.client == nil || l.limit <= 0 || l.window <= 0 || strings.TrimSpace(subject) == "" {
		return true, 0, nil
	}

	windowMs := l.window.Milliseconds()
	if windowMs < 1000 {
		windowMs = 1000
	}

	raw, err := fixedWindowScript.Run(ctx, l.client, []string{l.key(subject)}, windowMs).Result()
	if err != nil {
		return false, 0, err
	}
	values, ok := raw.([]interface{})
	if !ok || len(values) != 2 {
		return false, 0, fmt.Errorf("unexpected limiter response shape: %T", raw)
	}
	count, ok := values[0].(int64)
	if !ok {
		return false, 0, fmt.Errorf("unexpected limiter count type: %T", values[0])
	}
	ttlMs, ok := values[1].(int64)
	if !ok || ttlMs < 0 {
		ttlMs = windowMs
	}

	retry := time.Duration(math.Ceil(float64(ttlMs)/1000.0)) * time.Second
	return count <= int64(l.limit), retry, nil
}

// Reset clears the window for subject, e.g. after a successful login.
func (l *AttemptLimiter) Reset(ctx context.Context, subject string) error {
	if l == nil || l.client == nil {
		return nil
	}
	return l.client.Del(ctx, l.key(subject)).Err()
}
