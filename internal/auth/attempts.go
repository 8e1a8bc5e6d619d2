package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LoginLimiter tracks failed login attempts per username in Redis.
// Key format: login_attempts:<username>, expiring after the lockout window.
// A nil limiter (or nil client) disables limiting entirely.
type LoginLimiter struct {
	client      *redis.Client
	maxAttempts int
	window      time.Duration
}

// NewLoginLimiter builds a limiter over the shared Redis client.
func NewLoginLimiter(client *redis.Client, maxAttempts int, window time.Duration) *LoginLimiter {
	if maxAttempts <= 0 {
		maxAttempts = 10
	}
	if window <= 0 {
		window = 15 * time.Minute
	}
	return &LoginLimiter{client: client, maxAttempts: maxAttempts, window: window}
}

// Blocked reports whether the username has exhausted its attempts. Redis
// outages fail open: login availability wins over lockout strictness.
func (l *LoginLimiter) Blocked(ctx context.Context, username string) bool {
	if l == nil || l.client == nil {
		return false
	}
	count, err := l.client.Get(ctx, l.key(username)).Int()
	if err != nil {
		return false
	}
	return count >= l.maxAttempts
}

// RecordFailure increments the per-username counter and refreshes its TTL.
func (l *LoginLimiter) RecordFailure(ctx context.Context, username string) {
	if l == nil || l.client == nil {
		return
	}
	key := l.key(username)
	if err := l.client.Incr(ctx, key).Err(); err != nil {
		return
	}
	_ = l.client.Expire(ctx, key, l.window).Err()
}

// Reset clears the counter after a successful login.
func (l *LoginLimiter) Reset(ctx context.Context, username string) {
	if l == nil || l.client == nil {
		return
	}
	_ = l.client.Del(ctx, l.key(username)).Err()
}

func (l *LoginLimiter) key(username string) string {
	return fmt.Sprintf("login_attempts:%s", username)
}
