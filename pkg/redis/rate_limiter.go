package redis

import (
	"context"
	"time"
)

// RateLimiter is a fixed-window counter keyed by an arbitrary string.
// Used to bound OTP email dispatch per address.
type RateLimiter struct {
	prefix string
	limit  int64
	window time.Duration
}

var (
	incrValue   = Incr
	expireValue = Expire
)

// NewRateLimiter creates a rate limiter with the given window and limit
func NewRateLimiter(prefix string, limit int64, window time.Duration) *RateLimiter {
	return &RateLimiter{
		prefix: prefix,
		limit:  limit,
		window: window,
	}
}

// Allow reports whether another event is permitted for key within the
// current window. The first increment of a window arms the TTL.
func (l *RateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	count, err := incrValue(ctx, l.prefix+":"+key)
	if err != nil {
		return false, err
	}
	if count == 1 {
		if err := expireValue(ctx, l.prefix+":"+key, l.window); err != nil {
			return false, err
		}
	}
	return count <= l.limit, nil
}
