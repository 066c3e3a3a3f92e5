package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/foodcort/foodcort/internal/core/domain"
)

const defaultMaxRequests = 3

// OTPLimiter throttles recovery-code requests per email address using a
// fixed window in Redis. Key format: otp:req:<email>
type OTPLimiter struct {
	client *redis.Client
	window time.Duration
	max    int
}

// NewOTPLimiter creates an OTPLimiter allowing max requests per window.
// If max <= 0, defaultMaxRequests is used.
func NewOTPLimiter(client *redis.Client, window time.Duration, max int) *OTPLimiter {
	if max <= 0 {
		max = defaultMaxRequests
	}
	return &OTPLimiter{client: client, window: window, max: max}
}

// Allow returns domain.ErrOTPRateLimited once the window budget is spent.
func (l *OTPLimiter) Allow(ctx context.Context, email string) error {
	key := l.key(email)

	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("otp limiter: %w", err)
	}
	if count == 1 {
		if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
			return fmt.Errorf("otp limiter: %w", err)
		}
	}
	if count > int64(l.max) {
		return domain.ErrOTPRateLimited
	}
	return nil
}

func (l *OTPLimiter) key(email string) string {
	return fmt.Sprintf("otp:req:%s", email)
}
