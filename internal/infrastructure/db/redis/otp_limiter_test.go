package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/foodcort/foodcort/internal/core/domain"
)

func newTestLimiter(t *testing.T, max int) (*OTPLimiter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewOTPLimiter(client, time.Minute, max), mr
}

func TestOTPLimiter_AllowsUpToMax(t *testing.T) {
	limiter, _ := newTestLimiter(t, 3)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := limiter.Allow(ctx, "alice@example.com"); err != nil {
			t.Fatalf("request %d unexpectedly limited: %v", i+1, err)
		}
	}
	if err := limiter.Allow(ctx, "alice@example.com"); err != domain.ErrOTPRateLimited {
		t.Fatalf("expected ErrOTPRateLimited, got %v", err)
	}
}

func TestOTPLimiter_WindowsArePerEmail(t *testing.T) {
	limiter, _ := newTestLimiter(t, 1)
	ctx := context.Background()

	if err := limiter.Allow(ctx, "alice@example.com"); err != nil {
		t.Fatalf("first request limited: %v", err)
	}
	if err := limiter.Allow(ctx, "bob@example.com"); err != nil {
		t.Fatalf("other address limited: %v", err)
	}
	if err := limiter.Allow(ctx, "alice@example.com"); err != domain.ErrOTPRateLimited {
		t.Fatalf("expected ErrOTPRateLimited, got %v", err)
	}
}

func TestOTPLimiter_WindowExpires(t *testing.T) {
	limiter, mr := newTestLimiter(t, 1)
	ctx := context.Background()

	if err := limiter.Allow(ctx, "alice@example.com"); err != nil {
		t.Fatalf("first request limited: %v", err)
	}
	mr.FastForward(2 * time.Minute)
	if err := limiter.Allow(ctx, "alice@example.com"); err != nil {
		t.Fatalf("request after window limited: %v", err)
	}
}
