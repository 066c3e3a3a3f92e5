package ports

import "context"

// OTPLimiter caps how often recovery codes may be requested for one address.
type OTPLimiter interface {
	Allow(ctx context.Context, email string) error
}

// OTPSender delivers a recovery code to the account's email address.
type OTPSender interface {
	Send(ctx context.Context, email, code string) error
}
