package ports

import "context"

// RecoveryService drives the server side of the three-stage credential
// recovery: issue an OTP, verify it, then accept a new password.
type RecoveryService interface {
	SendOTP(ctx context.Context, email string) error
	VerifyOTP(ctx context.Context, email, code string) error
	ResetPassword(ctx context.Context, email, newPassword string) error
}
