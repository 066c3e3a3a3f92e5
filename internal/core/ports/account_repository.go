package ports

import (
	"context"
	"time"

	"github.com/foodcort/foodcort/internal/core/domain"
)

// AccountRepository defines persistence for accounts and their recovery state.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	FindByID(ctx context.Context, id string) (*domain.Account, error)

	// SetRecoveryOTP stores a fresh code and expiry and clears the verified
	// gate, overwriting any previous code.
	SetRecoveryOTP(ctx context.Context, email, code string, expires time.Time) error
	// MarkOTPVerified opens the verified gate for a subsequent password reset.
	MarkOTPVerified(ctx context.Context, email string) error
	// ClearRecovery unsets the code and expiry and closes the verified gate.
	ClearRecovery(ctx context.Context, email string) error
	// UpdatePassword stores a new password hash and clears all recovery state.
	UpdatePassword(ctx context.Context, email, passwordHash string) error
}
