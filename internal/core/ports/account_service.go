package ports

import (
	"context"

	"github.com/foodcort/foodcort/internal/core/domain"
)

type SignUpInput struct {
	FullName string
	Email    string
	Password string
	Mobile   string
	Role     string
}

// GoogleAuthInput carries a verified identity assertion plus the fields the
// client collected locally. Mobile and Role are present only on the sign-up
// path; sign-in sends the assertion alone.
type GoogleAuthInput struct {
	FullName string
	Email    string
	Mobile   string
	Role     string
}

type AccountService interface {
	SignUp(ctx context.Context, in SignUpInput) (*domain.Account, string, error)
	SignIn(ctx context.Context, email, password string) (*domain.Account, string, error)
	// GoogleAuth is the unified identity-assertion endpoint shared by sign-up
	// and sign-in; it idempotently creates-or-matches the account by email.
	GoogleAuth(ctx context.Context, in GoogleAuthInput) (*domain.Account, string, error)
	CurrentAccount(ctx context.Context, id string) (*domain.Account, error)
}
