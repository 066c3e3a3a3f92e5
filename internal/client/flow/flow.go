// Package flow implements the client-side state machines of the sign-up /
// sign-in surfaces and the three-stage credential-recovery wizard.
//
// Flows never propagate failures past their boundary: every submission
// settles with an updated state and, for a failed attempt, a single
// human-readable message readable via Err(). The only error a submission
// returns is ErrSubmissionInFlight, the hard single-flight guard: at most
// one submission per flow instance may be in flight, and a concurrent
// second attempt is rejected outright rather than advisory-disabled.
package flow

import (
	"context"
	"errors"

	"github.com/foodcort/foodcort/internal/client/account"
)

// ErrSubmissionInFlight rejects a submission attempted while another one on
// the same flow instance has not settled yet.
var ErrSubmissionInFlight = errors.New("submission already in flight")

// Assertion is a verified identity claim obtained from an external identity
// provider, substituting for a local password.
type Assertion struct {
	DisplayName string
	Email       string
}

// IdentityProvider is the opaque popup capability. A cancelled or failed
// popup returns an error; its content is never surfaced to the user.
type IdentityProvider interface {
	RequestAssertion(ctx context.Context) (Assertion, error)
}

// extractOrFallback applies the third tier of the error-message policy: use
// the message extracted from the response when there is one, else the
// path-specific fallback.
func extractOrFallback(err error, fallback string) string {
	var apiErr *account.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
