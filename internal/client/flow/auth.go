package flow

import (
	"context"
	"strings"
	"sync"

	"github.com/foodcort/foodcort/internal/client/account"
)

// AuthState is the observable state of the authentication flow.
type AuthState int

const (
	StateAnonymous AuthState = iota
	StatePending
	StateAuthenticated
)

// Fallback messages, one per network path. They are used only when the
// failure response carries neither a structured message nor a string body.
const (
	fallbackSignUp       = "Signup failed, please try again!"
	fallbackSignIn       = "Signin failed, please try again!"
	fallbackGoogleSignUp = "Google authentication failed, please try again!"
	fallbackGoogleSignIn = "Google SignIn failed, please try again!"
)

// Local validation messages; these never involve a network call.
const (
	msgAllFieldsRequired = "All fields are required!"
	msgFillAllFields     = "Please fill in all fields."
	msgMobileRequired    = "Mobile number is required"
)

// AuthAPI is the slice of the account client the authentication flow uses.
type AuthAPI interface {
	SignUp(ctx context.Context, p account.SignUpParams) (*account.Session, error)
	SignIn(ctx context.Context, email, password string) (*account.Session, error)
	GoogleAuth(ctx context.Context, fullName, email, mobile, role string) (*account.Session, error)
}

// SignUpForm is the sign-up surface's field set. Role may be empty; the
// account service defaults it.
type SignUpForm struct {
	FullName string
	Email    string
	Mobile   string
	Role     string
	Password string
}

// AuthFlow drives sign-up and sign-in, each with a password path and an
// identity-assertion path. All methods are safe for concurrent use; a
// submission while another is in flight returns ErrSubmissionInFlight.
type AuthFlow struct {
	api AuthAPI
	idp IdentityProvider

	mu               sync.Mutex
	state            AuthState
	inFlight         bool
	errMsg           string
	session          *account.Session
	redirectToSignIn bool
}

func NewAuthFlow(api AuthAPI, idp IdentityProvider) *AuthFlow {
	return &AuthFlow{api: api, idp: idp}
}

// SubmitSignUp runs the password sign-up path. Empty required fields are a
// local error: no network call is made and the in-flight flag is never set.
func (f *AuthFlow) SubmitSignUp(ctx context.Context, form SignUpForm) error {
	if strings.TrimSpace(form.FullName) == "" || strings.TrimSpace(form.Email) == "" ||
		strings.TrimSpace(form.Mobile) == "" || form.Password == "" {
		f.fail(msgAllFieldsRequired)
		return nil
	}

	if err := f.begin(); err != nil {
		return err
	}

	session, err := f.api.SignUp(ctx, account.SignUpParams{
		FullName: form.FullName,
		Email:    form.Email,
		Password: form.Password,
		Mobile:   form.Mobile,
		Role:     form.Role,
	})
	if err != nil {
		f.settleFailure(extractOrFallback(err, fallbackSignUp))
		return nil
	}

	// Successful sign-up hands the user to the sign-in surface instead of
	// auto-establishing a session.
	f.settleSuccess(session, true)
	return nil
}

// SubmitGoogleSignUp runs the identity-assertion sign-up path. The mobile
// number is validated before the popup is even requested.
func (f *AuthFlow) SubmitGoogleSignUp(ctx context.Context, mobile, role string) error {
	if strings.TrimSpace(mobile) == "" {
		f.fail(msgMobileRequired)
		return nil
	}

	if err := f.begin(); err != nil {
		return err
	}

	assertion, err := f.idp.RequestAssertion(ctx)
	if err != nil {
		// Provider detail never leaks; the user sees only the generic message.
		f.settleFailure(fallbackGoogleSignUp)
		return nil
	}

	session, err := f.api.GoogleAuth(ctx, assertion.DisplayName, assertion.Email, mobile, role)
	if err != nil {
		f.settleFailure(extractOrFallback(err, fallbackGoogleSignUp))
		return nil
	}

	f.settleSuccess(session, true)
	return nil
}

// SubmitSignIn runs the password sign-in path.
func (f *AuthFlow) SubmitSignIn(ctx context.Context, email, password string) error {
	if strings.TrimSpace(email) == "" || password == "" {
		f.fail(msgFillAllFields)
		return nil
	}

	if err := f.begin(); err != nil {
		return err
	}

	session, err := f.api.SignIn(ctx, email, password)
	if err != nil {
		f.settleFailure(extractOrFallback(err, fallbackSignIn))
		return nil
	}

	f.settleSuccess(session, false)
	return nil
}

// SubmitGoogleSignIn runs the identity-assertion sign-in path; the assertion
// alone is forwarded to the unified endpoint.
func (f *AuthFlow) SubmitGoogleSignIn(ctx context.Context) error {
	if err := f.begin(); err != nil {
		return err
	}

	assertion, err := f.idp.RequestAssertion(ctx)
	if err != nil {
		f.settleFailure(fallbackGoogleSignIn)
		return nil
	}

	session, err := f.api.GoogleAuth(ctx, assertion.DisplayName, assertion.Email, "", "")
	if err != nil {
		f.settleFailure(extractOrFallback(err, fallbackGoogleSignIn))
		return nil
	}

	f.settleSuccess(session, false)
	return nil
}

func (f *AuthFlow) State() AuthState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Err returns the message of the most recent failed attempt, or "".
func (f *AuthFlow) Err() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errMsg
}

// InFlight reports whether a submission is currently awaiting the network.
func (f *AuthFlow) InFlight() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.inFlight
}

// Session returns the authenticated identity, nil while anonymous.
func (f *AuthFlow) Session() *account.Session {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.session
}

// RedirectToSignIn reports whether the last successful submission was a
// sign-up, which hands the user to the sign-in surface.
func (f *AuthFlow) RedirectToSignIn() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.redirectToSignIn
}

// begin marks a submission in flight; the single-flight guard lives here.
func (f *AuthFlow) begin() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.inFlight {
		return ErrSubmissionInFlight
	}
	f.inFlight = true
	f.state = StatePending
	return nil
}

func (f *AuthFlow) fail(msg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errMsg = msg
}

func (f *AuthFlow) settleFailure(msg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inFlight = false
	f.state = StateAnonymous
	f.errMsg = msg
}

func (f *AuthFlow) settleSuccess(session *account.Session, redirect bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inFlight = false
	f.state = StateAuthenticated
	f.errMsg = ""
	f.session = session
	f.redirectToSignIn = redirect
}
