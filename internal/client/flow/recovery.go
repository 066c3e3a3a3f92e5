package flow

import (
	"context"
	"strings"
	"sync"
)

// RecoveryStage is the wizard's current step. Progression is forward only;
// the wizard returns to StageRequest solely through a full restart after a
// successful reset.
type RecoveryStage int

const (
	StageRequest RecoveryStage = iota + 1
	StageVerify
	StageReset
)

// Stage failure messages are fixed regardless of what the server said.
const (
	msgEmailRequired     = "Email is required!"
	msgSendFailed        = "Failed to send OTP. Try again!"
	msgOTPRequired       = "OTP is required!"
	msgOTPInvalid        = "Invalid OTP. Please check and try again."
	msgPasswordsRequired = "Both password fields are required!"
	msgPasswordsMismatch = "Passwords do not match!"
	msgResetFailed       = "Failed to reset password. Try again!"
)

// RecoveryAPI is the slice of the account client the recovery wizard uses.
type RecoveryAPI interface {
	SendOTP(ctx context.Context, email string) error
	VerifyOTP(ctx context.Context, email, otp string) error
	ResetPassword(ctx context.Context, email, newPassword string) error
}

// RecoveryFlow is the 3-stage credential-recovery wizard. Submit dispatches
// on the current stage; each failure is terminal for that attempt and keeps
// the wizard where it is.
type RecoveryFlow struct {
	api RecoveryAPI

	mu               sync.Mutex
	stage            RecoveryStage
	inFlight         bool
	errMsg           string
	email            string
	otp              string
	newPassword      string
	confirmPassword  string
	redirectToSignIn bool
}

func NewRecoveryFlow(api RecoveryAPI) *RecoveryFlow {
	return &RecoveryFlow{api: api, stage: StageRequest}
}

// Editing any field clears the error from the previous attempt.

func (f *RecoveryFlow) SetEmail(v string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.email = v
	f.errMsg = ""
}

func (f *RecoveryFlow) SetOTP(v string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.otp = v
	f.errMsg = ""
}

func (f *RecoveryFlow) SetNewPassword(v string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.newPassword = v
	f.errMsg = ""
}

func (f *RecoveryFlow) SetConfirmPassword(v string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.confirmPassword = v
	f.errMsg = ""
}

func (f *RecoveryFlow) Stage() RecoveryStage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stage
}

func (f *RecoveryFlow) Err() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errMsg
}

func (f *RecoveryFlow) InFlight() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.inFlight
}

// RedirectToSignIn reports whether the wizard completed and the user should
// land on the sign-in surface.
func (f *RecoveryFlow) RedirectToSignIn() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.redirectToSignIn
}

// Submit runs the current stage's action. Local validation failures never
// reach the network and never set the in-flight flag; a submission while
// another is in flight returns ErrSubmissionInFlight.
func (f *RecoveryFlow) Submit(ctx context.Context) error {
	f.mu.Lock()
	stage := f.stage
	f.mu.Unlock()

	switch stage {
	case StageVerify:
		return f.submitVerify(ctx)
	case StageReset:
		return f.submitReset(ctx)
	default:
		return f.submitRequest(ctx)
	}
}

func (f *RecoveryFlow) submitRequest(ctx context.Context) error {
	f.mu.Lock()
	if strings.TrimSpace(f.email) == "" {
		f.errMsg = msgEmailRequired
		f.mu.Unlock()
		return nil
	}
	if f.inFlight {
		f.mu.Unlock()
		return ErrSubmissionInFlight
	}
	f.inFlight = true
	email := f.email
	f.mu.Unlock()

	err := f.api.SendOTP(ctx, email)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.inFlight = false
	if err != nil {
		f.errMsg = msgSendFailed
		return nil
	}
	f.errMsg = ""
	f.stage = StageVerify
	return nil
}

func (f *RecoveryFlow) submitVerify(ctx context.Context) error {
	f.mu.Lock()
	if strings.TrimSpace(f.otp) == "" {
		f.errMsg = msgOTPRequired
		f.mu.Unlock()
		return nil
	}
	if f.inFlight {
		f.mu.Unlock()
		return ErrSubmissionInFlight
	}
	f.inFlight = true
	email, otp := f.email, f.otp
	f.mu.Unlock()

	err := f.api.VerifyOTP(ctx, email, otp)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.inFlight = false
	if err != nil {
		// Expired and wrong codes are indistinguishable here; the account
		// service reports both as a plain verification failure.
		f.errMsg = msgOTPInvalid
		return nil
	}
	f.errMsg = ""
	f.stage = StageReset
	return nil
}

func (f *RecoveryFlow) submitReset(ctx context.Context) error {
	f.mu.Lock()
	if f.newPassword == "" || f.confirmPassword == "" {
		f.errMsg = msgPasswordsRequired
		f.mu.Unlock()
		return nil
	}
	if f.newPassword != f.confirmPassword {
		f.errMsg = msgPasswordsMismatch
		f.mu.Unlock()
		return nil
	}
	if f.inFlight {
		f.mu.Unlock()
		return ErrSubmissionInFlight
	}
	f.inFlight = true
	email, password := f.email, f.newPassword
	f.mu.Unlock()

	err := f.api.ResetPassword(ctx, email, password)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.inFlight = false
	if err != nil {
		f.errMsg = msgResetFailed
		return nil
	}
	f.email = ""
	f.otp = ""
	f.newPassword = ""
	f.confirmPassword = ""
	f.errMsg = ""
	f.stage = StageRequest
	f.redirectToSignIn = true
	return nil
}
