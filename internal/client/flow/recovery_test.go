package flow

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/foodcort/foodcort/internal/client/account"
)

type stubRecoveryAPI struct {
	mu      sync.Mutex
	sendErr error
	verify  error
	reset   error
	release chan struct{}

	sendCalls   int
	verifyCalls int
	resetCalls  int
	lastEmail   string
	lastOTP     string
	lastPass    string
}

func (s *stubRecoveryAPI) wait() {
	if s.release != nil {
		<-s.release
	}
}

func (s *stubRecoveryAPI) SendOTP(_ context.Context, email string) error {
	s.mu.Lock()
	s.sendCalls++
	s.lastEmail = email
	s.mu.Unlock()
	s.wait()
	return s.sendErr
}

func (s *stubRecoveryAPI) VerifyOTP(_ context.Context, email, otp string) error {
	s.mu.Lock()
	s.verifyCalls++
	s.lastEmail = email
	s.lastOTP = otp
	s.mu.Unlock()
	s.wait()
	return s.verify
}

func (s *stubRecoveryAPI) ResetPassword(_ context.Context, email, newPassword string) error {
	s.mu.Lock()
	s.resetCalls++
	s.lastEmail = email
	s.lastPass = newPassword
	s.mu.Unlock()
	s.wait()
	return s.reset
}

// walkToVerify drives a fresh wizard to stage 2.
func walkToVerify(t *testing.T, flow *RecoveryFlow) {
	t.Helper()
	flow.SetEmail("alice@example.com")
	if err := flow.Submit(context.Background()); err != nil {
		t.Fatalf("request stage: %v", err)
	}
	if flow.Stage() != StageVerify {
		t.Fatalf("stage = %v, want StageVerify", flow.Stage())
	}
}

// walkToReset drives a fresh wizard to stage 3.
func walkToReset(t *testing.T, flow *RecoveryFlow) {
	t.Helper()
	walkToVerify(t, flow)
	flow.SetOTP("123456")
	if err := flow.Submit(context.Background()); err != nil {
		t.Fatalf("verify stage: %v", err)
	}
	if flow.Stage() != StageReset {
		t.Fatalf("stage = %v, want StageReset", flow.Stage())
	}
}

func TestRecoveryFlowStartsAtRequestStage(t *testing.T) {
	flow := NewRecoveryFlow(&stubRecoveryAPI{})
	if flow.Stage() != StageRequest {
		t.Fatalf("stage = %v, want StageRequest", flow.Stage())
	}
	if flow.Err() != "" || flow.InFlight() || flow.RedirectToSignIn() {
		t.Error("fresh wizard must have no error, no in-flight submission, no redirect")
	}
}

func TestRecoveryFlowRequestRequiresEmail(t *testing.T) {
	api := &stubRecoveryAPI{}
	flow := NewRecoveryFlow(api)

	if err := flow.Submit(context.Background()); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if got := flow.Err(); got != "Email is required!" {
		t.Fatalf("error message = %q", got)
	}
	if api.sendCalls != 0 {
		t.Error("local validation failure must not reach the network")
	}
	if flow.Stage() != StageRequest {
		t.Errorf("stage = %v, want StageRequest", flow.Stage())
	}
}

func TestRecoveryFlowRequestFailureKeepsStage(t *testing.T) {
	// The stage message is fixed even when the server sent its own.
	api := &stubRecoveryAPI{sendErr: &account.APIError{Status: 404, Message: "account not found"}}
	flow := NewRecoveryFlow(api)
	flow.SetEmail("alice@example.com")

	if err := flow.Submit(context.Background()); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if flow.Stage() != StageRequest {
		t.Fatalf("stage = %v, want StageRequest", flow.Stage())
	}
	if got := flow.Err(); got != "Failed to send OTP. Try again!" {
		t.Fatalf("error message = %q", got)
	}
}

func TestRecoveryFlowVerifyRequiresOTP(t *testing.T) {
	api := &stubRecoveryAPI{}
	flow := NewRecoveryFlow(api)
	walkToVerify(t, flow)

	if err := flow.Submit(context.Background()); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if got := flow.Err(); got != "OTP is required!" {
		t.Fatalf("error message = %q", got)
	}
	if api.verifyCalls != 0 {
		t.Error("local validation failure must not reach the network")
	}
}

func TestRecoveryFlowWrongOTPKeepsStage(t *testing.T) {
	api := &stubRecoveryAPI{verify: &account.APIError{Status: 400, Message: "invalid or expired otp"}}
	flow := NewRecoveryFlow(api)
	walkToVerify(t, flow)

	flow.SetOTP("000000")
	if err := flow.Submit(context.Background()); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if flow.Stage() != StageVerify {
		t.Fatalf("stage = %v, want StageVerify", flow.Stage())
	}
	if got := flow.Err(); got != "Invalid OTP. Please check and try again." {
		t.Fatalf("error message = %q", got)
	}
}

func TestRecoveryFlowResetLocalValidation(t *testing.T) {
	api := &stubRecoveryAPI{}
	flow := NewRecoveryFlow(api)
	walkToReset(t, flow)

	if err := flow.Submit(context.Background()); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if got := flow.Err(); got != "Both password fields are required!" {
		t.Fatalf("error message = %q", got)
	}

	flow.SetNewPassword("newsecret1")
	flow.SetConfirmPassword("newsecret2")
	if err := flow.Submit(context.Background()); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if got := flow.Err(); got != "Passwords do not match!" {
		t.Fatalf("error message = %q", got)
	}
	if api.resetCalls != 0 {
		t.Error("local validation failure must not reach the network")
	}
	if flow.Stage() != StageReset {
		t.Errorf("stage = %v, want StageReset", flow.Stage())
	}
}

func TestRecoveryFlowResetSuccessRestartsWizard(t *testing.T) {
	api := &stubRecoveryAPI{}
	flow := NewRecoveryFlow(api)
	walkToReset(t, flow)

	flow.SetNewPassword("newsecret1")
	flow.SetConfirmPassword("newsecret1")
	if err := flow.Submit(context.Background()); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if api.lastEmail != "alice@example.com" || api.lastPass != "newsecret1" {
		t.Errorf("reset forwarded (%q, %q)", api.lastEmail, api.lastPass)
	}
	if flow.Stage() != StageRequest {
		t.Fatalf("stage = %v, want StageRequest after success", flow.Stage())
	}
	if !flow.RedirectToSignIn() {
		t.Error("stage-3 success should redirect to the sign-in surface")
	}

	// All fields were cleared: the next request-stage submission fails the
	// email check instead of reusing the previous address.
	if err := flow.Submit(context.Background()); err != nil {
		t.Fatalf("Submit after restart: %v", err)
	}
	if got := flow.Err(); got != "Email is required!" {
		t.Fatalf("post-restart error = %q", got)
	}
}

func TestRecoveryFlowResetFailureKeepsStage(t *testing.T) {
	api := &stubRecoveryAPI{reset: errors.New("dial tcp: connection refused")}
	flow := NewRecoveryFlow(api)
	walkToReset(t, flow)

	flow.SetNewPassword("newsecret1")
	flow.SetConfirmPassword("newsecret1")
	if err := flow.Submit(context.Background()); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if flow.Stage() != StageReset {
		t.Fatalf("stage = %v, want StageReset", flow.Stage())
	}
	if got := flow.Err(); got != "Failed to reset password. Try again!" {
		t.Fatalf("error message = %q", got)
	}
	if flow.RedirectToSignIn() {
		t.Error("failed reset must not redirect")
	}
}

func TestRecoveryFlowEditingFieldClearsError(t *testing.T) {
	api := &stubRecoveryAPI{}
	flow := NewRecoveryFlow(api)

	if err := flow.Submit(context.Background()); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if flow.Err() == "" {
		t.Fatal("expected an error from the empty submission")
	}
	flow.SetEmail("a")
	if got := flow.Err(); got != "" {
		t.Fatalf("error after edit = %q, want empty", got)
	}

	walkToVerify(t, flow)
	if err := flow.Submit(context.Background()); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	flow.SetOTP("1")
	if got := flow.Err(); got != "" {
		t.Fatalf("error after OTP edit = %q, want empty", got)
	}
}

func TestRecoveryFlowRejectsSecondSubmissionInFlight(t *testing.T) {
	api := &stubRecoveryAPI{release: make(chan struct{})}
	flow := NewRecoveryFlow(api)
	flow.SetEmail("alice@example.com")

	done := make(chan error, 1)
	go func() {
		done <- flow.Submit(context.Background())
	}()

	deadline := time.After(2 * time.Second)
	for !flow.InFlight() {
		select {
		case <-deadline:
			t.Fatal("first submission never reached the in-flight state")
		default:
			time.Sleep(time.Millisecond)
		}
	}

	if err := flow.Submit(context.Background()); !errors.Is(err, ErrSubmissionInFlight) {
		t.Fatalf("second submission error = %v, want ErrSubmissionInFlight", err)
	}

	close(api.release)
	if err := <-done; err != nil {
		t.Fatalf("first submission: %v", err)
	}
	if api.sendCalls != 1 {
		t.Errorf("SendOTP calls = %d, want 1", api.sendCalls)
	}
	if flow.Stage() != StageVerify {
		t.Errorf("stage = %v, want StageVerify", flow.Stage())
	}
}
