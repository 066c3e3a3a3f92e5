package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/foodcort/foodcort/internal/core/domain"
	"github.com/foodcort/foodcort/internal/core/ports"
)

const otpDigits = 6

// RecoveryService issues, verifies and consumes password-reset OTPs. Expiry
// is enforced here, at verification time; clients only ever see a single
// "invalid" failure for both a wrong and an expired code.
type RecoveryService struct {
	repo    ports.AccountRepository
	limiter ports.OTPLimiter
	sender  ports.OTPSender
	otpTTL  time.Duration
	log     zerolog.Logger
	now     func() time.Time
}

func NewRecoveryService(repo ports.AccountRepository, limiter ports.OTPLimiter, sender ports.OTPSender, otpTTL time.Duration, log zerolog.Logger) *RecoveryService {
	if otpTTL <= 0 {
		otpTTL = 5 * time.Minute
	}
	return &RecoveryService{
		repo:    repo,
		limiter: limiter,
		sender:  sender,
		otpTTL:  otpTTL,
		log:     log,
		now:     time.Now,
	}
}

// SendOTP binds a fresh code to the account with a fixed validity window,
// overwriting any previous code and closing the verified gate.
func (s *RecoveryService) SendOTP(ctx context.Context, email string) error {
	email = domain.NormalizeEmail(email)
	if email == "" {
		return domain.ErrMissingFields
	}

	if _, err := s.repo.FindByEmail(ctx, email); err != nil {
		return err
	}

	if err := s.limiter.Allow(ctx, email); err != nil {
		return err
	}

	code, err := generateOTP()
	if err != nil {
		return fmt.Errorf("generate otp: %w", err)
	}

	expires := s.now().UTC().Add(s.otpTTL)
	if err := s.repo.SetRecoveryOTP(ctx, email, code, expires); err != nil {
		return err
	}

	if err := s.sender.Send(ctx, email, code); err != nil {
		return fmt.Errorf("send otp: %w", err)
	}

	s.log.Info().Str("email", email).Time("expires", expires).Msg("recovery otp issued")
	return nil
}

func (s *RecoveryService) VerifyOTP(ctx context.Context, email, code string) error {
	email = domain.NormalizeEmail(email)
	if email == "" || code == "" {
		return domain.ErrMissingFields
	}

	account, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	if account.ResetOTP == "" {
		return domain.ErrOTPInvalid
	}
	if s.now().After(account.OTPExpires) {
		// An elapsed code is dead: clear it so it can never be reused.
		if clearErr := s.repo.ClearRecovery(ctx, email); clearErr != nil {
			s.log.Warn().Err(clearErr).Str("email", email).Msg("failed to clear expired otp")
		}
		return domain.ErrOTPInvalid
	}
	if account.ResetOTP != code {
		return domain.ErrOTPInvalid
	}

	return s.repo.MarkOTPVerified(ctx, email)
}

func (s *RecoveryService) ResetPassword(ctx context.Context, email, newPassword string) error {
	email = domain.NormalizeEmail(email)
	if email == "" || newPassword == "" {
		return domain.ErrMissingFields
	}

	account, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if !account.OTPVerified {
		return domain.ErrOTPNotVerified
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	// UpdatePassword also clears resetOtp / otpExpires / isOtpVerified so the
	// same verification can never authorize a second reset.
	if err := s.repo.UpdatePassword(ctx, email, string(hash)); err != nil {
		return err
	}

	s.log.Info().Str("email", email).Msg("password reset completed")
	return nil
}

// generateOTP returns a zero-padded numeric code of otpDigits digits.
func generateOTP() (string, error) {
	max := big.NewInt(1)
	for i := 0; i < otpDigits; i++ {
		max.Mul(max, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", otpDigits, n), nil
}
