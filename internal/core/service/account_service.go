package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/foodcort/foodcort/internal/core/domain"
	"github.com/foodcort/foodcort/internal/core/ports"
)

// AccountService implements sign-up, sign-in and the unified google-auth path.
type AccountService struct {
	repo      ports.AccountRepository
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewAccountService(repo ports.AccountRepository, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *AccountService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AccountService{repo: repo, jwtSecret: jwtSecret, tokenTTL: tokenTTL, log: log}
}

func (s *AccountService) SignUp(ctx context.Context, in ports.SignUpInput) (*domain.Account, string, error) {
	email := domain.NormalizeEmail(in.Email)
	if strings.TrimSpace(in.FullName) == "" || email == "" || in.Password == "" || strings.TrimSpace(in.Mobile) == "" {
		return nil, "", domain.ErrMissingFields
	}

	role, err := domain.NormalizeRole(in.Role)
	if err != nil {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	now := time.Now().UTC()
	account := &domain.Account{
		FullName:     strings.TrimSpace(in.FullName),
		Email:        email,
		PasswordHash: string(hash),
		Mobile:       strings.TrimSpace(in.Mobile),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, account)
	if err != nil {
		return nil, "", err
	}

	token, err := s.generateToken(created)
	if err != nil {
		return nil, "", err
	}

	s.log.Info().Str("email", created.Email).Str("role", created.Role).Msg("account created")
	return created, token, nil
}

func (s *AccountService) SignIn(ctx context.Context, email, password string) (*domain.Account, string, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, "", domain.ErrMissingFields
	}

	account, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", err
	}

	// Accounts created through the identity-provider path have no password
	// credential; a password sign-in against them must not leak that.
	if !account.HasPassword() {
		return nil, "", domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(account)
	if err != nil {
		return nil, "", err
	}
	return account, token, nil
}

func (s *AccountService) GoogleAuth(ctx context.Context, in ports.GoogleAuthInput) (*domain.Account, string, error) {
	email := domain.NormalizeEmail(in.Email)
	if strings.TrimSpace(in.FullName) == "" || email == "" {
		return nil, "", domain.ErrMissingFields
	}

	account, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, domain.ErrAccountNotFound) {
			return nil, "", err
		}

		role, roleErr := domain.NormalizeRole(in.Role)
		if roleErr != nil {
			return nil, "", roleErr
		}

		now := time.Now().UTC()
		account, err = s.repo.Create(ctx, &domain.Account{
			FullName:  strings.TrimSpace(in.FullName),
			Email:     email,
			Mobile:    strings.TrimSpace(in.Mobile),
			Role:      role,
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil {
			// Lost a race with a concurrent first sign-in for the same email.
			if errors.Is(err, domain.ErrAccountExists) {
				account, err = s.repo.FindByEmail(ctx, email)
			}
			if err != nil {
				return nil, "", err
			}
		} else {
			s.log.Info().Str("email", email).Msg("account created via identity assertion")
		}
	}

	token, err := s.generateToken(account)
	if err != nil {
		return nil, "", err
	}
	return account, token, nil
}

func (s *AccountService) CurrentAccount(ctx context.Context, id string) (*domain.Account, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *AccountService) generateToken(account *domain.Account) (string, error) {
	claims := jwt.MapClaims{
		"sub":   account.ID,
		"email": account.Email,
		"role":  account.Role,
		"exp":   time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
