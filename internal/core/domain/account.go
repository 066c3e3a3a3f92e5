package domain

import (
	"strings"
	"time"
)

const (
	RoleCustomer = "customer"
	RoleOwner    = "owner"
	RoleCourier  = "courier"
)

// roleAliases maps the spellings accepted on input to the canonical
// enumeration. The first web client shipped "user" and both casings of
// "deliveryBoy"; they are normalized here so only canonical values are
// ever persisted.
var roleAliases = map[string]string{
	"user":        RoleCustomer,
	"customer":    RoleCustomer,
	"owner":       RoleOwner,
	"deliveryboy": RoleCourier,
	"courier":     RoleCourier,
}

// NormalizeRole resolves a client-supplied role to its canonical value.
// An empty role defaults to RoleCustomer; unknown roles are rejected.
func NormalizeRole(role string) (string, error) {
	role = strings.ToLower(strings.TrimSpace(role))
	if role == "" {
		return RoleCustomer, nil
	}
	canonical, ok := roleAliases[role]
	if !ok {
		return "", ErrInvalidRole
	}
	return canonical, nil
}

// Account models a person known to the platform. PasswordHash is empty for
// accounts created through the identity-provider path; such accounts cannot
// sign in with a password until one is set via recovery.
type Account struct {
	ID           string    `json:"id"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Mobile       string    `json:"mobile"`
	Role         string    `json:"role"`

	// Recovery state, mutated only by the credential-recovery flow.
	ResetOTP    string    `json:"-"`
	OTPVerified bool      `json:"-"`
	OTPExpires  time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasPassword reports whether the account carries a password credential.
func (a *Account) HasPassword() bool {
	return a.PasswordHash != ""
}

// NormalizeEmail lowercases and trims an email address. Uniqueness in the
// users collection is enforced on the normalized form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
