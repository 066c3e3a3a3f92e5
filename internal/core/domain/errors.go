package domain

import "errors"

var ErrAccountNotFound = errors.New("account not found")
var ErrAccountExists = errors.New("account already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrInvalidRole = errors.New("invalid role")
var ErrMissingFields = errors.New("required fields missing")

// ErrOTPInvalid covers both a wrong code and an expired one. The client is
// deliberately not told which; expiry is checked server-side only.
var ErrOTPInvalid = errors.New("invalid otp")
var ErrOTPNotVerified = errors.New("otp not verified")
var ErrOTPRateLimited = errors.New("otp requests rate limited")
