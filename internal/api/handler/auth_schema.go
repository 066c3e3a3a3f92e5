package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx
// responses. The web client reads "message" first when extracting errors.
type errorResponse struct {
	Message string `json:"message"`
}

// --- Request types ---

type signUpRequest struct {
	FullName string `json:"fullName" validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Mobile   string `json:"mobile"   validate:"required"`
	Role     string `json:"role"`
}

type signInRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// googleAuthRequest carries the identity assertion plus whatever the client
// collected locally. Mobile and role arrive only on the sign-up path.
type googleAuthRequest struct {
	FullName string `json:"fullName" validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Mobile   string `json:"mobile"`
	Role     string `json:"role"`
}

type sendOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type verifyOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp"   validate:"required"`
}

type resetPasswordRequest struct {
	Email       string `json:"email"       validate:"required,email"`
	NewPassword string `json:"newPassword" validate:"required"`
}

// --- Response types ---

// accountResponse is the session/account record returned by every
// session-establishing endpoint and by GET /api/user/current.
type accountResponse struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Mobile   string `json:"mobile"`
	Role     string `json:"role"`
}

type statusResponse struct {
	Message string `json:"message"`
}
