package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/foodcort/foodcort/internal/api/metrics"
	"github.com/foodcort/foodcort/internal/api/middleware"
	"github.com/foodcort/foodcort/internal/core/domain"
	"github.com/foodcort/foodcort/internal/core/ports"
)

// AuthHandler handles HTTP requests for authentication and credential
// recovery.
type AuthHandler struct {
	accounts   ports.AccountService
	recovery   ports.RecoveryService
	sessionTTL time.Duration
}

func NewAuthHandler(accounts ports.AccountService, recovery ports.RecoveryService, sessionTTL time.Duration) *AuthHandler {
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	return &AuthHandler{accounts: accounts, recovery: recovery, sessionTTL: sessionTTL}
}

// SignUp creates a new account and establishes a session.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signUpRequest  true  "Account details"
// @Success      201   {object}  accountResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/auth/signup [post]
func (h *AuthHandler) SignUp(c echo.Context) error {
	var req signUpRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	account, token, err := h.accounts.SignUp(c.Request().Context(), ports.SignUpInput{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
		Mobile:   req.Mobile,
		Role:     req.Role,
	})
	if err != nil {
		metrics.SignupsTotal.WithLabelValues("password", "error").Inc()
		return err
	}

	metrics.SignupsTotal.WithLabelValues("password", "ok").Inc()
	h.setSessionCookie(c, token)
	return c.JSON(http.StatusCreated, toAccountResponse(account))
}

// SignIn authenticates with email and password.
//
// @Summary      Sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signInRequest  true  "Credentials"
// @Success      200   {object}  accountResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/auth/signin [post]
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req signInRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	account, token, err := h.accounts.SignIn(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.SigninsTotal.WithLabelValues("password", "error").Inc()
		return err
	}

	metrics.SigninsTotal.WithLabelValues("password", "ok").Inc()
	h.setSessionCookie(c, token)
	return c.JSON(http.StatusOK, toAccountResponse(account))
}

// GoogleAuth is the unified identity-assertion endpoint shared by sign-up and
// sign-in; the account is created on first contact and matched afterwards.
//
// @Summary      Sign up or sign in with a verified identity assertion
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      googleAuthRequest  true  "Identity assertion"
// @Success      200   {object}  accountResponse
// @Failure      400   {object}  errorResponse
// @Router       /api/auth/google-auth [post]
func (h *AuthHandler) GoogleAuth(c echo.Context) error {
	var req googleAuthRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	account, token, err := h.accounts.GoogleAuth(c.Request().Context(), ports.GoogleAuthInput{
		FullName: req.FullName,
		Email:    req.Email,
		Mobile:   req.Mobile,
		Role:     req.Role,
	})
	if err != nil {
		metrics.SigninsTotal.WithLabelValues("google", "error").Inc()
		return err
	}

	metrics.SigninsTotal.WithLabelValues("google", "ok").Inc()
	h.setSessionCookie(c, token)
	return c.JSON(http.StatusOK, toAccountResponse(account))
}

// SignOut clears the session cookie.
//
// @Summary      Sign out
// @Tags         auth
// @Produce      json
// @Success      200  {object}  statusResponse
// @Router       /api/auth/signout [post]
func (h *AuthHandler) SignOut(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return c.JSON(http.StatusOK, statusResponse{Message: "signed out"})
}

// SendOTP issues a recovery code bound to the account's email.
//
// @Summary      Request a password-reset OTP
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      sendOTPRequest  true  "Account email"
// @Success      200   {object}  statusResponse
// @Failure      404   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /api/auth/send-otp [post]
func (h *AuthHandler) SendOTP(c echo.Context) error {
	var req sendOTPRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.recovery.SendOTP(c.Request().Context(), req.Email); err != nil {
		if errors.Is(err, domain.ErrOTPRateLimited) {
			metrics.OTPRequestsTotal.WithLabelValues("rate_limited").Inc()
		} else {
			metrics.OTPRequestsTotal.WithLabelValues("error").Inc()
		}
		return err
	}

	metrics.OTPRequestsTotal.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusOK, statusResponse{Message: "otp sent"})
}

// VerifyOTP checks a recovery code and opens the reset gate.
//
// @Summary      Verify a password-reset OTP
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      verifyOTPRequest  true  "Email and code"
// @Success      200   {object}  statusResponse
// @Failure      400   {object}  errorResponse
// @Router       /api/auth/verify-otp [post]
func (h *AuthHandler) VerifyOTP(c echo.Context) error {
	var req verifyOTPRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.recovery.VerifyOTP(c.Request().Context(), req.Email, req.OTP); err != nil {
		metrics.OTPVerificationsTotal.WithLabelValues("invalid").Inc()
		return err
	}

	metrics.OTPVerificationsTotal.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusOK, statusResponse{Message: "otp verified"})
}

// ResetPassword stores a new password after a verified OTP.
//
// @Summary      Reset the account password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      resetPasswordRequest  true  "Email and new password"
// @Success      200   {object}  statusResponse
// @Failure      400   {object}  errorResponse
// @Router       /api/auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.recovery.ResetPassword(c.Request().Context(), req.Email, req.NewPassword); err != nil {
		metrics.PasswordResetsTotal.WithLabelValues("error").Inc()
		return err
	}

	metrics.PasswordResetsTotal.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusOK, statusResponse{Message: "password reset"})
}

func (h *AuthHandler) setSessionCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.sessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func toAccountResponse(a *domain.Account) accountResponse {
	return accountResponse{
		ID:       a.ID,
		FullName: a.FullName,
		Email:    a.Email,
		Mobile:   a.Mobile,
		Role:     a.Role,
	}
}
