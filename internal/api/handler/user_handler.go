package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/foodcort/foodcort/internal/core/ports"
)

// UserHandler serves the current-session endpoint.
type UserHandler struct {
	accounts ports.AccountService
}

func NewUserHandler(accounts ports.AccountService) *UserHandler {
	return &UserHandler{accounts: accounts}
}

// Current returns the account behind the session cookie. Any failure is a
// 401; the client treats it as "no session".
//
// @Summary      Fetch the current session's account
// @Tags         user
// @Produce      json
// @Success      200  {object}  accountResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/user/current [get]
func (h *UserHandler) Current(c echo.Context) error {
	accountID, err := ctxAccountID(c)
	if err != nil {
		return err
	}

	account, err := h.accounts.CurrentAccount(c.Request().Context(), accountID)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "no session")
	}
	return c.JSON(http.StatusOK, toAccountResponse(account))
}
