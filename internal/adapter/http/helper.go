package http

import (
	"errors"
	"net/http"
	"strings"

	"loanvault/internal/domain/lending"
	"loanvault/internal/domain/token"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// HeaderWalletID carries the gateway-verified caller identity.
const HeaderWalletID = "X-Wallet-Id"

// callerID extracts the authenticated wallet identity or fails the request.
// The returned error is always non-nil on a bad header so handlers stop
// before touching any usecase.
func callerID(c echo.Context) (string, error) {
	w := strings.TrimSpace(c.Request().Header.Get(HeaderWalletID))
	if w == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing "+HeaderWalletID)
	}
	if !reHex32.MatchString(w) {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "invalid "+HeaderWalletID)
	}
	return w, nil
}

// errorStatus maps each engine error kind to a status and a stable code.
// Kinds are never coerced: two different sentinels never share a code.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, lending.ErrUnauthorized):
		return http.StatusForbidden, "UNAUTHORIZED"
	case errors.Is(err, lending.ErrUnauthorizedAccess):
		return http.StatusForbidden, "UNAUTHORIZED_ACCESS"
	case errors.Is(err, lending.ErrInvalidTokenMint):
		return http.StatusUnprocessableEntity, "INVALID_TOKEN_MINT"
	case errors.Is(err, lending.ErrInvalidTokenOwner):
		return http.StatusUnprocessableEntity, "INVALID_TOKEN_OWNER"
	case errors.Is(err, lending.ErrInvalidVaultAddress):
		return http.StatusUnprocessableEntity, "INVALID_VAULT_ADDRESS"
	case errors.Is(err, lending.ErrInvalidAmount):
		return http.StatusBadRequest, "INVALID_AMOUNT"
	case errors.Is(err, lending.ErrInvalidDuration):
		return http.StatusBadRequest, "INVALID_DURATION"
	case errors.Is(err, lending.ErrInvalidTokenIndex):
		return http.StatusBadRequest, "INVALID_TOKEN_INDEX"
	case errors.Is(err, lending.ErrInsufficientCollateral):
		return http.StatusConflict, "INSUFFICIENT_COLLATERAL"
	case errors.Is(err, lending.ErrLoanAlreadyActive):
		return http.StatusConflict, "LOAN_ALREADY_ACTIVE"
	case errors.Is(err, lending.ErrArithmetic):
		return http.StatusConflict, "ARITHMETIC_ERROR"
	case errors.Is(err, lending.ErrInvalidPrice):
		return http.StatusUnprocessableEntity, "INVALID_PRICE"
	case errors.Is(err, lending.ErrWrongProgramOwner):
		return http.StatusUnprocessableEntity, "ACCOUNT_OWNED_BY_WRONG_PROGRAM"
	case errors.Is(err, token.ErrInsufficientFunds):
		return http.StatusConflict, "INSUFFICIENT_FUNDS"
	case errors.Is(err, token.ErrBadAuthority):
		return http.StatusForbidden, "BAD_AUTHORITY"
	case errors.Is(err, token.ErrSelfTransfer):
		return http.StatusUnprocessableEntity, "SELF_TRANSFER"
	case errors.Is(err, lending.ErrNotFound),
		errors.Is(err, token.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound, "NOT_FOUND"
	default:
		return http.StatusInternalServerError, "INTERNAL"
	}
}

func jsonError(c echo.Context, err error) error {
	status, code := errorStatus(err)
	return c.JSON(status, ErrorResponse{Error: err.Error(), Code: code})
}
