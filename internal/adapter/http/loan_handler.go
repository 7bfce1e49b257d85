package http

import (
	"net/http"

	"loanvault/internal/usecase/loan"

	"github.com/labstack/echo/v4"
)

type LoanHandler struct{ uc *loan.Usecase }

func NewLoanHandler(uc *loan.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

type initializeLoanReq struct {
	VaultID          string `json:"vault_id" validate:"required,hex32"`
	LoanAmount       uint64 `json:"loan_amount"`
	CollateralAmount uint64 `json:"collateral_amount"`
	Duration         uint64 `json:"duration"`
	TokenIndex       uint8  `json:"token_index"`
}

func (h *LoanHandler) InitializeLoan(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}
	var req initializeLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	// Numeric preconditions are deliberately left to the engine so the
	// error ordering of InitializeLoan stays observable.
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	dto, err := h.uc.InitializeLoan(c.Request().Context(), loan.InitializeLoanInput{
		Caller:           caller,
		VaultID:          req.VaultID,
		LoanAmount:       req.LoanAmount,
		CollateralAmount: req.CollateralAmount,
		Duration:         req.Duration,
		TokenIndex:       req.TokenIndex,
	})
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) GetLoan(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
