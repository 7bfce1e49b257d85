package http

import (
	"net/http"

	"loanvault/internal/usecase/account"

	"github.com/labstack/echo/v4"
)

type UserHandler struct{ uc *account.Usecase }

func NewUserHandler(uc *account.Usecase) *UserHandler { return &UserHandler{uc: uc} }

func (h *UserHandler) InitUser(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}
	dto, err := h.uc.InitUser(c.Request().Context(), caller)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *UserHandler) GetUser(c echo.Context) error {
	wallet := c.Param("wallet")
	if !reHex32.MatchString(wallet) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid wallet id"})
	}
	dto, err := h.uc.Get(c.Request().Context(), wallet)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type depositReq struct {
	TokenMint     string `json:"token_mint" validate:"required,hex32"`
	SourceAccount string `json:"source_account" validate:"required,hex32"`
	VaultAccount  string `json:"vault_account" validate:"required,hex32"`
	Amount        uint64 `json:"amount" validate:"required"`
	TokenIndex    uint8  `json:"token_index" validate:"lt=8"`
}

func (h *UserHandler) Deposit(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}
	var req depositReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	dto, err := h.uc.Deposit(c.Request().Context(), account.DepositInput{
		Caller:        caller,
		TokenMint:     req.TokenMint,
		SourceAccount: req.SourceAccount,
		VaultAccount:  req.VaultAccount,
		Amount:        req.Amount,
		TokenIndex:    req.TokenIndex,
	})
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
