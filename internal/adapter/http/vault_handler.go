package http

import (
	"net/http"

	"loanvault/internal/usecase/registry"

	"github.com/labstack/echo/v4"
)

type VaultHandler struct{ uc *registry.Usecase }

func NewVaultHandler(uc *registry.Usecase) *VaultHandler { return &VaultHandler{uc: uc} }

type registerTokenReq struct {
	VaultAddress string `json:"vault_address" validate:"required,hex32"`
	TokenMint    string `json:"token_mint" validate:"required,hex32"`
	PriceFeed    string `json:"price_feed" validate:"required,hex32"`
}

func (h *VaultHandler) RegisterToken(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}
	var req registerTokenReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	dto, err := h.uc.RegisterToken(c.Request().Context(), registry.RegisterTokenInput{
		Caller:       caller,
		VaultAddress: req.VaultAddress,
		TokenMint:    req.TokenMint,
		PriceFeed:    req.PriceFeed,
	})
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *VaultHandler) GetVault(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("vault_id"))
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
