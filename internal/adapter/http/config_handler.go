package http

import (
	"net/http"

	"loanvault/internal/usecase/protocol"

	"github.com/labstack/echo/v4"
)

type ConfigHandler struct{ uc *protocol.Usecase }

func NewConfigHandler(uc *protocol.Usecase) *ConfigHandler { return &ConfigHandler{uc: uc} }

type initializeConfigReq struct {
	InterestRateBps         uint64 `json:"interest_rate_bps" validate:"lte=10000"`
	LiquidationThresholdBps uint64 `json:"liquidation_threshold_bps" validate:"required,gte=10000"`
	PriceStaleThreshold     uint64 `json:"price_stale_threshold" validate:"required"`
}

func (h *ConfigHandler) InitializeConfig(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}
	var req initializeConfigReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	dto, err := h.uc.InitializeConfig(c.Request().Context(), protocol.InitializeConfigInput{
		Caller:                  caller,
		InterestRateBps:         req.InterestRateBps,
		LiquidationThresholdBps: req.LiquidationThresholdBps,
		PriceStaleThreshold:     req.PriceStaleThreshold,
	})
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}
