package protocol

import (
	"context"
	"errors"
	"time"

	"loanvault/internal/domain/lending"
	"loanvault/internal/domain/uow"
	"loanvault/pkg/id"

	"gorm.io/gorm"
)

type Usecase struct{ uow uow.UnitOfWork }

func NewUsecase(tx uow.UnitOfWork) *Usecase { return &Usecase{uow: tx} }

type InitializeConfigInput struct {
	Caller                  string
	InterestRateBps         uint64
	LiquidationThresholdBps uint64
	PriceStaleThreshold     uint64
}

type ConfigDTO struct {
	ConfigID                string    `json:"config_id"`
	InterestRateBps         uint64    `json:"interest_rate_bps"`
	LiquidationThresholdBps uint64    `json:"liquidation_threshold_bps"`
	PriceStaleThreshold     uint64    `json:"price_stale_threshold"`
	Admin                   string    `json:"admin"`
	UpdatedAt               time.Time `json:"updated_at"`
}

// InitializeConfig creates the singleton config on first call, recording the
// caller as admin. Later calls are updates and must come from that admin.
func (u *Usecase) InitializeConfig(ctx context.Context, in InitializeConfigInput) (*ConfigDTO, error) {
	// Range guards: 10000 bps = 100%. A liquidation threshold below that
	// would let loans start under-collateralized, and a zero staleness bound
	// would reject every price.
	if in.InterestRateBps > 10_000 || in.LiquidationThresholdBps < 10_000 {
		return nil, lending.ErrInvalidAmount
	}
	if in.PriceStaleThreshold == 0 {
		return nil, lending.ErrInvalidDuration
	}

	var dto *ConfigDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		cfg, err := r.Configs.Get(ctx)
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			cfg = &lending.ProtocolConfig{
				ConfigID:                id.Derive32("config"),
				InterestRateBps:         in.InterestRateBps,
				LiquidationThresholdBps: in.LiquidationThresholdBps,
				PriceStaleThreshold:     in.PriceStaleThreshold,
				Admin:                   in.Caller,
			}
			if err := r.Configs.Create(ctx, cfg); err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			if cfg.Admin != in.Caller {
				return lending.ErrUnauthorized
			}
			cfg.InterestRateBps = in.InterestRateBps
			cfg.LiquidationThresholdBps = in.LiquidationThresholdBps
			cfg.PriceStaleThreshold = in.PriceStaleThreshold
			if err := r.Configs.Save(ctx, cfg); err != nil {
				return err
			}
		}

		dto = &ConfigDTO{
			ConfigID:                cfg.ConfigID,
			InterestRateBps:         cfg.InterestRateBps,
			LiquidationThresholdBps: cfg.LiquidationThresholdBps,
			PriceStaleThreshold:     cfg.PriceStaleThreshold,
			Admin:                   cfg.Admin,
			UpdatedAt:               cfg.UpdatedAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}
