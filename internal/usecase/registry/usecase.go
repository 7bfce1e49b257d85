package registry

import (
	"context"
	"errors"

	"loanvault/internal/domain/lending"
	"loanvault/internal/domain/uow"
	"loanvault/pkg/id"

	"gorm.io/gorm"
)

type Usecase struct {
	vaults lending.VaultRepository
	uow    uow.UnitOfWork
}

func NewUsecase(vaults lending.VaultRepository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{vaults: vaults, uow: tx}
}

type RegisterTokenInput struct {
	Caller       string
	VaultAddress string
	TokenMint    string
	PriceFeed    string
}

type VaultDTO struct {
	VaultID      string `json:"vault_id"`
	VaultAddress string `json:"vault_address"`
	TokenMint    string `json:"token_mint"`
	PriceFeed    string `json:"price_feed"`
}

// RegisterToken records a collateral vault for a mint. Registration trusts
// the admin and stores the three addresses verbatim; deposit and loan paths
// re-validate them at use time.
func (u *Usecase) RegisterToken(ctx context.Context, in RegisterTokenInput) (*VaultDTO, error) {
	var dto *VaultDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		cfg, err := r.Configs.Get(ctx)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// No config means no admin exists yet.
			return lending.ErrUnauthorized
		}
		if err != nil {
			return err
		}
		if cfg.Admin != in.Caller {
			return lending.ErrUnauthorized
		}

		vaultID := id.Derive32("vault", cfg.Admin, in.TokenMint)
		vault, err := r.Vaults.GetByVaultID(ctx, vaultID)
		switch {
		case err == nil:
			// Already registered: reuse as-is, the vault is immutable.
		case errors.Is(err, gorm.ErrRecordNotFound):
			vault = &lending.CollateralVault{
				VaultID:      vaultID,
				Admin:        cfg.Admin,
				VaultAddress: in.VaultAddress,
				TokenMint:    in.TokenMint,
				PriceFeed:    in.PriceFeed,
			}
			if err := r.Vaults.Create(ctx, vault); err != nil {
				return err
			}
		default:
			return err
		}

		dto = &VaultDTO{
			VaultID:      vault.VaultID,
			VaultAddress: vault.VaultAddress,
			TokenMint:    vault.TokenMint,
			PriceFeed:    vault.PriceFeed,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Get returns a registered vault by its derived id.
func (u *Usecase) Get(ctx context.Context, vaultID string) (*VaultDTO, error) {
	v, err := u.vaults.GetByVaultID(ctx, vaultID)
	if err != nil {
		return nil, err
	}
	return &VaultDTO{VaultID: v.VaultID, VaultAddress: v.VaultAddress, TokenMint: v.TokenMint, PriceFeed: v.PriceFeed}, nil
}
