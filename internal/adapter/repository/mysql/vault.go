package mysql

import (
	"context"

	"loanvault/internal/domain/lending"

	"gorm.io/gorm"
)

type VaultRepository struct{ db *gorm.DB }

func NewVaultRepository(db *gorm.DB) *VaultRepository { return &VaultRepository{db: db} }

func (r *VaultRepository) Create(ctx context.Context, v *lending.CollateralVault) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *VaultRepository) GetByVaultID(ctx context.Context, vaultID string) (*lending.CollateralVault, error) {
	var out lending.CollateralVault
	res := r.db.WithContext(ctx).Where("vault_id = ?", vaultID).First(&out)
	return &out, res.Error
}

func (r *VaultRepository) GetByTokenMint(ctx context.Context, tokenMint string) (*lending.CollateralVault, error) {
	var out lending.CollateralVault
	res := r.db.WithContext(ctx).Where("token_mint = ?", tokenMint).First(&out)
	return &out, res.Error
}
