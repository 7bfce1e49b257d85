package lendingmock

import (
	"context"

	domain "loanvault/internal/domain/lending"
)

// Function-backed mocks for the lending repositories. Only fill the fields a
// test needs; unfilled getters report context.Canceled so misuse is loud.

type ConfigRepo struct {
	GetFn    func(ctx context.Context) (*domain.ProtocolConfig, error)
	CreateFn func(ctx context.Context, c *domain.ProtocolConfig) error
	SaveFn   func(ctx context.Context, c *domain.ProtocolConfig) error
}

func (m *ConfigRepo) Get(ctx context.Context) (*domain.ProtocolConfig, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx)
	}
	return nil, context.Canceled
}
func (m *ConfigRepo) Create(ctx context.Context, c *domain.ProtocolConfig) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, c)
	}
	return nil
}
func (m *ConfigRepo) Save(ctx context.Context, c *domain.ProtocolConfig) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, c)
	}
	return nil
}

type VaultRepo struct {
	CreateFn         func(ctx context.Context, v *domain.CollateralVault) error
	GetByVaultIDFn   func(ctx context.Context, vaultID string) (*domain.CollateralVault, error)
	GetByTokenMintFn func(ctx context.Context, tokenMint string) (*domain.CollateralVault, error)
}

func (m *VaultRepo) Create(ctx context.Context, v *domain.CollateralVault) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, v)
	}
	return nil
}
func (m *VaultRepo) GetByVaultID(ctx context.Context, vaultID string) (*domain.CollateralVault, error) {
	if m.GetByVaultIDFn != nil {
		return m.GetByVaultIDFn(ctx, vaultID)
	}
	return nil, context.Canceled
}
func (m *VaultRepo) GetByTokenMint(ctx context.Context, tokenMint string) (*domain.CollateralVault, error) {
	if m.GetByTokenMintFn != nil {
		return m.GetByTokenMintFn(ctx, tokenMint)
	}
	return nil, context.Canceled
}

type UserRepo struct {
	CreateFn              func(ctx context.Context, a *domain.UserAccount) error
	GetByOwnerFn          func(ctx context.Context, owner string) (*domain.UserAccount, error)
	GetByOwnerForUpdateFn func(ctx context.Context, owner string) (*domain.UserAccount, error)
	SaveFn                func(ctx context.Context, a *domain.UserAccount) error
}

func (m *UserRepo) Create(ctx context.Context, a *domain.UserAccount) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}
func (m *UserRepo) GetByOwner(ctx context.Context, owner string) (*domain.UserAccount, error) {
	if m.GetByOwnerFn != nil {
		return m.GetByOwnerFn(ctx, owner)
	}
	return nil, context.Canceled
}
func (m *UserRepo) GetByOwnerForUpdate(ctx context.Context, owner string) (*domain.UserAccount, error) {
	if m.GetByOwnerForUpdateFn != nil {
		return m.GetByOwnerForUpdateFn(ctx, owner)
	}
	return nil, context.Canceled
}
func (m *UserRepo) Save(ctx context.Context, a *domain.UserAccount) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, a)
	}
	return nil
}

type LoanRepo struct {
	CreateFn               func(ctx context.Context, l *domain.Loan) error
	GetByLoanIDFn          func(ctx context.Context, loanID string) (*domain.Loan, error)
	GetByLoanIDForUpdateFn func(ctx context.Context, loanID string) (*domain.Loan, error)
	SaveFn                 func(ctx context.Context, l *domain.Loan) error
}

func (m *LoanRepo) Create(ctx context.Context, l *domain.Loan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}
func (m *LoanRepo) GetByLoanID(ctx context.Context, loanID string) (*domain.Loan, error) {
	if m.GetByLoanIDFn != nil {
		return m.GetByLoanIDFn(ctx, loanID)
	}
	return nil, context.Canceled
}
func (m *LoanRepo) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*domain.Loan, error) {
	if m.GetByLoanIDForUpdateFn != nil {
		return m.GetByLoanIDForUpdateFn(ctx, loanID)
	}
	return nil, context.Canceled
}
func (m *LoanRepo) Save(ctx context.Context, l *domain.Loan) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, l)
	}
	return nil
}
