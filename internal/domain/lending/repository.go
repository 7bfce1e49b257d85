package lending

import "context"

// ConfigRepository stores the singleton ProtocolConfig row.
type ConfigRepository interface {
	// Get returns the singleton config (gorm.ErrRecordNotFound before init).
	Get(ctx context.Context) (*ProtocolConfig, error)
	Create(ctx context.Context, c *ProtocolConfig) error
	Save(ctx context.Context, c *ProtocolConfig) error
}

type VaultRepository interface {
	Create(ctx context.Context, v *CollateralVault) error
	GetByVaultID(ctx context.Context, vaultID string) (*CollateralVault, error)
	GetByTokenMint(ctx context.Context, tokenMint string) (*CollateralVault, error)
}

type UserRepository interface {
	Create(ctx context.Context, a *UserAccount) error
	GetByOwner(ctx context.Context, owner string) (*UserAccount, error)
	// GetByOwnerForUpdate locks the row so balance mutations serialize
	// per account.
	GetByOwnerForUpdate(ctx context.Context, owner string) (*UserAccount, error)
	Save(ctx context.Context, a *UserAccount) error
}

type LoanRepository interface {
	Create(ctx context.Context, l *Loan) error
	GetByLoanID(ctx context.Context, loanID string) (*Loan, error)
	GetByLoanIDForUpdate(ctx context.Context, loanID string) (*Loan, error)
	Save(ctx context.Context, l *Loan) error
}
