package mysql

import (
	"context"

	"loanvault/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

// WithinTx binds every repository to one transaction. An error from fn rolls
// back all of it, token transfers included, which is what gives each
// operation its all-effects-or-none contract.
func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := uow.Repos{
			Configs: &ConfigRepository{db: tx},
			Vaults:  &VaultRepository{db: tx},
			Users:   &UserRepository{db: tx},
			Loans:   &LoanRepository{db: tx},
			Tokens:  &TokenRepository{db: tx},
		}
		return fn(r)
	})
}
