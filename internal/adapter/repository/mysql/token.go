package mysql

import (
	"context"
	"errors"
	"math"

	"loanvault/internal/domain/lending"
	"loanvault/internal/domain/token"

	"gorm.io/gorm"
)

type TokenRepository struct{ db *gorm.DB }

func NewTokenRepository(db *gorm.DB) *TokenRepository { return &TokenRepository{db: db} }

func (r *TokenRepository) Create(ctx context.Context, a *token.Account) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *TokenRepository) Save(ctx context.Context, a *token.Account) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *TokenRepository) GetByAddress(ctx context.Context, address string) (*token.Account, error) {
	var out token.Account
	res := r.db.WithContext(ctx).Where("address = ?", address).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, token.ErrNotFound
	}
	return &out, res.Error
}

func (r *TokenRepository) GetByAddressForUpdate(ctx context.Context, address string) (*token.Account, error) {
	var out token.Account
	res := lockForUpdate(r.db.WithContext(ctx)).
		Where("address = ?", address).
		First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, token.ErrNotFound
	}
	return &out, res.Error
}

// Transfer locks both rows in address order (deadlock avoidance), verifies
// authority and funds, then moves the amount. Runs inside whatever
// transaction r.db is bound to, so a later failure in the same unit of work
// rolls it back.
func (r *TokenRepository) Transfer(ctx context.Context, source, dest, authority string, amount uint64) error {
	if source == dest {
		return token.ErrSelfTransfer
	}
	first, second := source, dest
	if dest < source {
		first, second = dest, source
	}
	locked := map[string]*token.Account{}
	for _, addr := range []string{first, second} {
		acc, err := r.GetByAddressForUpdate(ctx, addr)
		if err != nil {
			return err
		}
		locked[addr] = acc
	}
	src, dst := locked[source], locked[dest]

	if src.Owner != authority {
		return token.ErrBadAuthority
	}
	if src.Balance < amount {
		return token.ErrInsufficientFunds
	}
	if amount > math.MaxUint64-dst.Balance {
		return lending.ErrArithmetic
	}

	src.Balance -= amount
	dst.Balance += amount
	if err := r.Save(ctx, src); err != nil {
		return err
	}
	return r.Save(ctx, dst)
}
