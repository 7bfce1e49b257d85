package account

import (
	"context"
	"errors"
	"fmt"

	"loanvault/internal/domain/lending"
	"loanvault/internal/domain/uow"
	"loanvault/pkg/id"

	"gorm.io/gorm"
)

type Usecase struct {
	users lending.UserRepository
	uow   uow.UnitOfWork
}

func NewUsecase(users lending.UserRepository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{users: users, uow: tx}
}

type UserDTO struct {
	AccountID     string           `json:"account_id"`
	Owner         string           `json:"owner"`
	TokenBalances lending.Balances `json:"token_balances"`
	HasActiveLoan bool             `json:"has_active_loan"`
}

func userDTO(a *lending.UserAccount) *UserDTO {
	return &UserDTO{
		AccountID:     a.AccountID,
		Owner:         a.Owner,
		TokenBalances: a.TokenBalances,
		HasActiveLoan: a.HasActiveLoan,
	}
}

// InitUser creates the caller's ledger account if absent. Re-invocation
// returns the existing account untouched, active loan flag and balances
// included.
func (u *Usecase) InitUser(ctx context.Context, caller string) (*UserDTO, error) {
	var dto *UserDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		acct, err := r.Users.GetByOwner(ctx, caller)
		switch {
		case err == nil:
		case errors.Is(err, gorm.ErrRecordNotFound):
			acct = &lending.UserAccount{
				AccountID: id.Derive32("user", caller),
				Owner:     caller,
			}
			if err := r.Users.Create(ctx, acct); err != nil {
				return err
			}
		default:
			return err
		}
		dto = userDTO(acct)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Get reads an account by wallet identity.
func (u *Usecase) Get(ctx context.Context, owner string) (*UserDTO, error) {
	acct, err := u.users.GetByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}
	return userDTO(acct), nil
}

type DepositInput struct {
	Caller        string
	TokenMint     string
	SourceAccount string
	VaultAccount  string
	Amount        uint64
	TokenIndex    uint8
}

// Deposit moves tokens from the caller's holding account into the vault's
// custodial account and credits the ledger slot, all in one transaction. A
// failed credit rolls the transfer back.
func (u *Usecase) Deposit(ctx context.Context, in DepositInput) (*UserDTO, error) {
	if in.TokenIndex >= lending.MaxTokenSlots {
		return nil, lending.ErrInvalidTokenIndex
	}

	var dto *UserDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		vault, err := r.Vaults.GetByTokenMint(ctx, in.TokenMint)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: no vault registered for mint %s", lending.ErrNotFound, in.TokenMint)
		}
		if err != nil {
			return err
		}

		src, err := r.Tokens.GetByAddressForUpdate(ctx, in.SourceAccount)
		if err != nil {
			return err
		}
		if src.Mint != vault.TokenMint {
			return lending.ErrInvalidTokenMint
		}
		if src.Owner != in.Caller {
			return lending.ErrInvalidTokenOwner
		}
		if in.VaultAccount != vault.VaultAddress {
			return lending.ErrInvalidVaultAddress
		}

		acct, err := r.Users.GetByOwnerForUpdate(ctx, in.Caller)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: no ledger account for %s", lending.ErrNotFound, in.Caller)
		}
		if err != nil {
			return err
		}

		if err := r.Tokens.Transfer(ctx, src.Address, vault.VaultAddress, in.Caller, in.Amount); err != nil {
			return err
		}
		if err := acct.TokenBalances.Credit(in.TokenIndex, in.Amount); err != nil {
			return err
		}
		if err := r.Users.Save(ctx, acct); err != nil {
			return err
		}
		dto = userDTO(acct)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}
