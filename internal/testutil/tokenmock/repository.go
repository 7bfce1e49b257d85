package tokenmock

import (
	"context"

	"loanvault/internal/domain/token"
)

// Repo is a function-backed mock for the token-ledger collaborator.
type Repo struct {
	CreateFn                func(ctx context.Context, a *token.Account) error
	GetByAddressFn          func(ctx context.Context, address string) (*token.Account, error)
	GetByAddressForUpdateFn func(ctx context.Context, address string) (*token.Account, error)
	SaveFn                  func(ctx context.Context, a *token.Account) error
	TransferFn              func(ctx context.Context, source, dest, authority string, amount uint64) error
}

func (m *Repo) Create(ctx context.Context, a *token.Account) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}
func (m *Repo) GetByAddress(ctx context.Context, address string) (*token.Account, error) {
	if m.GetByAddressFn != nil {
		return m.GetByAddressFn(ctx, address)
	}
	return nil, context.Canceled
}
func (m *Repo) GetByAddressForUpdate(ctx context.Context, address string) (*token.Account, error) {
	if m.GetByAddressForUpdateFn != nil {
		return m.GetByAddressForUpdateFn(ctx, address)
	}
	return nil, context.Canceled
}
func (m *Repo) Save(ctx context.Context, a *token.Account) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, a)
	}
	return nil
}
func (m *Repo) Transfer(ctx context.Context, source, dest, authority string, amount uint64) error {
	if m.TransferFn != nil {
		return m.TransferFn(ctx, source, dest, authority, amount)
	}
	return nil
}
