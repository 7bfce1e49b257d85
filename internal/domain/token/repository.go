package token

import "context"

// Repository is the token-movement collaborator. Transfer must be atomic with
// the surrounding unit of work: a failed deposit rolls the movement back.
type Repository interface {
	Create(ctx context.Context, a *Account) error
	GetByAddress(ctx context.Context, address string) (*Account, error)
	GetByAddressForUpdate(ctx context.Context, address string) (*Account, error)
	Save(ctx context.Context, a *Account) error
	// Transfer moves amount from source to dest. The authority must own the
	// source account; an insufficient source balance fails the transfer.
	Transfer(ctx context.Context, source, dest, authority string, amount uint64) error
}
