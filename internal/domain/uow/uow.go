package uow

import (
	"context"

	"loanvault/internal/domain/lending"
	"loanvault/internal/domain/token"
)

type Repos struct {
	Configs lending.ConfigRepository
	Vaults  lending.VaultRepository
	Users   lending.UserRepository
	Loans   lending.LoanRepository
	Tokens  token.Repository
}

// UnitOfWork runs fn against repos bound to one transaction. An error from fn
// discards every write made inside it, token movements included.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(r Repos) error) error
}
