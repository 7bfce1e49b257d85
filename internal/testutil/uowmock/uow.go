package uowmock

import (
	"context"
	"errors"

	"loanvault/internal/domain/uow"
)

// Ensure compile-time compliance
var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW is a function-backed mock that satisfies uow.UnitOfWork.
// Fill in the function field you need in a test; unfilled ones return
// errUnimplemented.
type UoW struct {
	WithinTxFn func(ctx context.Context, fn func(r uow.Repos) error) error
}

func New() *UoW { return &UoW{} }

// Immediate returns a UoW that simply runs fn against the supplied repos.
// There is no rollback; tests that need rollback semantics use a real
// sqlite-backed GormUoW instead.
func Immediate(r uow.Repos) *UoW {
	return &UoW{WithinTxFn: func(ctx context.Context, fn func(r uow.Repos) error) error {
		return fn(r)
	}}
}

func (m *UoW) Reset() { *m = UoW{} }

func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return errUnimplemented
}
