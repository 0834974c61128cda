package uowmock

import (
	"context"
	"errors"

	"loanhub-backend/internal/domain/loan"
	"loanhub-backend/internal/domain/uow"
)

var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW satisfies uow.UnitOfWork with function fields; nil fields return
// errUnimplemented.
type UoW struct {
	WithinTxFn     func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinLoanTxFn func(ctx context.Context, loanID string, fn func(r uow.Repos, l *loan.Loan) error) error

	// Locked records the loan ids passed to WithinLoanTx, in call order.
	Locked []string
}

// Over runs every callback directly against r. WithinLoanTx resolves the
// loan through r.Loans.GetByLoanIDForUpdate the way the real store does.
func Over(r uow.Repos) *UoW {
	return &UoW{
		WithinTxFn: func(_ context.Context, fn func(uow.Repos) error) error {
			return fn(r)
		},
		WithinLoanTxFn: func(ctx context.Context, loanID string, fn func(uow.Repos, *loan.Loan) error) error {
			l, err := r.Loans.GetByLoanIDForUpdate(ctx, loanID)
			if err != nil {
				return err
			}
			return fn(r, l)
		},
	}
}

func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn == nil {
		return errUnimplemented
	}
	return m.WithinTxFn(ctx, fn)
}

func (m *UoW) WithinLoanTx(ctx context.Context, loanID string, fn func(r uow.Repos, l *loan.Loan) error) error {
	m.Locked = append(m.Locked, loanID)
	if m.WithinLoanTxFn == nil {
		return errUnimplemented
	}
	return m.WithinLoanTxFn(ctx, loanID, fn)
}
