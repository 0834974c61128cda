package decision

import "context"

type Repository interface {
	Create(ctx context.Context, d *Decision) error
	// ListByLoan returns decisions oldest first.
	ListByLoan(ctx context.Context, loanID uint64) ([]Decision, error)
}
