package uow

import (
	"context"

	"loanhub-backend/internal/domain/applicant"
	"loanhub-backend/internal/domain/catalog"
	"loanhub-backend/internal/domain/decision"
	"loanhub-backend/internal/domain/document"
	"loanhub-backend/internal/domain/loan"
)

// Repos are bound to the same transaction.
type Repos struct {
	Applicants applicant.Repository
	Catalog    catalog.Repository
	Documents  document.Repository
	Loans      loan.Repository
	Decisions  decision.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock loan first, then pass it in
	WithinLoanTx(ctx context.Context, loanID string, fn func(r Repos, l *loan.Loan) error) error
}
