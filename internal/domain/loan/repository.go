package loan

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Filter narrows admin listings. Zero values are ignored.
type Filter struct {
	Status Status
	BankID uint64
}

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	GetByLoanID(ctx context.Context, loanID string) (*Loan, error)
	// GetByLoanIDForUpdate locks the loan row for the rest of the transaction.
	GetByLoanIDForUpdate(ctx context.Context, loanID string) (*Loan, error)
	GetPendingByApplicantAndProduct(ctx context.Context, applicantID, productID uint64) (*Loan, error)
	ListByApplicant(ctx context.Context, applicantID uint64, status Status) ([]Loan, error)
	List(ctx context.Context, f Filter) ([]Loan, error)
	// UpdateStatus persists l only if the stored status is still from.
	// It returns gorm.ErrRecordNotFound when no row matched.
	UpdateStatus(ctx context.Context, l *Loan, from Status) error

	CountActive(ctx context.Context, applicantID uint64) (int64, error)
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context) (map[Status]int64, error)
	SumDisbursed(ctx context.Context) (decimal.Decimal, error)
	CountAppliedBetween(ctx context.Context, from, to time.Time) (int64, error)
}
