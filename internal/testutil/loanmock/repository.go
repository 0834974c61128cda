package loanmock

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	domain "loanhub-backend/internal/domain/loan"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Unset getters report gorm.ErrRecordNotFound; unset writers succeed.
type Repo struct {
	CreateFn                          func(ctx context.Context, l *domain.Loan) error
	GetByLoanIDFn                     func(ctx context.Context, loanID string) (*domain.Loan, error)
	GetByLoanIDForUpdateFn            func(ctx context.Context, loanID string) (*domain.Loan, error)
	GetPendingByApplicantAndProductFn func(ctx context.Context, applicantID, productID uint64) (*domain.Loan, error)
	ListByApplicantFn                 func(ctx context.Context, applicantID uint64, status domain.Status) ([]domain.Loan, error)
	ListFn                            func(ctx context.Context, f domain.Filter) ([]domain.Loan, error)
	UpdateStatusFn                    func(ctx context.Context, l *domain.Loan, from domain.Status) error
	CountActiveFn                     func(ctx context.Context, applicantID uint64) (int64, error)
	CountFn                           func(ctx context.Context) (int64, error)
	CountByStatusFn                   func(ctx context.Context) (map[domain.Status]int64, error)
	SumDisbursedFn                    func(ctx context.Context) (decimal.Decimal, error)
	CountAppliedBetweenFn             func(ctx context.Context, from, to time.Time) (int64, error)
}

func (m *Repo) Create(ctx context.Context, l *domain.Loan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) GetByLoanID(ctx context.Context, loanID string) (*domain.Loan, error) {
	if m.GetByLoanIDFn != nil {
		return m.GetByLoanIDFn(ctx, loanID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*domain.Loan, error) {
	if m.GetByLoanIDForUpdateFn != nil {
		return m.GetByLoanIDForUpdateFn(ctx, loanID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetPendingByApplicantAndProduct(ctx context.Context, applicantID, productID uint64) (*domain.Loan, error) {
	if m.GetPendingByApplicantAndProductFn != nil {
		return m.GetPendingByApplicantAndProductFn(ctx, applicantID, productID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) ListByApplicant(ctx context.Context, applicantID uint64, status domain.Status) ([]domain.Loan, error) {
	if m.ListByApplicantFn != nil {
		return m.ListByApplicantFn(ctx, applicantID, status)
	}
	return nil, nil
}

func (m *Repo) List(ctx context.Context, f domain.Filter) ([]domain.Loan, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f)
	}
	return nil, nil
}

func (m *Repo) UpdateStatus(ctx context.Context, l *domain.Loan, from domain.Status) error {
	if m.UpdateStatusFn != nil {
		return m.UpdateStatusFn(ctx, l, from)
	}
	return nil
}

func (m *Repo) CountActive(ctx context.Context, applicantID uint64) (int64, error) {
	if m.CountActiveFn != nil {
		return m.CountActiveFn(ctx, applicantID)
	}
	return 0, nil
}

func (m *Repo) Count(ctx context.Context) (int64, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx)
	}
	return 0, nil
}

func (m *Repo) CountByStatus(ctx context.Context) (map[domain.Status]int64, error) {
	if m.CountByStatusFn != nil {
		return m.CountByStatusFn(ctx)
	}
	return map[domain.Status]int64{}, nil
}

func (m *Repo) SumDisbursed(ctx context.Context) (decimal.Decimal, error) {
	if m.SumDisbursedFn != nil {
		return m.SumDisbursedFn(ctx)
	}
	return decimal.Zero, nil
}

func (m *Repo) CountAppliedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	if m.CountAppliedBetweenFn != nil {
		return m.CountAppliedBetweenFn(ctx, from, to)
	}
	return 0, nil
}
