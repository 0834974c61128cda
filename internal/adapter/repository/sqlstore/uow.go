package sqlstore

import (
	"context"

	"gorm.io/gorm"

	"loanhub-backend/internal/domain/loan"
	"loanhub-backend/internal/domain/uow"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

// Repos binds every repository to db, which may be a transaction.
func Repos(db *gorm.DB) uow.Repos {
	return uow.Repos{
		Applicants: &ApplicantRepository{db: db},
		Catalog:    &CatalogRepository{db: db},
		Documents:  &DocumentRepository{db: db},
		Loans:      &LoanRepository{db: db},
		Decisions:  &DecisionRepository{db: db},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(Repos(tx))
	})
}

func (u *GormUoW) WithinLoanTx(ctx context.Context, loanID string, fn func(r uow.Repos, l *loan.Loan) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := Repos(tx)
		// lock the loan row up-front to prevent races
		l, err := r.Loans.GetByLoanIDForUpdate(ctx, loanID)
		if err != nil {
			return err
		}
		return fn(r, l)
	})
}
