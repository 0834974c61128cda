package sqlstore

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"loanhub-backend/internal/domain/loan"
)

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

func (r *LoanRepository) Create(ctx context.Context, l *loan.Loan) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *LoanRepository) GetByLoanID(ctx context.Context, loanID string) (*loan.Loan, error) {
	var out loan.Loan
	res := r.db.WithContext(ctx).Where("loan_id = ?", loanID).First(&out)
	return &out, res.Error
}

func (r *LoanRepository) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*loan.Loan, error) {
	var out loan.Loan
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("loan_id = ?", loanID).
		First(&out)
	return &out, res.Error
}

func (r *LoanRepository) GetPendingByApplicantAndProduct(ctx context.Context, applicantID, productID uint64) (*loan.Loan, error) {
	var out loan.Loan
	res := r.db.WithContext(ctx).
		Where("applicant_id = ? AND loan_product_id = ? AND status = ?", applicantID, productID, loan.StatusPending).
		Order("applied_at DESC, id DESC").
		First(&out)
	return &out, res.Error
}

// ListByApplicant returns newest first; an empty status means any.
func (r *LoanRepository) ListByApplicant(ctx context.Context, applicantID uint64, status loan.Status) ([]loan.Loan, error) {
	q := r.db.WithContext(ctx).Where("applicant_id = ?", applicantID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var out []loan.Loan
	err := q.Order("applied_at DESC, id DESC").Find(&out).Error
	return out, err
}

func (r *LoanRepository) List(ctx context.Context, f loan.Filter) ([]loan.Loan, error) {
	q := r.db.WithContext(ctx).Model(&loan.Loan{}).Select("loans.*")
	if f.Status != "" {
		q = q.Where("loans.status = ?", f.Status)
	}
	if f.BankID != 0 {
		q = q.Joins("JOIN loan_products ON loan_products.loan_product_id = loans.loan_product_id").
			Where("loan_products.bank_id = ?", f.BankID)
	}
	var out []loan.Loan
	err := q.Order("loans.applied_at DESC, loans.id DESC").Find(&out).Error
	return out, err
}

// UpdateStatus is a compare-and-set on status; the lifecycle timestamps go with it.
func (r *LoanRepository) UpdateStatus(ctx context.Context, l *loan.Loan, from loan.Status) error {
	res := r.db.WithContext(ctx).Model(&loan.Loan{}).
		Where("id = ? AND status = ?", l.ID, from).
		Updates(map[string]any{
			"status":           l.Status,
			"approval_date":    l.ApprovalDate,
			"disbursal_date":   l.DisbursalDate,
			"pre_closure_date": l.PreClosureDate,
			"updated_at":       time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *LoanRepository) CountActive(ctx context.Context, applicantID uint64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&loan.Loan{}).
		Where("applicant_id = ? AND status = ?", applicantID, loan.StatusActive).
		Count(&n).Error
	return n, err
}

func (r *LoanRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&loan.Loan{}).Count(&n).Error
	return n, err
}

func (r *LoanRepository) CountByStatus(ctx context.Context) (map[loan.Status]int64, error) {
	var rows []struct {
		Status loan.Status
		N      int64
	}
	err := r.db.WithContext(ctx).Model(&loan.Loan{}).
		Select("status, COUNT(*) AS n").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[loan.Status]int64, len(loan.Statuses()))
	for _, s := range loan.Statuses() {
		out[s] = 0
	}
	for _, row := range rows {
		out[row.Status] = row.N
	}
	return out, nil
}

func (r *LoanRepository) SumDisbursed(ctx context.Context) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	err := r.db.WithContext(ctx).Model(&loan.Loan{}).
		Select("SUM(loan_amount)").
		Where("disbursal_date IS NOT NULL").
		Row().Scan(&sum)
	if err != nil {
		return decimal.Zero, err
	}
	if !sum.Valid {
		return decimal.Zero, nil
	}
	return sum.Decimal, nil
}

// CountAppliedBetween counts loans with from <= applied_at < to.
func (r *LoanRepository) CountAppliedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&loan.Loan{}).
		Where("applied_at >= ? AND applied_at < ?", from.UTC(), to.UTC()).
		Count(&n).Error
	return n, err
}
