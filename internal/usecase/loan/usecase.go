package loan

import (
	"context"
	"log/slog"
	"time"

	"loanhub-backend/internal/domain/apperr"
	"loanhub-backend/internal/domain/applicant"
	"loanhub-backend/internal/domain/catalog"
	"loanhub-backend/internal/domain/emi"
	domain "loanhub-backend/internal/domain/loan"
	"loanhub-backend/internal/domain/uow"
	"loanhub-backend/internal/usecase"
	"loanhub-backend/pkg/id"
)

type Usecase struct {
	loans      domain.Repository
	applicants applicant.Repository
	catalog    catalog.Repository
	uow        uow.UnitOfWork
	observer   usecase.TransitionObserver
	now        func() time.Time
}

func NewUsecase(loans domain.Repository, applicants applicant.Repository, cat catalog.Repository, tx uow.UnitOfWork, observer usecase.TransitionObserver) *Usecase {
	return &Usecase{loans: loans, applicants: applicants, catalog: cat, uow: tx, observer: observer, now: time.Now}
}

// Apply files a Pending application. The applicant row is locked so two
// concurrent applications cannot both pass the duplicate check.
func (u *Usecase) Apply(ctx context.Context, applicantID string, in ApplyInput) (*LoanDTO, error) {
	if !in.LoanAmount.IsPositive() {
		return nil, apperr.Validation("loan_amount must be positive")
	}
	if in.TenureMonths <= 0 || in.TenureMonths > emi.MaxTenureMonths {
		return nil, apperr.Validation("tenure_months must be between 1 and %d", emi.MaxTenureMonths)
	}

	var dto LoanDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		a, err := r.Applicants.GetByApplicantIDForUpdate(ctx, applicantID)
		if err != nil {
			return usecase.NotFoundAs(err, "applicant not found")
		}
		p, err := r.Catalog.GetProduct(ctx, in.LoanProductID)
		if err != nil {
			return usecase.NotFoundAs(err, "loan product not found")
		}
		if !p.AmountInRange(in.LoanAmount) {
			return apperr.Validation("loan amount must be between %s and %s", p.MinAmount.StringFixed(2), p.MaxAmount.StringFixed(2))
		}
		if !p.TenureInRange(in.TenureMonths) {
			return apperr.Validation("tenure must be within %s", p.TenureRange())
		}

		pending, err := r.Loans.GetPendingByApplicantAndProduct(ctx, a.ID, p.ID)
		switch {
		case err == nil:
			return apperr.New(apperr.ErrDuplicatePending, "you already have a pending application for this product (%s)", pending.LoanID)
		case !usecase.IsNotFound(err):
			return err
		}

		payment, err := emi.MonthlyEMI(in.LoanAmount, p.InterestRate, in.TenureMonths)
		if err != nil {
			return err
		}
		l := &domain.Loan{
			LoanID:        id.NewID32(),
			ApplicantID:   a.ID,
			LoanProductID: p.ID,
			LoanAmount:    in.LoanAmount,
			TenureMonths:  in.TenureMonths,
			InterestRate:  p.InterestRate,
			MonthlyEMI:    payment,
			Status:        domain.StatusPending,
			AppliedAt:     u.now().UTC(),
		}
		if err := r.Loans.Create(ctx, l); err != nil {
			return err
		}
		dto = ToLoanDTO(l, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	slog.Info("loan: application filed", "loan_id", dto.LoanID, "applicant_id", applicantID, "product_id", in.LoanProductID)
	return &dto, nil
}

func (u *Usecase) ListMine(ctx context.Context, applicantID, status string) ([]LoanDTO, error) {
	st, ok := ParseStatus(status)
	if !ok {
		return nil, apperr.Validation("invalid status %q", status)
	}
	a, err := u.applicants.GetByApplicantID(ctx, applicantID)
	if err != nil {
		return nil, usecase.NotFoundAs(err, "applicant not found")
	}
	ls, err := u.loans.ListByApplicant(ctx, a.ID, st)
	if err != nil {
		return nil, err
	}
	return Render(ctx, u.catalog, ls), nil
}

func (u *Usecase) GetMine(ctx context.Context, applicantID, loanID string) (*LoanDTO, error) {
	l, err := u.owned(ctx, applicantID, loanID)
	if err != nil {
		return nil, err
	}
	dto := ToLoanDTO(l, productOf(ctx, u.catalog, l.LoanProductID))
	return &dto, nil
}

func (u *Usecase) owned(ctx context.Context, applicantID, loanID string) (*domain.Loan, error) {
	a, err := u.applicants.GetByApplicantID(ctx, applicantID)
	if err != nil {
		return nil, usecase.NotFoundAs(err, "applicant not found")
	}
	l, err := u.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, usecase.NotFoundAs(err, "loan not found")
	}
	if l.ApplicantID != a.ID {
		return nil, apperr.NotFound("loan not found")
	}
	return l, nil
}

// PreClose closes an Approved or Active loan owned by the applicant.
func (u *Usecase) PreClose(ctx context.Context, applicantID, loanID string) (*LoanDTO, error) {
	a, err := u.applicants.GetByApplicantID(ctx, applicantID)
	if err != nil {
		return nil, usecase.NotFoundAs(err, "applicant not found")
	}

	var dto LoanDTO
	err = u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domain.Loan) error {
		if l.ApplicantID != a.ID {
			return apperr.NotFound("loan not found")
		}
		from := l.Status
		if err := l.PreClose(u.now()); err != nil {
			return err
		}
		if err := r.Loans.UpdateStatus(ctx, l, from); err != nil {
			if usecase.IsNotFound(err) {
				return apperr.InvalidTransition("loan status changed concurrently")
			}
			return err
		}
		dto = ToLoanDTO(l, productOf(ctx, r.Catalog, l.LoanProductID))
		return nil
	})
	if err != nil {
		return nil, usecase.NotFoundAs(err, "loan not found")
	}
	if u.observer != nil {
		u.observer.LoanTransition(string(domain.ActionPreClose), dto.Status)
	}
	return &dto, nil
}

// Schedule lists the installments from disbursal, or from application when
// the loan has not been disbursed yet.
func (u *Usecase) Schedule(ctx context.Context, applicantID, loanID string) (*ScheduleDTO, error) {
	l, err := u.owned(ctx, applicantID, loanID)
	if err != nil {
		return nil, err
	}
	start := l.AppliedAt
	if l.DisbursalDate != nil {
		start = *l.DisbursalDate
	}
	items, err := emi.Schedule(l.LoanAmount, l.InterestRate, l.TenureMonths, start)
	if err != nil {
		return nil, err
	}
	return &ScheduleDTO{LoanID: l.LoanID, MonthlyEMI: l.MonthlyEMI, Installments: items}, nil
}

// Render converts loans to DTOs, loading each referenced product once.
func Render(ctx context.Context, cat catalog.Repository, ls []domain.Loan) []LoanDTO {
	products := map[uint64]*catalog.LoanProduct{}
	out := make([]LoanDTO, 0, len(ls))
	for i := range ls {
		pid := ls[i].LoanProductID
		p, ok := products[pid]
		if !ok {
			p = productOf(ctx, cat, pid)
			products[pid] = p
		}
		out = append(out, ToLoanDTO(&ls[i], p))
	}
	return out
}

func productOf(ctx context.Context, cat catalog.Repository, id uint64) *catalog.LoanProduct {
	if cat == nil {
		return nil
	}
	p, err := cat.GetProduct(ctx, id)
	if err != nil {
		if !usecase.IsNotFound(err) {
			slog.Warn("loan: product lookup failed", "product_id", id, "err", err)
		}
		return nil
	}
	return p
}
