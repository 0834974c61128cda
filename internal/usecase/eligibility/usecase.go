package eligibility

import (
	"context"
	"time"

	"loanhub-backend/internal/domain/apperr"
	"loanhub-backend/internal/domain/applicant"
	domcatalog "loanhub-backend/internal/domain/catalog"
	domain "loanhub-backend/internal/domain/eligibility"
	"loanhub-backend/internal/domain/emi"
	"loanhub-backend/internal/domain/loan"
	"loanhub-backend/internal/usecase"
	"loanhub-backend/internal/usecase/catalog"
)

type Usecase struct {
	applicants applicant.Repository
	catalog    domcatalog.Repository
	loans      loan.Repository
	evaluator  *domain.Evaluator
	now        func() time.Time
}

func NewUsecase(applicants applicant.Repository, cat domcatalog.Repository, loans loan.Repository, evaluator *domain.Evaluator) *Usecase {
	return &Usecase{applicants: applicants, catalog: cat, loans: loans, evaluator: evaluator, now: time.Now}
}

// Check evaluates the applicant against one product using their stored
// financial and employment profiles.
func (u *Usecase) Check(ctx context.Context, applicantID string, in CheckInput) (*CheckResult, error) {
	if in.TenureMonths < 0 {
		return nil, apperr.Validation("tenure_months must not be negative")
	}
	a, err := u.applicants.GetByApplicantID(ctx, applicantID)
	if err != nil {
		return nil, usecase.NotFoundAs(err, "applicant not found")
	}
	fin, err := u.applicants.GetFinancialProfile(ctx, a.ID)
	if err != nil {
		return nil, missingProfile(err, "financial details are required for an eligibility check")
	}
	emp, err := u.applicants.GetEmploymentProfile(ctx, a.ID)
	if err != nil {
		return nil, missingProfile(err, "employment details are required for an eligibility check")
	}
	p, err := u.catalog.GetProduct(ctx, in.LoanProductID)
	if err != nil {
		return nil, usecase.NotFoundAs(err, "loan product not found")
	}
	active, err := u.loans.CountActive(ctx, a.ID)
	if err != nil {
		return nil, err
	}

	res := u.evaluator.Evaluate(domain.Input{
		DateOfBirth:      a.DateOfBirth,
		EmploymentStatus: emp.EmploymentStatus,
		MonthlyIncome:    emp.MonthlyIncome,
		OtherIncome:      emp.OtherIncome,
		ExistingEMI:      fin.MonthlyEMI,
		ActiveLoans:      active,
		Product:          *p,
		TenureMonths:     in.TenureMonths,
		AsOf:             u.now(),
	})
	return &CheckResult{Result: res, LoanProduct: catalog.ToProductDTO(p)}, nil
}

func (u *Usecase) CalculateEMI(in EMIInput) (*emi.Result, error) {
	res, err := emi.Calculate(in.LoanAmount, in.InterestRate, in.TenureMonths)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func missingProfile(err error, msg string) error {
	if usecase.IsNotFound(err) {
		return apperr.New(apperr.ErrMissingProfile, "%s", msg)
	}
	return err
}
