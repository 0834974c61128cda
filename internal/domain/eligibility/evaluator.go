// Package eligibility decides whether an applicant qualifies for a loan
// product and how much they could borrow.
package eligibility

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"loanhub-backend/internal/domain/applicant"
	"loanhub-backend/internal/domain/catalog"
	"loanhub-backend/internal/domain/emi"
)

const (
	ReasonMinimumAge       = "minimum age not met"
	ReasonUnemployed       = "unemployed applicants are not eligible"
	ReasonStudentIncome    = "student minimum monthly income not met"
	ReasonIncomeBelowMin   = "income below minimum"
	ReasonMaxActiveLoans   = "maximum active loans reached"
	reasonDebtToIncomeFmt  = "debt-to-income ratio too high (%s%%)"
	RecommendRaiseIncome   = "increase your monthly income"
	RecommendReduceDebt    = "reduce existing debt"
	defaultFallbackTenure  = 12
	percentPrecisionPlaces = 1
)

// Policy holds the thresholds the rules compare against.
type Policy struct {
	MinAge                  int
	MinMonthlyIncome        decimal.Decimal
	StudentMinMonthlyIncome decimal.Decimal
	MaxDebtToIncomePct      decimal.Decimal
	MaxActiveLoans          int64
	// EMIBudgetShare is the fraction of free income a new installment may take.
	EMIBudgetShare decimal.Decimal
}

func DefaultPolicy() Policy {
	return Policy{
		MinAge:                  21,
		MinMonthlyIncome:        decimal.NewFromInt(20000),
		StudentMinMonthlyIncome: decimal.NewFromInt(10000),
		MaxDebtToIncomePct:      decimal.NewFromInt(40),
		MaxActiveLoans:          3,
		EMIBudgetShare:          decimal.RequireFromString("0.4"),
	}
}

type Input struct {
	DateOfBirth      *time.Time
	EmploymentStatus applicant.EmploymentStatus
	MonthlyIncome    decimal.Decimal
	OtherIncome      decimal.Decimal
	ExistingEMI      decimal.Decimal
	ActiveLoans      int64
	Product          catalog.LoanProduct
	// TenureMonths is optional; zero falls back to the product minimum.
	TenureMonths int
	AsOf         time.Time
}

type Result struct {
	Eligible              bool             `json:"eligible"`
	Reasons               []string         `json:"reasons"`
	Recommendations       []string         `json:"recommendations"`
	MaximumEligibleAmount *decimal.Decimal `json:"maximum_eligible_amount"`
}

type Evaluator struct{ policy Policy }

func NewEvaluator(p Policy) *Evaluator { return &Evaluator{policy: p} }

func (e *Evaluator) Policy() Policy { return e.policy }

// Evaluate runs every rule in order and collects all failures.
func (e *Evaluator) Evaluate(in Input) Result {
	p := e.policy
	res := Result{Eligible: true, Reasons: []string{}, Recommendations: []string{}}
	fail := func(reason string) {
		res.Eligible = false
		res.Reasons = append(res.Reasons, reason)
	}

	combined := in.MonthlyIncome.Add(in.OtherIncome)

	if in.DateOfBirth != nil && AgeOn(*in.DateOfBirth, in.AsOf) < p.MinAge {
		fail(ReasonMinimumAge)
	}

	switch in.EmploymentStatus {
	case applicant.EmploymentUnemployed:
		fail(ReasonUnemployed)
	case applicant.EmploymentStudent:
		if combined.LessThan(p.StudentMinMonthlyIncome) {
			fail(ReasonStudentIncome)
		}
	}

	if combined.LessThan(p.MinMonthlyIncome) {
		fail(ReasonIncomeBelowMin)
		res.Recommendations = append(res.Recommendations, RecommendRaiseIncome)
	}

	if combined.IsPositive() {
		ratio := in.ExistingEMI.Div(combined).Mul(decimal.NewFromInt(100))
		if ratio.GreaterThan(p.MaxDebtToIncomePct) {
			fail(fmt.Sprintf(reasonDebtToIncomeFmt, ratio.RoundBank(percentPrecisionPlaces).StringFixed(percentPrecisionPlaces)))
			res.Recommendations = append(res.Recommendations, RecommendReduceDebt)
		}
	}

	if in.ActiveLoans >= p.MaxActiveLoans {
		fail(ReasonMaxActiveLoans)
	}

	if res.Eligible && combined.IsPositive() {
		res.MaximumEligibleAmount = e.maxAmount(combined, in)
	}
	return res
}

func (e *Evaluator) maxAmount(combined decimal.Decimal, in Input) *decimal.Decimal {
	budget := combined.Sub(in.ExistingEMI).Mul(e.policy.EMIBudgetShare)
	if !budget.IsPositive() {
		return nil
	}
	tenure := in.TenureMonths
	if tenure <= 0 {
		tenure = in.Product.MinTenureMonths
	}
	if tenure <= 0 {
		tenure = defaultFallbackTenure
	}
	amount := emi.MaxPrincipal(budget, in.Product.InterestRate, tenure)
	if in.Product.MaxAmount.IsPositive() && amount.GreaterThan(in.Product.MaxAmount) {
		amount = in.Product.MaxAmount
	}
	amount = amount.RoundBank(2)
	return &amount
}

// AgeOn is the number of whole calendar years between dob and asOf.
func AgeOn(dob, asOf time.Time) int {
	y1, m1, d1 := dob.Date()
	y2, m2, d2 := asOf.Date()
	age := y2 - y1
	if m2 < m1 || (m2 == m1 && d2 < d1) {
		age--
	}
	return age
}
