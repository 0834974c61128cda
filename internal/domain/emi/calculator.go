// Package emi computes equated monthly installments for amortized loans.
//
// Rates are annual percentages (10 means 10% a year). Monetary outputs are
// rounded to two places with banker's rounding (half to even).
package emi

import (
	"math"

	"github.com/shopspring/decimal"

	"loanhub-backend/internal/domain/apperr"
)

var monthsPerYearPct = decimal.NewFromInt(1200)

// MaxTenureMonths caps tenures accepted from callers (50 years).
const MaxTenureMonths = 600

// Result is the outcome of an EMI calculation.
type Result struct {
	Principal     decimal.Decimal `json:"loan_amount"`
	AnnualRate    decimal.Decimal `json:"interest_rate"`
	TenureMonths  int             `json:"tenure_months"`
	MonthlyEMI    decimal.Decimal `json:"monthly_emi"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	TotalInterest decimal.Decimal `json:"total_interest"`
}

// Calculate returns the monthly installment for principal p at annualRate
// percent over tenureMonths.
//
//	r = annualRate / 1200
//	E = P / N                          when r == 0
//	E = P * r * (1+r)^N / ((1+r)^N - 1) otherwise
//
// Totals are derived from the unrounded installment.
func Calculate(p, annualRate decimal.Decimal, tenureMonths int) (Result, error) {
	if err := validate(p, annualRate, tenureMonths); err != nil {
		return Result{}, err
	}

	raw := rawEMI(p, annualRate, tenureMonths)
	total := raw.Mul(decimal.NewFromInt(int64(tenureMonths)))

	return Result{
		Principal:     p,
		AnnualRate:    annualRate,
		TenureMonths:  tenureMonths,
		MonthlyEMI:    raw.RoundBank(2),
		TotalAmount:   total.RoundBank(2),
		TotalInterest: total.Sub(p).RoundBank(2),
	}, nil
}

// MonthlyEMI is Calculate without the totals.
func MonthlyEMI(p, annualRate decimal.Decimal, tenureMonths int) (decimal.Decimal, error) {
	res, err := Calculate(p, annualRate, tenureMonths)
	if err != nil {
		return decimal.Zero, err
	}
	return res.MonthlyEMI, nil
}

// MaxPrincipal inverts the EMI formula: the largest principal whose
// installment at annualRate over tenureMonths equals payment. The result is
// unrounded; callers round after clamping.
func MaxPrincipal(payment, annualRate decimal.Decimal, tenureMonths int) decimal.Decimal {
	if tenureMonths <= 0 || !payment.IsPositive() || annualRate.IsNegative() {
		return decimal.Zero
	}
	n := decimal.NewFromInt(int64(tenureMonths))
	if annualRate.IsZero() {
		return payment.Mul(n)
	}

	r := annualRate.Div(monthsPerYearPct).InexactFloat64()
	factor := math.Pow(1+r, float64(tenureMonths))
	if overflowed(factor) {
		// limit as N grows: payment / r
		return payment.Mul(monthsPerYearPct).Div(annualRate)
	}
	if factor <= 1 {
		return payment.Mul(n)
	}
	p := payment.InexactFloat64() * (factor - 1) / (r * factor)
	return decimal.NewFromFloat(p)
}

func validate(p, annualRate decimal.Decimal, tenureMonths int) error {
	switch {
	case !p.IsPositive():
		return apperr.Validation("loan amount must be positive")
	case tenureMonths <= 0:
		return apperr.Validation("tenure must be a positive number of months")
	case annualRate.IsNegative():
		return apperr.Validation("interest rate must not be negative")
	}
	return nil
}

// rawEMI uses float64 for the power term only; the rest stays in decimal.
func rawEMI(p, annualRate decimal.Decimal, tenureMonths int) decimal.Decimal {
	n := decimal.NewFromInt(int64(tenureMonths))
	if annualRate.IsZero() {
		return p.Div(n)
	}

	r := annualRate.Div(monthsPerYearPct).InexactFloat64()
	factor := math.Pow(1+r, float64(tenureMonths))
	if overflowed(factor) {
		// r*f/(f-1) tends to r
		return p.Mul(annualRate).Div(monthsPerYearPct)
	}
	if factor <= 1 {
		return p.Div(n)
	}
	coef := decimal.NewFromFloat(r * factor / (factor - 1))
	return p.Mul(coef)
}

func overflowed(f float64) bool { return math.IsInf(f, 0) || math.IsNaN(f) }
