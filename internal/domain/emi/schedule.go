package emi

import (
	"time"

	"github.com/shopspring/decimal"
)

// Installment is one period of an amortization schedule.
type Installment struct {
	Period           int             `json:"period"`
	DueDate          time.Time       `json:"due_date"`
	Payment          decimal.Decimal `json:"payment"`
	Principal        decimal.Decimal `json:"principal"`
	Interest         decimal.Decimal `json:"interest"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
}

// Schedule expands a loan into its fixed-payment amortization table. The first
// installment falls due one month after start. The final period absorbs
// rounding so the balance lands on exactly zero.
func Schedule(p, annualRate decimal.Decimal, tenureMonths int, start time.Time) ([]Installment, error) {
	payment, err := MonthlyEMI(p, annualRate, tenureMonths)
	if err != nil {
		return nil, err
	}
	monthlyRate := annualRate.Div(monthsPerYearPct)

	out := make([]Installment, 0, tenureMonths)
	remaining := p
	for period := 1; period <= tenureMonths; period++ {
		interest := remaining.Mul(monthlyRate).RoundBank(2)
		principalPart := payment.Sub(interest)
		pay := payment

		if period == tenureMonths || principalPart.GreaterThan(remaining) {
			principalPart = remaining
			pay = principalPart.Add(interest)
		}
		remaining = remaining.Sub(principalPart)

		out = append(out, Installment{
			Period:           period,
			DueDate:          start.AddDate(0, period, 0),
			Payment:          pay,
			Principal:        principalPart,
			Interest:         interest,
			RemainingBalance: remaining,
		})
		if remaining.IsZero() {
			break
		}
	}
	return out, nil
}
