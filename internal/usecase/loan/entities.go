package loan

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"loanhub-backend/internal/domain/catalog"
	"loanhub-backend/internal/domain/emi"
	domain "loanhub-backend/internal/domain/loan"
)

type ApplyInput struct {
	LoanProductID uint64          `json:"loan_product_id" validate:"required"`
	LoanAmount    decimal.Decimal `json:"loan_amount" validate:"gt=0,dec2"`
	TenureMonths  int             `json:"tenure_months" validate:"gt=0,lte=600"`
}

type LoanDTO struct {
	LoanID          string          `json:"loan_id"`
	LoanProductID   uint64          `json:"loan_product_id"`
	ProductName     string          `json:"product_name"`
	BankName        string          `json:"bank_name"`
	LoanAmount      decimal.Decimal `json:"loan_amount"`
	TenureMonths    int             `json:"tenure_months"`
	InterestRate    decimal.Decimal `json:"interest_rate"`
	MonthlyEMI      decimal.Decimal `json:"monthly_emi"`
	Status          string          `json:"status"`
	ApplicationDate time.Time       `json:"application_date"`
	ApprovalDate    *time.Time      `json:"approval_date"`
	DisbursalDate   *time.Time      `json:"disbursal_date"`
	PreClosureDate  *time.Time      `json:"pre_closure_date"`
}

// ToLoanDTO renders l; p may be nil when the product is unknown.
func ToLoanDTO(l *domain.Loan, p *catalog.LoanProduct) LoanDTO {
	dto := LoanDTO{
		LoanID:          l.LoanID,
		LoanProductID:   l.LoanProductID,
		LoanAmount:      l.LoanAmount,
		TenureMonths:    l.TenureMonths,
		InterestRate:    l.InterestRate,
		MonthlyEMI:      l.MonthlyEMI,
		Status:          string(l.Status),
		ApplicationDate: l.AppliedAt,
		ApprovalDate:    l.ApprovalDate,
		DisbursalDate:   l.DisbursalDate,
		PreClosureDate:  l.PreClosureDate,
	}
	if p != nil {
		dto.ProductName = p.ProductName
		dto.BankName = p.BankName()
	}
	return dto
}

type ScheduleDTO struct {
	LoanID       string            `json:"loan_id"`
	MonthlyEMI   decimal.Decimal   `json:"monthly_emi"`
	Installments []emi.Installment `json:"installments"`
}

// ParseStatus matches s against the loan statuses ignoring case.
// An empty s yields the empty status.
func ParseStatus(s string) (domain.Status, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", true
	}
	for _, st := range domain.Statuses() {
		if strings.EqualFold(string(st), s) {
			return st, true
		}
	}
	return "", false
}
