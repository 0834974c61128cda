package eligibility

import (
	"github.com/shopspring/decimal"

	domain "loanhub-backend/internal/domain/eligibility"
	"loanhub-backend/internal/usecase/catalog"
)

type CheckInput struct {
	LoanProductID uint64 `json:"loan_product_id" validate:"required"`
	TenureMonths  int    `json:"tenure_months" validate:"gte=0,lte=600"`
}

type CheckResult struct {
	domain.Result
	LoanProduct catalog.ProductDTO `json:"loan_product"`
}

type EMIInput struct {
	LoanAmount   decimal.Decimal `json:"loan_amount" validate:"gt=0,dec2"`
	InterestRate decimal.Decimal `json:"interest_rate" validate:"gte=0,lte=100"`
	TenureMonths int             `json:"tenure_months" validate:"gt=0,lte=600"`
}
