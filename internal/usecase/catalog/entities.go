package catalog

import (
	"github.com/shopspring/decimal"

	domain "loanhub-backend/internal/domain/catalog"
)

type ProductDTO struct {
	LoanProductID       uint64          `json:"loan_product_id"`
	BankID              uint64          `json:"bank_id"`
	BankName            string          `json:"bank_name"`
	ProductName         string          `json:"product_name"`
	Description         string          `json:"description"`
	MinAmount           decimal.Decimal `json:"min_amount" validate:"gt=0,dec2"`
	MaxAmount           decimal.Decimal `json:"max_amount" validate:"gt=0,dec2"`
	InterestRate        decimal.Decimal `json:"interest_rate" validate:"gte=0,lte=100"`
	MinTenureMonths     int             `json:"min_tenure_months"`
	MaxTenureMonths     int             `json:"max_tenure_months"`
	TenureRange         string          `json:"tenure_range"`
	EligibilityCriteria string          `json:"eligibility_criteria"`
}

func ToProductDTO(p *domain.LoanProduct) ProductDTO {
	return ProductDTO{
		LoanProductID:       p.ID,
		BankID:              p.BankID,
		BankName:            p.BankName(),
		ProductName:         p.ProductName,
		Description:         p.Description,
		MinAmount:           p.MinAmount,
		MaxAmount:           p.MaxAmount,
		InterestRate:        p.InterestRate,
		MinTenureMonths:     p.MinTenureMonths,
		MaxTenureMonths:     p.MaxTenureMonths,
		TenureRange:         p.TenureRange(),
		EligibilityCriteria: p.EligibilityCriteria,
	}
}

type ProductQuery struct {
	BankID    uint64
	MinAmount decimal.Decimal
	MaxAmount decimal.Decimal
}

type BankInput struct {
	BankName     string `json:"bank_name" validate:"required,max=120"`
	ContactEmail string `json:"contact_email" validate:"omitempty,email,max=120"`
	ContactPhone string `json:"contact_phone" validate:"omitempty,max=20"`
	Address      string `json:"address"`
}

type ProductInput struct {
	BankID              uint64          `json:"bank_id" validate:"required"`
	ProductName         string          `json:"product_name" validate:"required,max=120"`
	Description         string          `json:"description"`
	MinAmount           decimal.Decimal `json:"min_amount" validate:"gt=0,dec2"`
	MaxAmount           decimal.Decimal `json:"max_amount" validate:"gt=0,dec2"`
	InterestRate        decimal.Decimal `json:"interest_rate" validate:"gte=0,lte=100"`
	MinTenureMonths     int             `json:"min_tenure_months" validate:"gte=0,lte=600"`
	MaxTenureMonths     int             `json:"max_tenure_months" validate:"gte=0,lte=600"`
	EligibilityCriteria string          `json:"eligibility_criteria"`
}
