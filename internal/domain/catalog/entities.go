package catalog

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type Bank struct {
	ID           uint64    `gorm:"primaryKey;column:bank_id" json:"bank_id"`
	BankName     string    `gorm:"size:120;not null;uniqueIndex:ux_banks_name" json:"bank_name"`
	ContactEmail string    `gorm:"size:120" json:"contact_email"`
	ContactPhone string    `gorm:"size:20" json:"contact_phone"`
	Address      string    `gorm:"type:text" json:"address"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Bank) TableName() string { return "banks" }

type LoanProduct struct {
	ID                  uint64          `gorm:"primaryKey;column:loan_product_id" json:"loan_product_id"`
	BankID              uint64          `gorm:"not null;index" json:"bank_id"`
	Bank                *Bank           `gorm:"foreignKey:BankID;references:ID" json:"-"`
	ProductName         string          `gorm:"size:120;not null" json:"product_name"`
	Description         string          `gorm:"type:text" json:"description"`
	MinAmount           decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"min_amount"`
	MaxAmount           decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"max_amount"`
	InterestRate        decimal.Decimal `gorm:"type:decimal(6,3);not null" json:"interest_rate"`
	MinTenureMonths     int             `gorm:"not null;default:0" json:"min_tenure_months"`
	MaxTenureMonths     int             `gorm:"not null;default:0" json:"max_tenure_months"`
	EligibilityCriteria string          `gorm:"type:text" json:"eligibility_criteria"`
	CreatedAt           time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (LoanProduct) TableName() string { return "loan_products" }

// TenureRange renders the tenure bounds, e.g. "12-60 months".
func (p *LoanProduct) TenureRange() string {
	switch {
	case p.MinTenureMonths > 0 && p.MaxTenureMonths > 0:
		return fmt.Sprintf("%d-%d months", p.MinTenureMonths, p.MaxTenureMonths)
	case p.MinTenureMonths > 0:
		return fmt.Sprintf("from %d months", p.MinTenureMonths)
	case p.MaxTenureMonths > 0:
		return fmt.Sprintf("up to %d months", p.MaxTenureMonths)
	}
	return ""
}

// AmountInRange reports whether amount lies in [MinAmount, MaxAmount].
func (p *LoanProduct) AmountInRange(amount decimal.Decimal) bool {
	return amount.GreaterThanOrEqual(p.MinAmount) && amount.LessThanOrEqual(p.MaxAmount)
}

// TenureInRange treats a zero bound as unbounded.
func (p *LoanProduct) TenureInRange(months int) bool {
	if months <= 0 {
		return false
	}
	if p.MinTenureMonths > 0 && months < p.MinTenureMonths {
		return false
	}
	if p.MaxTenureMonths > 0 && months > p.MaxTenureMonths {
		return false
	}
	return true
}

// BankName is empty when the bank was not preloaded.
func (p *LoanProduct) BankName() string {
	if p.Bank == nil {
		return ""
	}
	return p.Bank.BankName
}
