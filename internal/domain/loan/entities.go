package loan

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
	StatusActive   Status = "Active"
	StatusClosed   Status = "Closed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusActive, StatusClosed:
		return true
	}
	return false
}

// Statuses lists every status in lifecycle order.
func Statuses() []Status {
	return []Status{StatusPending, StatusApproved, StatusRejected, StatusActive, StatusClosed}
}

type Loan struct {
	ID             uint64          `gorm:"primaryKey;column:id" json:"-"`
	LoanID         string          `gorm:"size:32;uniqueIndex:ux_loans_loan_id" json:"loan_id"`
	ApplicantID    uint64          `gorm:"not null;index:idx_loans_applicant_product_status" json:"-"`
	LoanProductID  uint64          `gorm:"not null;index:idx_loans_applicant_product_status" json:"loan_product_id"`
	LoanAmount     decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"loan_amount"`
	TenureMonths   int             `gorm:"not null" json:"tenure_months"`
	InterestRate   decimal.Decimal `gorm:"type:decimal(6,3);not null" json:"interest_rate"`
	MonthlyEMI     decimal.Decimal `gorm:"column:monthly_emi;type:decimal(15,2);not null" json:"monthly_emi"`
	Status         Status          `gorm:"size:16;not null;default:'Pending';index:idx_loans_applicant_product_status" json:"status"`
	AppliedAt      time.Time       `gorm:"not null" json:"applied_at"`
	ApprovalDate   *time.Time      `json:"approval_date"`
	DisbursalDate  *time.Time      `json:"disbursal_date"`
	PreClosureDate *time.Time      `json:"pre_closure_date"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Loan) TableName() string { return "loans" }
