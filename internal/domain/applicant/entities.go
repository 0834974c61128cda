package applicant

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Role string

const (
	RoleApplicant Role = "applicant"
	RoleAdmin     Role = "admin"
)

type EmploymentStatus string

const (
	EmploymentEmployed     EmploymentStatus = "Employed"
	EmploymentSelfEmployed EmploymentStatus = "Self-employed"
	EmploymentUnemployed   EmploymentStatus = "Unemployed"
	EmploymentStudent      EmploymentStatus = "Student"
)

func (s EmploymentStatus) Valid() bool {
	switch s {
	case EmploymentEmployed, EmploymentSelfEmployed, EmploymentUnemployed, EmploymentStudent:
		return true
	}
	return false
}

type Applicant struct {
	ID               uint64         `gorm:"primaryKey;column:id" json:"-"`
	ApplicantID      string         `gorm:"size:32;uniqueIndex:ux_applicants_applicant_id" json:"applicant_id"`
	FullName         string         `gorm:"size:100;not null" json:"full_name"`
	Email            string         `gorm:"size:100;not null;uniqueIndex:ux_applicants_email" json:"email"`
	PasswordHash     string         `gorm:"size:255;not null" json:"-"`
	DateOfBirth      *time.Time     `gorm:"type:date" json:"date_of_birth"`
	Gender           string         `gorm:"size:20" json:"gender"`
	Nationality      string         `gorm:"size:50" json:"nationality"`
	MaritalStatus    string         `gorm:"size:20" json:"marital_status"`
	ContactNumber    string         `gorm:"size:20" json:"contact_number"`
	PermanentAddress string         `gorm:"type:text" json:"permanent_address"`
	IsEmailVerified  bool           `gorm:"not null;default:false" json:"is_email_verified"`
	IsPhoneVerified  bool           `gorm:"not null;default:false" json:"is_phone_verified"`
	Role             Role           `gorm:"size:16;not null;default:'applicant'" json:"role"`
	CreatedAt        time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Applicant) TableName() string { return "applicants" }

func (a *Applicant) IsAdmin() bool { return a.Role == RoleAdmin }

type FinancialProfile struct {
	ID                 uint64          `gorm:"primaryKey;column:id" json:"-"`
	ApplicantID        uint64          `gorm:"not null;uniqueIndex:ux_financial_profiles_applicant" json:"-"`
	ExistingLoans      decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"existing_loans"`
	MonthlyEMI         decimal.Decimal `gorm:"column:monthly_emi;type:decimal(15,2);not null;default:0" json:"monthly_emi"`
	AssetsOwned        string          `gorm:"type:text" json:"assets_owned"`
	BankAccountDetails string          `gorm:"type:text" json:"bank_account_details"`
	CreatedAt          time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (FinancialProfile) TableName() string { return "financial_profiles" }

type EmploymentProfile struct {
	ID                  uint64           `gorm:"primaryKey;column:id" json:"-"`
	ApplicantID         uint64           `gorm:"not null;uniqueIndex:ux_employment_profiles_applicant" json:"-"`
	EmploymentStatus    EmploymentStatus `gorm:"size:20;not null" json:"employment_status"`
	EmployerNameAddress string           `gorm:"type:text" json:"employer_name_address"`
	JobTitle            string           `gorm:"size:100" json:"job_title"`
	MonthlyIncome       decimal.Decimal  `gorm:"type:decimal(15,2);not null;default:0" json:"monthly_income"`
	OtherIncome         decimal.Decimal  `gorm:"type:decimal(15,2);not null;default:0" json:"other_income"`
	IncomeProofPath     string           `gorm:"size:255" json:"income_proof_path"`
	CreatedAt           time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

func (EmploymentProfile) TableName() string { return "employment_profiles" }

// CombinedIncome is monthly plus other income.
func (e *EmploymentProfile) CombinedIncome() decimal.Decimal {
	return e.MonthlyIncome.Add(e.OtherIncome)
}
