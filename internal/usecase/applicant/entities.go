package applicant

import (
	"io"
	"time"

	"github.com/shopspring/decimal"

	domain "loanhub-backend/internal/domain/applicant"
	"loanhub-backend/internal/domain/document"
)

const dateLayout = "2006-01-02"

type ApplicantDTO struct {
	ApplicantID      string    `json:"applicant_id"`
	FullName         string    `json:"full_name"`
	Email            string    `json:"email"`
	DateOfBirth      string    `json:"date_of_birth,omitempty"`
	Gender           string    `json:"gender"`
	Nationality      string    `json:"nationality"`
	MaritalStatus    string    `json:"marital_status"`
	ContactNumber    string    `json:"contact_number"`
	PermanentAddress string    `json:"permanent_address"`
	IsEmailVerified  bool      `json:"is_email_verified"`
	IsPhoneVerified  bool      `json:"is_phone_verified"`
	Role             string    `json:"role"`
	CreatedAt        time.Time `json:"created_at"`
}

func ToApplicantDTO(a *domain.Applicant) ApplicantDTO {
	dto := ApplicantDTO{
		ApplicantID:      a.ApplicantID,
		FullName:         a.FullName,
		Email:            a.Email,
		Gender:           a.Gender,
		Nationality:      a.Nationality,
		MaritalStatus:    a.MaritalStatus,
		ContactNumber:    a.ContactNumber,
		PermanentAddress: a.PermanentAddress,
		IsEmailVerified:  a.IsEmailVerified,
		IsPhoneVerified:  a.IsPhoneVerified,
		Role:             string(a.Role),
		CreatedAt:        a.CreatedAt,
	}
	if a.DateOfBirth != nil {
		dto.DateOfBirth = a.DateOfBirth.Format(dateLayout)
	}
	return dto
}

// ParseDate reads a YYYY-MM-DD date as UTC midnight.
func ParseDate(s string) (time.Time, bool) {
	t, err := time.ParseInLocation(dateLayout, s, time.UTC)
	return t, err == nil
}

// UpdateProfileInput changes only the fields that are set.
type UpdateProfileInput struct {
	FullName         *string `json:"full_name" validate:"omitempty,min=1,max=100"`
	DateOfBirth      *string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Gender           *string `json:"gender" validate:"omitempty,max=20"`
	Nationality      *string `json:"nationality" validate:"omitempty,max=50"`
	MaritalStatus    *string `json:"marital_status" validate:"omitempty,max=20"`
	ContactNumber    *string `json:"contact_number" validate:"omitempty,max=20"`
	PermanentAddress *string `json:"permanent_address"`
}

type FinancialInput struct {
	ExistingLoans      *decimal.Decimal `json:"existing_loans"`
	MonthlyEMI         *decimal.Decimal `json:"monthly_emi"`
	AssetsOwned        *string          `json:"assets_owned"`
	BankAccountDetails *string          `json:"bank_account_details"`
}

type EmploymentInput struct {
	EmploymentStatus    *string          `json:"employment_status" validate:"omitempty,oneof=Employed Self-employed Unemployed Student"`
	EmployerNameAddress *string          `json:"employer_name_address"`
	JobTitle            *string          `json:"job_title" validate:"omitempty,max=100"`
	MonthlyIncome       *decimal.Decimal `json:"monthly_income"`
	OtherIncome         *decimal.Decimal `json:"other_income"`
}

type UploadInput struct {
	DocumentType string
	FileName     string
	Content      io.Reader
}

type DocumentsDTO struct {
	KYC       document.Bundle     `json:"kyc_documents"`
	Documents []document.Document `json:"documents"`
}
