package applicant

import "context"

type Repository interface {
	Create(ctx context.Context, a *Applicant) error
	Save(ctx context.Context, a *Applicant) error
	GetByApplicantID(ctx context.Context, applicantID string) (*Applicant, error)
	// GetByApplicantIDForUpdate locks the applicant row for the rest of the transaction.
	GetByApplicantIDForUpdate(ctx context.Context, applicantID string) (*Applicant, error)
	GetByEmail(ctx context.Context, email string) (*Applicant, error)
	Count(ctx context.Context) (int64, error)

	GetFinancialProfile(ctx context.Context, applicantID uint64) (*FinancialProfile, error)
	SaveFinancialProfile(ctx context.Context, p *FinancialProfile) error
	GetEmploymentProfile(ctx context.Context, applicantID uint64) (*EmploymentProfile, error)
	SaveEmploymentProfile(ctx context.Context, p *EmploymentProfile) error
}
