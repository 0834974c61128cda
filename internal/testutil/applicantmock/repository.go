package applicantmock

import (
	"context"

	"gorm.io/gorm"

	domain "loanhub-backend/internal/domain/applicant"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Unset getters report gorm.ErrRecordNotFound; unset writers succeed.
type Repo struct {
	CreateFn                    func(ctx context.Context, a *domain.Applicant) error
	SaveFn                      func(ctx context.Context, a *domain.Applicant) error
	GetByApplicantIDFn          func(ctx context.Context, applicantID string) (*domain.Applicant, error)
	GetByApplicantIDForUpdateFn func(ctx context.Context, applicantID string) (*domain.Applicant, error)
	GetByEmailFn                func(ctx context.Context, email string) (*domain.Applicant, error)
	CountFn                     func(ctx context.Context) (int64, error)
	GetFinancialProfileFn       func(ctx context.Context, applicantID uint64) (*domain.FinancialProfile, error)
	SaveFinancialProfileFn      func(ctx context.Context, p *domain.FinancialProfile) error
	GetEmploymentProfileFn      func(ctx context.Context, applicantID uint64) (*domain.EmploymentProfile, error)
	SaveEmploymentProfileFn     func(ctx context.Context, p *domain.EmploymentProfile) error
}

// WithApplicant answers both applicant lookups with a.
func (m *Repo) WithApplicant(a *domain.Applicant) *Repo {
	get := func(_ context.Context, id string) (*domain.Applicant, error) {
		if id != a.ApplicantID {
			return nil, gorm.ErrRecordNotFound
		}
		cp := *a
		return &cp, nil
	}
	m.GetByApplicantIDFn = get
	m.GetByApplicantIDForUpdateFn = get
	return m
}

func (m *Repo) Create(ctx context.Context, a *domain.Applicant) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, a *domain.Applicant) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, a)
	}
	return nil
}

func (m *Repo) GetByApplicantID(ctx context.Context, applicantID string) (*domain.Applicant, error) {
	if m.GetByApplicantIDFn != nil {
		return m.GetByApplicantIDFn(ctx, applicantID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetByApplicantIDForUpdate(ctx context.Context, applicantID string) (*domain.Applicant, error) {
	if m.GetByApplicantIDForUpdateFn != nil {
		return m.GetByApplicantIDForUpdateFn(ctx, applicantID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetByEmail(ctx context.Context, email string) (*domain.Applicant, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) Count(ctx context.Context) (int64, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx)
	}
	return 0, nil
}

func (m *Repo) GetFinancialProfile(ctx context.Context, applicantID uint64) (*domain.FinancialProfile, error) {
	if m.GetFinancialProfileFn != nil {
		return m.GetFinancialProfileFn(ctx, applicantID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) SaveFinancialProfile(ctx context.Context, p *domain.FinancialProfile) error {
	if m.SaveFinancialProfileFn != nil {
		return m.SaveFinancialProfileFn(ctx, p)
	}
	return nil
}

func (m *Repo) GetEmploymentProfile(ctx context.Context, applicantID uint64) (*domain.EmploymentProfile, error) {
	if m.GetEmploymentProfileFn != nil {
		return m.GetEmploymentProfileFn(ctx, applicantID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) SaveEmploymentProfile(ctx context.Context, p *domain.EmploymentProfile) error {
	if m.SaveEmploymentProfileFn != nil {
		return m.SaveEmploymentProfileFn(ctx, p)
	}
	return nil
}
