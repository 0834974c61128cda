package sqlstore

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"loanhub-backend/internal/domain/applicant"
)

type ApplicantRepository struct{ db *gorm.DB }

func NewApplicantRepository(db *gorm.DB) *ApplicantRepository { return &ApplicantRepository{db: db} }

func (r *ApplicantRepository) Create(ctx context.Context, a *applicant.Applicant) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *ApplicantRepository) Save(ctx context.Context, a *applicant.Applicant) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *ApplicantRepository) GetByApplicantID(ctx context.Context, applicantID string) (*applicant.Applicant, error) {
	var out applicant.Applicant
	res := r.db.WithContext(ctx).Where("applicant_id = ?", applicantID).First(&out)
	return &out, res.Error
}

func (r *ApplicantRepository) GetByApplicantIDForUpdate(ctx context.Context, applicantID string) (*applicant.Applicant, error) {
	var out applicant.Applicant
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("applicant_id = ?", applicantID).
		First(&out)
	return &out, res.Error
}

func (r *ApplicantRepository) GetByEmail(ctx context.Context, email string) (*applicant.Applicant, error) {
	var out applicant.Applicant
	res := r.db.WithContext(ctx).Where("email = ?", email).First(&out)
	return &out, res.Error
}

func (r *ApplicantRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&applicant.Applicant{}).Count(&n).Error
	return n, err
}

func (r *ApplicantRepository) GetFinancialProfile(ctx context.Context, applicantID uint64) (*applicant.FinancialProfile, error) {
	var out applicant.FinancialProfile
	res := r.db.WithContext(ctx).Where("applicant_id = ?", applicantID).First(&out)
	return &out, res.Error
}

func (r *ApplicantRepository) SaveFinancialProfile(ctx context.Context, p *applicant.FinancialProfile) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *ApplicantRepository) GetEmploymentProfile(ctx context.Context, applicantID uint64) (*applicant.EmploymentProfile, error) {
	var out applicant.EmploymentProfile
	res := r.db.WithContext(ctx).Where("applicant_id = ?", applicantID).First(&out)
	return &out, res.Error
}

func (r *ApplicantRepository) SaveEmploymentProfile(ctx context.Context, p *applicant.EmploymentProfile) error {
	return r.db.WithContext(ctx).Save(p).Error
}
