package applicant

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"loanhub-backend/internal/domain/apperr"
	domain "loanhub-backend/internal/domain/applicant"
	"loanhub-backend/internal/domain/document"
	"loanhub-backend/internal/domain/uow"
	"loanhub-backend/internal/usecase"
	"loanhub-backend/pkg/id"
)

type Usecase struct {
	applicants domain.Repository
	documents  document.Repository
	blobs      document.BlobStore
	uow        uow.UnitOfWork
	now        func() time.Time
}

func NewUsecase(applicants domain.Repository, documents document.Repository, blobs document.BlobStore, tx uow.UnitOfWork) *Usecase {
	return &Usecase{applicants: applicants, documents: documents, blobs: blobs, uow: tx, now: time.Now}
}

func (u *Usecase) load(ctx context.Context, repo domain.Repository, applicantID string, lock bool) (*domain.Applicant, error) {
	var (
		a   *domain.Applicant
		err error
	)
	if lock {
		a, err = repo.GetByApplicantIDForUpdate(ctx, applicantID)
	} else {
		a, err = repo.GetByApplicantID(ctx, applicantID)
	}
	if err != nil {
		return nil, usecase.NotFoundAs(err, "applicant not found")
	}
	return a, nil
}

func (u *Usecase) GetProfile(ctx context.Context, applicantID string) (*ApplicantDTO, error) {
	a, err := u.load(ctx, u.applicants, applicantID, false)
	if err != nil {
		return nil, err
	}
	dto := ToApplicantDTO(a)
	return &dto, nil
}

func (u *Usecase) UpdateProfile(ctx context.Context, applicantID string, in UpdateProfileInput) (*ApplicantDTO, error) {
	var dto ApplicantDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		a, err := u.load(ctx, r.Applicants, applicantID, true)
		if err != nil {
			return err
		}
		if in.FullName != nil {
			name := strings.TrimSpace(*in.FullName)
			if name == "" {
				return apperr.Validation("full_name must not be empty")
			}
			a.FullName = name
		}
		if in.DateOfBirth != nil {
			dob, ok := ParseDate(*in.DateOfBirth)
			if !ok {
				return apperr.Validation("date_of_birth must be YYYY-MM-DD")
			}
			a.DateOfBirth = &dob
		}
		setString(&a.Gender, in.Gender)
		setString(&a.Nationality, in.Nationality)
		setString(&a.MaritalStatus, in.MaritalStatus)
		setString(&a.ContactNumber, in.ContactNumber)
		setString(&a.PermanentAddress, in.PermanentAddress)
		if err := r.Applicants.Save(ctx, a); err != nil {
			return err
		}
		dto = ToApplicantDTO(a)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dto, nil
}

func (u *Usecase) GetFinancial(ctx context.Context, applicantID string) (*domain.FinancialProfile, error) {
	a, err := u.load(ctx, u.applicants, applicantID, false)
	if err != nil {
		return nil, err
	}
	p, err := u.applicants.GetFinancialProfile(ctx, a.ID)
	if err != nil {
		return nil, usecase.NotFoundAs(err, "financial details not found")
	}
	return p, nil
}

// CreateFinancial fails with a conflict when a profile already exists.
func (u *Usecase) CreateFinancial(ctx context.Context, applicantID string, in FinancialInput) (*domain.FinancialProfile, error) {
	return u.writeFinancial(ctx, applicantID, in, true)
}

// UpdateFinancial fails with not-found when no profile exists yet.
func (u *Usecase) UpdateFinancial(ctx context.Context, applicantID string, in FinancialInput) (*domain.FinancialProfile, error) {
	return u.writeFinancial(ctx, applicantID, in, false)
}

func (u *Usecase) writeFinancial(ctx context.Context, applicantID string, in FinancialInput, create bool) (*domain.FinancialProfile, error) {
	var out *domain.FinancialProfile
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		a, err := u.load(ctx, r.Applicants, applicantID, true)
		if err != nil {
			return err
		}
		p, err := r.Applicants.GetFinancialProfile(ctx, a.ID)
		switch {
		case err == nil && create:
			return apperr.Conflict("financial details already exist; use update")
		case err != nil && !usecase.IsNotFound(err):
			return err
		case err != nil && !create:
			return apperr.NotFound("financial details not found")
		case err != nil:
			p = &domain.FinancialProfile{ApplicantID: a.ID}
		}

		setDecimal(&p.ExistingLoans, in.ExistingLoans)
		setDecimal(&p.MonthlyEMI, in.MonthlyEMI)
		setString(&p.AssetsOwned, in.AssetsOwned)
		setString(&p.BankAccountDetails, in.BankAccountDetails)
		if p.ExistingLoans.IsNegative() || p.MonthlyEMI.IsNegative() {
			return apperr.Validation("existing_loans and monthly_emi must not be negative")
		}
		if err := r.Applicants.SaveFinancialProfile(ctx, p); err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (u *Usecase) GetEmployment(ctx context.Context, applicantID string) (*domain.EmploymentProfile, error) {
	a, err := u.load(ctx, u.applicants, applicantID, false)
	if err != nil {
		return nil, err
	}
	p, err := u.applicants.GetEmploymentProfile(ctx, a.ID)
	if err != nil {
		return nil, usecase.NotFoundAs(err, "employment details not found")
	}
	return p, nil
}

func (u *Usecase) CreateEmployment(ctx context.Context, applicantID string, in EmploymentInput) (*domain.EmploymentProfile, error) {
	if in.EmploymentStatus == nil {
		return nil, apperr.Validation("employment_status is required")
	}
	return u.writeEmployment(ctx, applicantID, in, true)
}

func (u *Usecase) UpdateEmployment(ctx context.Context, applicantID string, in EmploymentInput) (*domain.EmploymentProfile, error) {
	return u.writeEmployment(ctx, applicantID, in, false)
}

func (u *Usecase) writeEmployment(ctx context.Context, applicantID string, in EmploymentInput, create bool) (*domain.EmploymentProfile, error) {
	var out *domain.EmploymentProfile
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		a, err := u.load(ctx, r.Applicants, applicantID, true)
		if err != nil {
			return err
		}
		p, err := r.Applicants.GetEmploymentProfile(ctx, a.ID)
		switch {
		case err == nil && create:
			return apperr.Conflict("employment details already exist; use update")
		case err != nil && !usecase.IsNotFound(err):
			return err
		case err != nil && !create:
			return apperr.NotFound("employment details not found")
		case err != nil:
			p = &domain.EmploymentProfile{ApplicantID: a.ID}
		}

		if in.EmploymentStatus != nil {
			st := domain.EmploymentStatus(strings.TrimSpace(*in.EmploymentStatus))
			if !st.Valid() {
				return apperr.Validation("invalid employment_status %q", *in.EmploymentStatus)
			}
			p.EmploymentStatus = st
		}
		setString(&p.EmployerNameAddress, in.EmployerNameAddress)
		setString(&p.JobTitle, in.JobTitle)
		setDecimal(&p.MonthlyIncome, in.MonthlyIncome)
		setDecimal(&p.OtherIncome, in.OtherIncome)
		if p.MonthlyIncome.IsNegative() || p.OtherIncome.IsNegative() {
			return apperr.Validation("monthly_income and other_income must not be negative")
		}
		if err := r.Applicants.SaveEmploymentProfile(ctx, p); err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UploadDocument stores the file first and then records it. The stored file
// is removed again if the record cannot be written.
func (u *Usecase) UploadDocument(ctx context.Context, applicantID string, in UploadInput) (*document.Document, error) {
	kind, ok := document.ParseKind(in.DocumentType)
	if !ok {
		return nil, apperr.Validation("invalid document_type %q", in.DocumentType)
	}
	if in.Content == nil || strings.TrimSpace(in.FileName) == "" {
		return nil, apperr.Validation("file is required")
	}
	a, err := u.load(ctx, u.applicants, applicantID, false)
	if err != nil {
		return nil, err
	}

	blob, err := u.blobs.Save(ctx, a.ApplicantID, kind, in.FileName, in.Content)
	if err != nil {
		return nil, err
	}

	d := &document.Document{
		DocumentID:  id.NewID32(),
		ApplicantID: a.ID,
		Kind:        kind,
		Path:        blob.Path,
		FileName:    in.FileName,
		ContentType: blob.ContentType,
		SizeBytes:   blob.Size,
		Status:      document.StatusPending,
		UploadedAt:  u.now().UTC(),
	}
	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Documents.Create(ctx, d); err != nil {
			return err
		}
		if kind != document.KindIncomeProof {
			return nil
		}
		emp, err := r.Applicants.GetEmploymentProfile(ctx, a.ID)
		if usecase.IsNotFound(err) {
			return nil
		}
		if err != nil {
			return err
		}
		emp.IncomeProofPath = blob.Path
		return r.Applicants.SaveEmploymentProfile(ctx, emp)
	})
	if err != nil {
		if rmErr := u.blobs.Remove(ctx, blob.Path); rmErr != nil {
			slog.Error("upload: remove orphaned blob", "path", blob.Path, "err", rmErr)
		}
		return nil, err
	}
	return d, nil
}

func (u *Usecase) ListDocuments(ctx context.Context, applicantID string) (*DocumentsDTO, error) {
	a, err := u.load(ctx, u.applicants, applicantID, false)
	if err != nil {
		return nil, err
	}
	docs, err := u.documents.ListByApplicant(ctx, a.ID)
	if err != nil {
		return nil, err
	}
	if docs == nil {
		docs = []document.Document{}
	}
	return &DocumentsDTO{KYC: document.BundleOf(docs), Documents: docs}, nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

func setDecimal(dst *decimal.Decimal, v *decimal.Decimal) {
	if v != nil {
		*dst = *v
	}
}
