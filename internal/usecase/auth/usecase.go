package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"gorm.io/gorm"

	"loanhub-backend/internal/domain/apperr"
	domain "loanhub-backend/internal/domain/applicant"
	"loanhub-backend/internal/domain/uow"
	"loanhub-backend/internal/usecase"
	"loanhub-backend/internal/usecase/applicant"
	"loanhub-backend/pkg/id"
)

const msgBadCredentials = "invalid email or password"

type Usecase struct {
	applicants domain.Repository
	uow        uow.UnitOfWork
	hasher     PasswordHasher
	tokens     TokenIssuer
	limiter    AttemptLimiter
	observer   Observer
}

// NewUsecase accepts a nil limiter or observer.
func NewUsecase(applicants domain.Repository, tx uow.UnitOfWork, hasher PasswordHasher, tokens TokenIssuer, limiter AttemptLimiter, observer Observer) *Usecase {
	return &Usecase{applicants: applicants, uow: tx, hasher: hasher, tokens: tokens, limiter: limiter, observer: observer}
}

// ValidatePassword requires at least 8 characters with a letter and a digit.
func ValidatePassword(p string) error {
	if len(p) < 8 {
		return apperr.Validation("password must be at least 8 characters")
	}
	var letter, digit bool
	for _, r := range p {
		switch {
		case unicode.IsLetter(r):
			letter = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !letter || !digit {
		return apperr.Validation("password must contain at least one letter and one digit")
	}
	return nil
}

func normalizeEmail(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func Roles(a *domain.Applicant) []string {
	if a.IsAdmin() {
		return []string{string(domain.RoleApplicant), string(domain.RoleAdmin)}
	}
	return []string{string(domain.RoleApplicant)}
}

func (u *Usecase) session(a *domain.Applicant) (*Session, error) {
	tok, exp, err := u.tokens.Issue(a.ApplicantID, a.Email, Roles(a))
	if err != nil {
		return nil, err
	}
	return &Session{AccessToken: tok, ExpiresAt: exp, User: applicant.ToApplicantDTO(a)}, nil
}

func (u *Usecase) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	if err := ValidatePassword(in.Password); err != nil {
		return nil, err
	}
	a := &domain.Applicant{
		ApplicantID:      id.NewID32(),
		FullName:         strings.TrimSpace(in.FullName),
		Email:            normalizeEmail(in.Email),
		Gender:           strings.TrimSpace(in.Gender),
		Nationality:      strings.TrimSpace(in.Nationality),
		MaritalStatus:    strings.TrimSpace(in.MaritalStatus),
		ContactNumber:    strings.TrimSpace(in.ContactNumber),
		PermanentAddress: strings.TrimSpace(in.PermanentAddress),
		Role:             domain.RoleApplicant,
	}
	if a.FullName == "" || a.Email == "" {
		return nil, apperr.Validation("full_name and email are required")
	}
	if in.DateOfBirth != "" {
		dob, ok := applicant.ParseDate(in.DateOfBirth)
		if !ok {
			return nil, apperr.Validation("date_of_birth must be YYYY-MM-DD")
		}
		a.DateOfBirth = &dob
	}

	hash, err := u.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	a.PasswordHash = hash

	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		_, err := r.Applicants.GetByEmail(ctx, a.Email)
		switch {
		case err == nil:
			return apperr.Conflict("email already registered")
		case !usecase.IsNotFound(err):
			return err
		}
		if err := r.Applicants.Create(ctx, a); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperr.Conflict("email already registered")
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slog.Info("auth: applicant registered", "applicant_id", a.ApplicantID)
	return u.session(a)
}

func (u *Usecase) Login(ctx context.Context, in LoginInput) (*Session, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, apperr.Validation("email and password are required")
	}

	if u.limiter != nil {
		ok, retry, err := u.limiter.Allow(ctx, email)
		switch {
		case err != nil:
			slog.Warn("auth: login limiter unavailable", "err", err)
		case !ok:
			if u.observer != nil {
				u.observer.LoginRateLimited()
			}
			return nil, apperr.Auth("too many login attempts; retry in %s", retry.Round(time.Second))
		}
	}

	a, err := u.applicants.GetByEmail(ctx, email)
	if err != nil {
		if usecase.IsNotFound(err) {
			return nil, apperr.Auth(msgBadCredentials)
		}
		return nil, err
	}
	if err := u.hasher.Compare(a.PasswordHash, in.Password); err != nil {
		return nil, apperr.Auth(msgBadCredentials)
	}

	if u.limiter != nil {
		if err := u.limiter.Reset(ctx, email); err != nil {
			slog.Warn("auth: reset login attempts", "err", err)
		}
	}
	return u.session(a)
}

func (u *Usecase) ChangePassword(ctx context.Context, applicantID string, in ChangePasswordInput) error {
	if err := ValidatePassword(in.NewPassword); err != nil {
		return err
	}
	return u.uow.WithinTx(ctx, func(r uow.Repos) error {
		a, err := r.Applicants.GetByApplicantIDForUpdate(ctx, applicantID)
		if err != nil {
			return usecase.NotFoundAs(err, "applicant not found")
		}
		if err := u.hasher.Compare(a.PasswordHash, in.CurrentPassword); err != nil {
			return apperr.Auth("current password is incorrect")
		}
		hash, err := u.hasher.Hash(in.NewPassword)
		if err != nil {
			return err
		}
		a.PasswordHash = hash
		return r.Applicants.Save(ctx, a)
	})
}

// VerifyToken resolves the applicant behind an already validated token.
func (u *Usecase) VerifyToken(ctx context.Context, applicantID string) (*applicant.ApplicantDTO, error) {
	a, err := u.applicants.GetByApplicantID(ctx, applicantID)
	if err != nil {
		if usecase.IsNotFound(err) {
			return nil, apperr.Auth("user not found")
		}
		return nil, err
	}
	dto := applicant.ToApplicantDTO(a)
	return &dto, nil
}

// EnsureAdmin creates the seed administrator, or promotes an existing
// account with that email. Empty credentials disable seeding.
func (u *Usecase) EnsureAdmin(ctx context.Context, email, password string) error {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil
	}
	return u.uow.WithinTx(ctx, func(r uow.Repos) error {
		a, err := r.Applicants.GetByEmail(ctx, email)
		if err == nil {
			if a.IsAdmin() {
				return nil
			}
			a.Role = domain.RoleAdmin
			slog.Info("auth: promoted seed admin", "applicant_id", a.ApplicantID)
			return r.Applicants.Save(ctx, a)
		}
		if !usecase.IsNotFound(err) {
			return err
		}
		hash, err := u.hasher.Hash(password)
		if err != nil {
			return err
		}
		a = &domain.Applicant{
			ApplicantID:  id.NewID32(),
			FullName:     "Administrator",
			Email:        email,
			PasswordHash: hash,
			Role:         domain.RoleAdmin,
		}
		if err := r.Applicants.Create(ctx, a); err != nil {
			return err
		}
		slog.Info("auth: created seed admin", "applicant_id", a.ApplicantID)
		return nil
	})
}
