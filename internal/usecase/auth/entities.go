package auth

import (
	"context"
	"time"

	"loanhub-backend/internal/usecase/applicant"
)

type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(hash, plain string) error
}

type TokenIssuer interface {
	Issue(applicantID, email string, roles []string) (string, time.Time, error)
}

// AttemptLimiter throttles login attempts per email.
type AttemptLimiter interface {
	Allow(ctx context.Context, subject string) (bool, time.Duration, error)
	Reset(ctx context.Context, subject string) error
}

type Observer interface {
	LoginRateLimited()
}

type RegisterInput struct {
	FullName         string `json:"full_name" validate:"required,max=100"`
	Email            string `json:"email" validate:"required,email,max=100"`
	ContactNumber    string `json:"contact_number" validate:"required,max=20"`
	Password         string `json:"password" validate:"required,min=8,max=72"`
	Gender           string `json:"gender" validate:"required,max=20"`
	MaritalStatus    string `json:"marital_status" validate:"required,max=20"`
	Nationality      string `json:"nationality" validate:"required,max=50"`
	DateOfBirth      string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	PermanentAddress string `json:"permanent_address"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ChangePasswordInput struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=72"`
}

type Session struct {
	AccessToken string                 `json:"access_token"`
	ExpiresAt   time.Time              `json:"expires_at"`
	User        applicant.ApplicantDTO `json:"user"`
}
