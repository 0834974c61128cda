package decisionmock

import (
	"context"

	domain "loanhub-backend/internal/domain/decision"
)

var _ domain.Repository = (*Repo)(nil)

// Repo records created decisions in Created unless CreateFn overrides it.
type Repo struct {
	CreateFn     func(ctx context.Context, d *domain.Decision) error
	ListByLoanFn func(ctx context.Context, loanID uint64) ([]domain.Decision, error)

	Created []domain.Decision
}

func (m *Repo) Create(ctx context.Context, d *domain.Decision) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, d)
	}
	m.Created = append(m.Created, *d)
	return nil
}

func (m *Repo) ListByLoan(ctx context.Context, loanID uint64) ([]domain.Decision, error) {
	if m.ListByLoanFn != nil {
		return m.ListByLoanFn(ctx, loanID)
	}
	var out []domain.Decision
	for _, d := range m.Created {
		if d.LoanID == loanID {
			out = append(out, d)
		}
	}
	return out, nil
}
