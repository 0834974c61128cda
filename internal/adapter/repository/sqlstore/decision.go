package sqlstore

import (
	"context"

	"gorm.io/gorm"

	"loanhub-backend/internal/domain/decision"
)

type DecisionRepository struct{ db *gorm.DB }

func NewDecisionRepository(db *gorm.DB) *DecisionRepository { return &DecisionRepository{db: db} }

func (r *DecisionRepository) Create(ctx context.Context, d *decision.Decision) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *DecisionRepository) ListByLoan(ctx context.Context, loanID uint64) ([]decision.Decision, error) {
	var out []decision.Decision
	err := r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Order("decided_at ASC, id ASC").
		Find(&out).Error
	return out, err
}
