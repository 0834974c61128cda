package decision

import (
	"time"

	"loanhub-backend/internal/domain/loan"
)

// Decision is the audit row of one admin transition on a loan.
type Decision struct {
	ID         uint64      `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	DecisionID string      `gorm:"column:decision_id;size:32;not null;uniqueIndex:ux_loan_decisions_decision_id" json:"decision_id"`
	LoanID     uint64      `gorm:"column:loan_id;not null;index" json:"-"`
	AdminID    string      `gorm:"column:admin_id;size:32;not null" json:"admin_id"`
	Action     loan.Action `gorm:"column:action;size:16;not null" json:"action"`
	FromStatus loan.Status `gorm:"column:from_status;size:16;not null" json:"from_status"`
	ToStatus   loan.Status `gorm:"column:to_status;size:16;not null" json:"to_status"`
	Note       string      `gorm:"column:note;type:text" json:"note,omitempty"`
	DecidedAt  time.Time   `gorm:"column:decided_at;not null" json:"decided_at"`
	CreatedAt  time.Time   `gorm:"column:created_at;autoCreateTime" json:"-"`
}

func (Decision) TableName() string { return "loan_decisions" }
