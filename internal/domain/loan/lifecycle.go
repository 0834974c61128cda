package loan

import (
	"time"

	"loanhub-backend/internal/domain/apperr"
)

// Allowed transitions:
//
//	Pending  -> Approved | Rejected
//	Approved -> Active | Closed
//	Active   -> Closed
//
// Rejected and Closed are terminal.

func (l *Loan) Approve(now time.Time) error {
	if l.Status != StatusPending {
		return apperr.InvalidTransition("only pending loans can be approved (status %s)", l.Status)
	}
	t := now.UTC()
	l.Status = StatusApproved
	l.ApprovalDate = &t
	return nil
}

func (l *Loan) Reject(now time.Time) error {
	if l.Status != StatusPending {
		return apperr.InvalidTransition("only pending loans can be rejected (status %s)", l.Status)
	}
	// approval_date doubles as the decision timestamp
	t := now.UTC()
	l.Status = StatusRejected
	l.ApprovalDate = &t
	return nil
}

func (l *Loan) Disburse(now time.Time) error {
	if l.Status != StatusApproved {
		return apperr.InvalidTransition("only approved loans can be disbursed (status %s)", l.Status)
	}
	t := now.UTC()
	l.Status = StatusActive
	l.DisbursalDate = &t
	return nil
}

func (l *Loan) PreClose(now time.Time) error {
	if l.Status != StatusActive && l.Status != StatusApproved {
		return apperr.InvalidTransition("only active or approved loans can be pre-closed (status %s)", l.Status)
	}
	t := now.UTC()
	l.Status = StatusClosed
	l.PreClosureDate = &t
	return nil
}

// Transition applies the named action. Unknown actions are invalid transitions.
func (l *Loan) Transition(action Action, now time.Time) error {
	switch action {
	case ActionApprove:
		return l.Approve(now)
	case ActionReject:
		return l.Reject(now)
	case ActionDisburse:
		return l.Disburse(now)
	case ActionPreClose:
		return l.PreClose(now)
	}
	return apperr.InvalidTransition("unknown action %q", action)
}

type Action string

const (
	ActionApprove  Action = "approve"
	ActionReject   Action = "reject"
	ActionDisburse Action = "disburse"
	ActionPreClose Action = "pre-close"
)
