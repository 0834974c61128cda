package admin

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"loanhub-backend/internal/domain/apperr"
	"loanhub-backend/internal/domain/applicant"
	"loanhub-backend/internal/domain/catalog"
	"loanhub-backend/internal/domain/decision"
	"loanhub-backend/internal/domain/document"
	domloan "loanhub-backend/internal/domain/loan"
	"loanhub-backend/internal/domain/uow"
	"loanhub-backend/internal/usecase"
	"loanhub-backend/internal/usecase/loan"
	"loanhub-backend/pkg/id"
)

type Usecase struct {
	loans      domloan.Repository
	applicants applicant.Repository
	catalog    catalog.Repository
	documents  document.Repository
	uow        uow.UnitOfWork
	observer   usecase.TransitionObserver
	now        func() time.Time
}

func NewUsecase(loans domloan.Repository, applicants applicant.Repository, cat catalog.Repository, documents document.Repository, tx uow.UnitOfWork, observer usecase.TransitionObserver) *Usecase {
	return &Usecase{loans: loans, applicants: applicants, catalog: cat, documents: documents, uow: tx, observer: observer, now: time.Now}
}

func (u *Usecase) ListLoans(ctx context.Context, status string, bankID uint64) ([]loan.LoanDTO, error) {
	st, ok := loan.ParseStatus(status)
	if !ok {
		return nil, apperr.Validation("invalid status %q", status)
	}
	ls, err := u.loans.List(ctx, domloan.Filter{Status: st, BankID: bankID})
	if err != nil {
		return nil, err
	}
	return loan.Render(ctx, u.catalog, ls), nil
}

func (u *Usecase) Approve(ctx context.Context, adminID, loanID string, in DecisionInput) (*loan.LoanDTO, error) {
	return u.decide(ctx, adminID, loanID, domloan.ActionApprove, in.Note)
}

func (u *Usecase) Reject(ctx context.Context, adminID, loanID string, in DecisionInput) (*loan.LoanDTO, error) {
	return u.decide(ctx, adminID, loanID, domloan.ActionReject, in.Note)
}

func (u *Usecase) Disburse(ctx context.Context, adminID, loanID string, in DecisionInput) (*loan.LoanDTO, error) {
	return u.decide(ctx, adminID, loanID, domloan.ActionDisburse, in.Note)
}

// decide applies action under the loan row lock, writes the status only if it
// is still the one read, and records the decision in the same transaction.
func (u *Usecase) decide(ctx context.Context, adminID, loanID string, action domloan.Action, note string) (*loan.LoanDTO, error) {
	var dto loan.LoanDTO
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domloan.Loan) error {
		from := l.Status
		now := u.now()
		if err := l.Transition(action, now); err != nil {
			return err
		}
		if err := r.Loans.UpdateStatus(ctx, l, from); err != nil {
			if usecase.IsNotFound(err) {
				return apperr.InvalidTransition("loan status changed concurrently")
			}
			return err
		}
		d := &decision.Decision{
			DecisionID: id.NewID32(),
			LoanID:     l.ID,
			AdminID:    adminID,
			Action:     action,
			FromStatus: from,
			ToStatus:   l.Status,
			Note:       strings.TrimSpace(note),
			DecidedAt:  now.UTC(),
		}
		if err := r.Decisions.Create(ctx, d); err != nil {
			return err
		}
		var p *catalog.LoanProduct
		if got, err := r.Catalog.GetProduct(ctx, l.LoanProductID); err == nil {
			p = got
		}
		dto = loan.ToLoanDTO(l, p)
		return nil
	})
	if err != nil {
		return nil, usecase.NotFoundAs(err, "loan not found")
	}
	if u.observer != nil {
		u.observer.LoanTransition(string(action), dto.Status)
	}
	slog.Info("admin: loan decision", "loan_id", loanID, "action", action, "status", dto.Status, "admin_id", adminID)
	return &dto, nil
}

// ListDocuments defaults to the pending review queue.
func (u *Usecase) ListDocuments(ctx context.Context, status string) ([]document.Document, error) {
	st := document.Status(strings.ToLower(strings.TrimSpace(status)))
	switch st {
	case "":
		st = document.StatusPending
	case document.StatusPending, document.StatusVerified, document.StatusRejected:
	default:
		return nil, apperr.Validation("invalid status %q", status)
	}
	docs, err := u.documents.ListByStatus(ctx, st)
	if err != nil {
		return nil, err
	}
	if docs == nil {
		docs = []document.Document{}
	}
	return docs, nil
}

func (u *Usecase) VerifyDocument(ctx context.Context, adminID, documentID string, in DecisionInput) (*document.Document, error) {
	return u.review(ctx, adminID, documentID, document.StatusVerified, in.Note)
}

func (u *Usecase) RejectDocument(ctx context.Context, adminID, documentID string, in DecisionInput) (*document.Document, error) {
	return u.review(ctx, adminID, documentID, document.StatusRejected, in.Note)
}

func (u *Usecase) review(ctx context.Context, adminID, documentID string, to document.Status, note string) (*document.Document, error) {
	var out *document.Document
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		d, err := r.Documents.GetByDocumentIDForUpdate(ctx, documentID)
		if err != nil {
			return usecase.NotFoundAs(err, "document not found")
		}
		if !d.Review(to, adminID, strings.TrimSpace(note), u.now()) {
			return apperr.InvalidTransition("document is already %s", d.Status)
		}
		if err := r.Documents.Save(ctx, d); err != nil {
			return err
		}
		out = d
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Statistics counts applications in the current UTC calendar month.
func (u *Usecase) Statistics(ctx context.Context) (*Statistics, error) {
	users, err := u.applicants.Count(ctx)
	if err != nil {
		return nil, err
	}
	total, err := u.loans.Count(ctx)
	if err != nil {
		return nil, err
	}
	byStatus, err := u.loans.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	disbursed, err := u.loans.SumDisbursed(ctx)
	if err != nil {
		return nil, err
	}
	now := u.now().UTC()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthly, err := u.loans.CountAppliedBetween(ctx, start, start.AddDate(0, 1, 0))
	if err != nil {
		return nil, err
	}
	return &Statistics{
		TotalUsers:           users,
		TotalLoans:           total,
		PendingLoans:         byStatus[domloan.StatusPending],
		ApprovedLoans:        byStatus[domloan.StatusApproved],
		RejectedLoans:        byStatus[domloan.StatusRejected],
		ActiveLoans:          byStatus[domloan.StatusActive],
		ClosedLoans:          byStatus[domloan.StatusClosed],
		TotalDisbursedAmount: disbursed.RoundBank(2),
		MonthlyApplications:  monthly,
	}, nil
}
