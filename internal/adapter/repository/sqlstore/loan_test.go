package sqlstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"loanhub-backend/internal/domain/loan"
)

func TestLoan_CreateAndGet(t *testing.T) {
	db := openTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	a := seedApplicant(t, db, "l@example.com")
	p := seedProduct(t, db, "alpha", 1000, 1000000)

	in := makeLoan(a.ID, p.ID, 100000, loan.StatusPending, time.Now())
	if err := repo.Create(ctx, in); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByLoanID(ctx, in.LoanID)
	if err != nil {
		t.Fatalf("GetByLoanID: %v", err)
	}
	if got.Status != loan.StatusPending || !got.LoanAmount.Equal(decimal.NewFromInt(100000)) {
		t.Fatalf("unexpected row: %+v", got)
	}

	pending, err := repo.GetPendingByApplicantAndProduct(ctx, a.ID, p.ID)
	if err != nil || pending.LoanID != in.LoanID {
		t.Fatalf("GetPendingByApplicantAndProduct: %+v %v", pending, err)
	}

	if _, err := repo.GetByLoanIDForUpdate(ctx, "missing"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestLoan_UpdateStatusIsConditional(t *testing.T) {
	db := openTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	a := seedApplicant(t, db, "c@example.com")
	p := seedProduct(t, db, "alpha", 1000, 1000000)
	l := makeLoan(a.ID, p.ID, 50000, loan.StatusPending, time.Now())
	if err := repo.Create(ctx, l); err != nil {
		t.Fatal(err)
	}

	// two readers observe Pending
	first, _ := repo.GetByLoanID(ctx, l.LoanID)
	second, _ := repo.GetByLoanID(ctx, l.LoanID)

	now := time.Now()
	if err := first.Approve(now); err != nil {
		t.Fatal(err)
	}
	if err := repo.UpdateStatus(ctx, first, loan.StatusPending); err != nil {
		t.Fatalf("first UpdateStatus: %v", err)
	}

	if err := second.Reject(now); err != nil {
		t.Fatal(err)
	}
	if err := repo.UpdateStatus(ctx, second, loan.StatusPending); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("stale UpdateStatus should match no row, got %v", err)
	}

	got, _ := repo.GetByLoanID(ctx, l.LoanID)
	if got.Status != loan.StatusApproved || got.ApprovalDate == nil {
		t.Fatalf("unexpected final state: %+v", got)
	}
}

func TestLoan_ListFilters(t *testing.T) {
	db := openTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	a := seedApplicant(t, db, "f@example.com")
	b := seedApplicant(t, db, "g@example.com")
	pa := seedProduct(t, db, "alpha", 1000, 1000000)
	pb := seedProduct(t, db, "beta", 1000, 1000000)

	base := time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)
	for i, l := range []*loan.Loan{
		makeLoan(a.ID, pa.ID, 10000, loan.StatusPending, base),
		makeLoan(a.ID, pb.ID, 20000, loan.StatusActive, base.Add(time.Hour)),
		makeLoan(b.ID, pb.ID, 30000, loan.StatusRejected, base.Add(2*time.Hour)),
	} {
		if err := repo.Create(ctx, l); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	mine, err := repo.ListByApplicant(ctx, a.ID, "")
	if err != nil || len(mine) != 2 {
		t.Fatalf("ListByApplicant: %d %v", len(mine), err)
	}
	if mine[0].Status != loan.StatusActive {
		t.Fatalf("expected newest first, got %s", mine[0].Status)
	}

	pendingOnly, _ := repo.ListByApplicant(ctx, a.ID, loan.StatusPending)
	if len(pendingOnly) != 1 {
		t.Fatalf("status filter: %d", len(pendingOnly))
	}

	all, _ := repo.List(ctx, loan.Filter{})
	if len(all) != 3 {
		t.Fatalf("List all: %d", len(all))
	}
	byBank, err := repo.List(ctx, loan.Filter{BankID: pb.BankID})
	if err != nil || len(byBank) != 2 {
		t.Fatalf("List by bank: %d %v", len(byBank), err)
	}
	byBankStatus, _ := repo.List(ctx, loan.Filter{BankID: pb.BankID, Status: loan.StatusRejected})
	if len(byBankStatus) != 1 || !byBankStatus[0].LoanAmount.Equal(decimal.NewFromInt(30000)) {
		t.Fatalf("List by bank+status: %+v", byBankStatus)
	}
}

func TestLoan_Statistics(t *testing.T) {
	db := openTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	a := seedApplicant(t, db, "s@example.com")
	p := seedProduct(t, db, "alpha", 1000, 1000000)

	june := time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)
	may := time.Date(2026, 5, 31, 23, 0, 0, 0, time.UTC)
	disbursed := june

	active := makeLoan(a.ID, p.ID, 100000, loan.StatusActive, june)
	active.DisbursalDate = &disbursed
	closed := makeLoan(a.ID, p.ID, 50000, loan.StatusClosed, may)
	closed.DisbursalDate = &disbursed
	pending := makeLoan(a.ID, p.ID, 70000, loan.StatusPending, june)

	for _, l := range []*loan.Loan{active, closed, pending} {
		if err := repo.Create(ctx, l); err != nil {
			t.Fatal(err)
		}
	}

	n, err := repo.Count(ctx)
	if err != nil || n != 3 {
		t.Fatalf("Count = %d %v", n, err)
	}

	nActive, _ := repo.CountActive(ctx, a.ID)
	if nActive != 1 {
		t.Fatalf("CountActive = %d", nActive)
	}

	byStatus, err := repo.CountByStatus(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if byStatus[loan.StatusActive] != 1 || byStatus[loan.StatusClosed] != 1 || byStatus[loan.StatusPending] != 1 || byStatus[loan.StatusRejected] != 0 {
		t.Fatalf("CountByStatus = %v", byStatus)
	}

	sum, err := repo.SumDisbursed(ctx)
	if err != nil || !sum.Equal(decimal.NewFromInt(150000)) {
		t.Fatalf("SumDisbursed = %s %v", sum, err)
	}

	monthStart := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	inJune, err := repo.CountAppliedBetween(ctx, monthStart, monthStart.AddDate(0, 1, 0))
	if err != nil || inJune != 2 {
		t.Fatalf("CountAppliedBetween = %d %v", inJune, err)
	}
}

func TestLoan_SumDisbursedEmpty(t *testing.T) {
	db := openTestDB(t)
	sum, err := NewLoanRepository(db).SumDisbursed(context.Background())
	if err != nil || !sum.IsZero() {
		t.Fatalf("SumDisbursed = %s %v", sum, err)
	}
}
