package sqlstore

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"loanhub-backend/internal/domain/applicant"
	"loanhub-backend/internal/domain/catalog"
	"loanhub-backend/internal/domain/loan"
	infradb "loanhub-backend/internal/infrastructure/db"
	"loanhub-backend/pkg/id"
)

// openTestDB uses a file so every pooled connection sees the same schema.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := infradb.OpenGorm(infradb.DriverSQLite, filepath.Join(t.TempDir(), "test.db"), logger.Silent)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := infradb.Migrate(gdb); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return gdb
}

func seedApplicant(t *testing.T, db *gorm.DB, email string) *applicant.Applicant {
	t.Helper()
	a := &applicant.Applicant{
		ApplicantID:  id.NewID32(),
		FullName:     "Test Applicant",
		Email:        email,
		PasswordHash: "x",
		Role:         applicant.RoleApplicant,
	}
	if err := NewApplicantRepository(db).Create(context.Background(), a); err != nil {
		t.Fatalf("seed applicant: %v", err)
	}
	return a
}

func seedProduct(t *testing.T, db *gorm.DB, bankName string, min, max int64) *catalog.LoanProduct {
	t.Helper()
	ctx := context.Background()
	repo := NewCatalogRepository(db)

	b, err := repo.GetBankByName(ctx, bankName)
	if err != nil {
		b = &catalog.Bank{BankName: bankName, ContactEmail: "ops@" + bankName + ".test"}
		if err := repo.CreateBank(ctx, b); err != nil {
			t.Fatalf("seed bank: %v", err)
		}
	}
	p := &catalog.LoanProduct{
		BankID:          b.ID,
		ProductName:     bankName + " personal",
		MinAmount:       decimal.NewFromInt(min),
		MaxAmount:       decimal.NewFromInt(max),
		InterestRate:    decimal.RequireFromString("10.5"),
		MinTenureMonths: 6,
		MaxTenureMonths: 60,
	}
	if err := repo.CreateProduct(ctx, p); err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return p
}

func makeLoan(applicantID, productID uint64, amount int64, status loan.Status, appliedAt time.Time) *loan.Loan {
	return &loan.Loan{
		LoanID:        id.NewID32(),
		ApplicantID:   applicantID,
		LoanProductID: productID,
		LoanAmount:    decimal.NewFromInt(amount),
		TenureMonths:  12,
		InterestRate:  decimal.RequireFromString("10.5"),
		MonthlyEMI:    decimal.RequireFromString("8814.66"),
		Status:        status,
		AppliedAt:     appliedAt.UTC(),
	}
}
