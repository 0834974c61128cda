package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"loanhub-backend/internal/domain/apperr"
	domain "loanhub-backend/internal/domain/catalog"
	"loanhub-backend/internal/domain/uow"
	"loanhub-backend/internal/testutil/catalogmock"
	"loanhub-backend/internal/testutil/uowmock"
)

var hdfc = domain.Bank{ID: 1, BankName: "HDFC"}

func personal() domain.LoanProduct {
	return domain.LoanProduct{
		ID: 10, BankID: 1, Bank: &hdfc, ProductName: "Personal",
		MinAmount: decimal.NewFromInt(50000), MaxAmount: decimal.NewFromInt(1000000),
		InterestRate: decimal.RequireFromString("10.5"), MinTenureMonths: 12, MaxTenureMonths: 60,
	}
}

func newUC(repo *catalogmock.Repo) *Usecase {
	return NewUsecase(repo, uowmock.Over(uow.Repos{Catalog: repo}))
}

func validProduct() ProductInput {
	return ProductInput{
		BankID: 1, ProductName: "Gold", MinAmount: decimal.NewFromInt(1000), MaxAmount: decimal.NewFromInt(5000),
		InterestRate: decimal.NewFromInt(9), MinTenureMonths: 6, MaxTenureMonths: 24,
	}
}

func TestListProducts_MapsDTO(t *testing.T) {
	var got domain.ProductFilter
	repo := (&catalogmock.Repo{}).WithProducts(personal())
	list := repo.ListProductsFn
	repo.ListProductsFn = func(ctx context.Context, f domain.ProductFilter) ([]domain.LoanProduct, error) {
		got = f
		return list(ctx, f)
	}

	out, err := newUC(repo).ListProducts(context.Background(), ProductQuery{BankID: 1, MinAmount: decimal.NewFromInt(100)})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "HDFC", out[0].BankName)
	assert.Equal(t, "12-60 months", out[0].TenureRange)
	assert.Equal(t, uint64(1), got.BankID)
	assert.True(t, got.MinAmount.Equal(decimal.NewFromInt(100)))

	_, err = newUC(repo).ListProducts(context.Background(), ProductQuery{MaxAmount: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestGetProduct_NotFound(t *testing.T) {
	_, err := newUC((&catalogmock.Repo{}).WithProducts(personal())).GetProduct(context.Background(), 99)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestCreateBank_ConflictOnName(t *testing.T) {
	repo := &catalogmock.Repo{
		GetBankByNameFn: func(_ context.Context, name string) (*domain.Bank, error) {
			if name == "HDFC" {
				b := hdfc
				return &b, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
	}
	_, err := newUC(repo).CreateBank(context.Background(), BankInput{BankName: " HDFC "})
	assert.ErrorIs(t, err, apperr.ErrConflict)

	b, err := newUC(repo).CreateBank(context.Background(), BankInput{BankName: "ICICI", ContactEmail: "ops@icici.example"})
	require.NoError(t, err)
	assert.Equal(t, "ICICI", b.BankName)
}

func TestUpdateBank_KeepsOwnName(t *testing.T) {
	repo := &catalogmock.Repo{
		GetBankFn: func(context.Context, uint64) (*domain.Bank, error) { b := hdfc; return &b, nil },
		GetBankByNameFn: func(context.Context, string) (*domain.Bank, error) {
			b := hdfc
			return &b, nil
		},
	}
	b, err := newUC(repo).UpdateBank(context.Background(), 1, BankInput{BankName: "HDFC", Address: "Mumbai"})
	require.NoError(t, err)
	assert.Equal(t, "Mumbai", b.Address)
}

func TestCreateProduct(t *testing.T) {
	repo := &catalogmock.Repo{
		GetBankFn: func(_ context.Context, id uint64) (*domain.Bank, error) {
			if id != 1 {
				return nil, gorm.ErrRecordNotFound
			}
			b := hdfc
			return &b, nil
		},
	}
	var created *domain.LoanProduct
	repo.CreateProductFn = func(_ context.Context, p *domain.LoanProduct) error {
		p.ID = 42
		created = p
		return nil
	}

	dto, err := newUC(repo).CreateProduct(context.Background(), validProduct())
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, uint64(42), dto.LoanProductID)
	assert.Equal(t, "HDFC", dto.BankName)

	in := validProduct()
	in.BankID = 2
	_, err = newUC(repo).CreateProduct(context.Background(), in)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestValidateProduct(t *testing.T) {
	cases := map[string]func(*ProductInput){
		"empty name":      func(p *ProductInput) { p.ProductName = " " },
		"zero min":        func(p *ProductInput) { p.MinAmount = decimal.Zero },
		"max below min":   func(p *ProductInput) { p.MaxAmount = decimal.NewFromInt(10) },
		"negative rate":   func(p *ProductInput) { p.InterestRate = decimal.NewFromInt(-1) },
		"rate too high":   func(p *ProductInput) { p.InterestRate = decimal.NewFromInt(101) },
		"tenure inverted": func(p *ProductInput) { p.MinTenureMonths, p.MaxTenureMonths = 24, 12 },
		"tenure too long": func(p *ProductInput) { p.MaxTenureMonths = 601 },
	}
	for name, mut := range cases {
		t.Run(name, func(t *testing.T) {
			in := validProduct()
			mut(&in)
			err := validateProduct(in)
			if !errors.Is(err, apperr.ErrValidation) {
				t.Fatalf("want ErrValidation, got %v", err)
			}
		})
	}
	assert.NoError(t, validateProduct(validProduct()))
}
