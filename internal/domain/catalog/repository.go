package catalog

import (
	"context"

	"github.com/shopspring/decimal"
)

// ProductFilter narrows product listings. Zero values are ignored.
// MinAmount keeps products whose MaxAmount reaches it; MaxAmount keeps
// products whose MinAmount does not exceed it.
type ProductFilter struct {
	BankID    uint64
	MinAmount decimal.Decimal
	MaxAmount decimal.Decimal
}

type Repository interface {
	CreateBank(ctx context.Context, b *Bank) error
	SaveBank(ctx context.Context, b *Bank) error
	GetBank(ctx context.Context, id uint64) (*Bank, error)
	GetBankByName(ctx context.Context, name string) (*Bank, error)
	ListBanks(ctx context.Context) ([]Bank, error)

	CreateProduct(ctx context.Context, p *LoanProduct) error
	SaveProduct(ctx context.Context, p *LoanProduct) error
	GetProduct(ctx context.Context, id uint64) (*LoanProduct, error)
	ListProducts(ctx context.Context, f ProductFilter) ([]LoanProduct, error)
}
