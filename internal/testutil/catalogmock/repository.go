package catalogmock

import (
	"context"

	"gorm.io/gorm"

	domain "loanhub-backend/internal/domain/catalog"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Unset getters report gorm.ErrRecordNotFound; unset writers succeed.
type Repo struct {
	CreateBankFn    func(ctx context.Context, b *domain.Bank) error
	SaveBankFn      func(ctx context.Context, b *domain.Bank) error
	GetBankFn       func(ctx context.Context, id uint64) (*domain.Bank, error)
	GetBankByNameFn func(ctx context.Context, name string) (*domain.Bank, error)
	ListBanksFn     func(ctx context.Context) ([]domain.Bank, error)
	CreateProductFn func(ctx context.Context, p *domain.LoanProduct) error
	SaveProductFn   func(ctx context.Context, p *domain.LoanProduct) error
	GetProductFn    func(ctx context.Context, id uint64) (*domain.LoanProduct, error)
	ListProductsFn  func(ctx context.Context, f domain.ProductFilter) ([]domain.LoanProduct, error)
}

// WithProducts serves GetProduct and ListProducts from ps.
func (m *Repo) WithProducts(ps ...domain.LoanProduct) *Repo {
	m.GetProductFn = func(_ context.Context, id uint64) (*domain.LoanProduct, error) {
		for _, p := range ps {
			if p.ID == id {
				cp := p
				return &cp, nil
			}
		}
		return nil, gorm.ErrRecordNotFound
	}
	m.ListProductsFn = func(context.Context, domain.ProductFilter) ([]domain.LoanProduct, error) {
		return append([]domain.LoanProduct(nil), ps...), nil
	}
	return m
}

func (m *Repo) CreateBank(ctx context.Context, b *domain.Bank) error {
	if m.CreateBankFn != nil {
		return m.CreateBankFn(ctx, b)
	}
	return nil
}

func (m *Repo) SaveBank(ctx context.Context, b *domain.Bank) error {
	if m.SaveBankFn != nil {
		return m.SaveBankFn(ctx, b)
	}
	return nil
}

func (m *Repo) GetBank(ctx context.Context, id uint64) (*domain.Bank, error) {
	if m.GetBankFn != nil {
		return m.GetBankFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetBankByName(ctx context.Context, name string) (*domain.Bank, error) {
	if m.GetBankByNameFn != nil {
		return m.GetBankByNameFn(ctx, name)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) ListBanks(ctx context.Context) ([]domain.Bank, error) {
	if m.ListBanksFn != nil {
		return m.ListBanksFn(ctx)
	}
	return nil, nil
}

func (m *Repo) CreateProduct(ctx context.Context, p *domain.LoanProduct) error {
	if m.CreateProductFn != nil {
		return m.CreateProductFn(ctx, p)
	}
	return nil
}

func (m *Repo) SaveProduct(ctx context.Context, p *domain.LoanProduct) error {
	if m.SaveProductFn != nil {
		return m.SaveProductFn(ctx, p)
	}
	return nil
}

func (m *Repo) GetProduct(ctx context.Context, id uint64) (*domain.LoanProduct, error) {
	if m.GetProductFn != nil {
		return m.GetProductFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) ListProducts(ctx context.Context, f domain.ProductFilter) ([]domain.LoanProduct, error) {
	if m.ListProductsFn != nil {
		return m.ListProductsFn(ctx, f)
	}
	return nil, nil
}
