package sqlstore

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"loanhub-backend/internal/domain/catalog"
)

type CatalogRepository struct{ db *gorm.DB }

func NewCatalogRepository(db *gorm.DB) *CatalogRepository { return &CatalogRepository{db: db} }

func (r *CatalogRepository) CreateBank(ctx context.Context, b *catalog.Bank) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *CatalogRepository) SaveBank(ctx context.Context, b *catalog.Bank) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *CatalogRepository) GetBank(ctx context.Context, id uint64) (*catalog.Bank, error) {
	var out catalog.Bank
	res := r.db.WithContext(ctx).Where("bank_id = ?", id).First(&out)
	return &out, res.Error
}

func (r *CatalogRepository) GetBankByName(ctx context.Context, name string) (*catalog.Bank, error) {
	var out catalog.Bank
	res := r.db.WithContext(ctx).Where("bank_name = ?", name).First(&out)
	return &out, res.Error
}

func (r *CatalogRepository) ListBanks(ctx context.Context) ([]catalog.Bank, error) {
	var out []catalog.Bank
	err := r.db.WithContext(ctx).Order("bank_name ASC").Find(&out).Error
	return out, err
}

// Products are written without touching the preloaded bank.
func (r *CatalogRepository) CreateProduct(ctx context.Context, p *catalog.LoanProduct) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(p).Error
}

func (r *CatalogRepository) SaveProduct(ctx context.Context, p *catalog.LoanProduct) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(p).Error
}

func (r *CatalogRepository) GetProduct(ctx context.Context, id uint64) (*catalog.LoanProduct, error) {
	var out catalog.LoanProduct
	res := r.db.WithContext(ctx).Preload("Bank").Where("loan_product_id = ?", id).First(&out)
	return &out, res.Error
}

func (r *CatalogRepository) ListProducts(ctx context.Context, f catalog.ProductFilter) ([]catalog.LoanProduct, error) {
	q := r.db.WithContext(ctx).Preload("Bank")
	if f.BankID != 0 {
		q = q.Where("bank_id = ?", f.BankID)
	}
	if f.MinAmount.IsPositive() {
		q = q.Where("max_amount >= ?", f.MinAmount)
	}
	if f.MaxAmount.IsPositive() {
		q = q.Where("min_amount <= ?", f.MaxAmount)
	}
	var out []catalog.LoanProduct
	err := q.Order("loan_product_id ASC").Find(&out).Error
	return out, err
}
