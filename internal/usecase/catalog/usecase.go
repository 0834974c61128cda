package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"loanhub-backend/internal/domain/apperr"
	domain "loanhub-backend/internal/domain/catalog"
	"loanhub-backend/internal/domain/emi"
	"loanhub-backend/internal/domain/uow"
	"loanhub-backend/internal/usecase"
)

var maxRate = decimal.NewFromInt(100)

type Usecase struct {
	repo domain.Repository
	uow  uow.UnitOfWork
}

func NewUsecase(repo domain.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{repo: repo, uow: tx}
}

func (u *Usecase) ListProducts(ctx context.Context, q ProductQuery) ([]ProductDTO, error) {
	if q.MinAmount.IsNegative() || q.MaxAmount.IsNegative() {
		return nil, apperr.Validation("amount filters must not be negative")
	}
	ps, err := u.repo.ListProducts(ctx, domain.ProductFilter{BankID: q.BankID, MinAmount: q.MinAmount, MaxAmount: q.MaxAmount})
	if err != nil {
		return nil, err
	}
	out := make([]ProductDTO, 0, len(ps))
	for i := range ps {
		out = append(out, ToProductDTO(&ps[i]))
	}
	return out, nil
}

func (u *Usecase) GetProduct(ctx context.Context, id uint64) (*ProductDTO, error) {
	p, err := u.repo.GetProduct(ctx, id)
	if err != nil {
		return nil, usecase.NotFoundAs(err, "loan product not found")
	}
	dto := ToProductDTO(p)
	return &dto, nil
}

func (u *Usecase) ListBanks(ctx context.Context) ([]domain.Bank, error) {
	bs, err := u.repo.ListBanks(ctx)
	if err != nil {
		return nil, err
	}
	if bs == nil {
		bs = []domain.Bank{}
	}
	return bs, nil
}

func (u *Usecase) CreateBank(ctx context.Context, in BankInput) (*domain.Bank, error) {
	b := &domain.Bank{}
	if err := applyBank(b, in); err != nil {
		return nil, err
	}
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if err := uniqueBankName(ctx, r.Catalog, b.BankName, 0); err != nil {
			return err
		}
		return translateDuplicate(r.Catalog.CreateBank(ctx, b))
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (u *Usecase) UpdateBank(ctx context.Context, id uint64, in BankInput) (*domain.Bank, error) {
	var out *domain.Bank
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		b, err := r.Catalog.GetBank(ctx, id)
		if err != nil {
			return usecase.NotFoundAs(err, "bank not found")
		}
		if err := applyBank(b, in); err != nil {
			return err
		}
		if err := uniqueBankName(ctx, r.Catalog, b.BankName, b.ID); err != nil {
			return err
		}
		if err := translateDuplicate(r.Catalog.SaveBank(ctx, b)); err != nil {
			return err
		}
		out = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (u *Usecase) CreateProduct(ctx context.Context, in ProductInput) (*ProductDTO, error) {
	return u.writeProduct(ctx, 0, in)
}

func (u *Usecase) UpdateProduct(ctx context.Context, id uint64, in ProductInput) (*ProductDTO, error) {
	return u.writeProduct(ctx, id, in)
}

// writeProduct creates when id is zero and replaces product id otherwise.
func (u *Usecase) writeProduct(ctx context.Context, id uint64, in ProductInput) (*ProductDTO, error) {
	if err := validateProduct(in); err != nil {
		return nil, err
	}
	var dto ProductDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		bank, err := r.Catalog.GetBank(ctx, in.BankID)
		if err != nil {
			return usecase.NotFoundAs(err, "bank not found")
		}
		p := &domain.LoanProduct{}
		if id != 0 {
			if p, err = r.Catalog.GetProduct(ctx, id); err != nil {
				return usecase.NotFoundAs(err, "loan product not found")
			}
		}
		p.BankID = bank.ID
		p.Bank = bank
		p.ProductName = strings.TrimSpace(in.ProductName)
		p.Description = in.Description
		p.MinAmount = in.MinAmount
		p.MaxAmount = in.MaxAmount
		p.InterestRate = in.InterestRate
		p.MinTenureMonths = in.MinTenureMonths
		p.MaxTenureMonths = in.MaxTenureMonths
		p.EligibilityCriteria = in.EligibilityCriteria

		if id == 0 {
			err = r.Catalog.CreateProduct(ctx, p)
		} else {
			err = r.Catalog.SaveProduct(ctx, p)
		}
		if err != nil {
			return err
		}
		dto = ToProductDTO(p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dto, nil
}

func validateProduct(in ProductInput) error {
	switch {
	case strings.TrimSpace(in.ProductName) == "":
		return apperr.Validation("product_name is required")
	case !in.MinAmount.IsPositive():
		return apperr.Validation("min_amount must be positive")
	case in.MaxAmount.LessThan(in.MinAmount):
		return apperr.Validation("max_amount must be at least min_amount")
	case in.InterestRate.IsNegative() || in.InterestRate.GreaterThan(maxRate):
		return apperr.Validation("interest_rate must be between 0 and 100")
	case in.MinTenureMonths < 0 || in.MaxTenureMonths < 0:
		return apperr.Validation("tenure months must not be negative")
	case in.MinTenureMonths > emi.MaxTenureMonths || in.MaxTenureMonths > emi.MaxTenureMonths:
		return apperr.Validation("tenure months must not exceed %d", emi.MaxTenureMonths)
	case in.MinTenureMonths > 0 && in.MaxTenureMonths > 0 && in.MaxTenureMonths < in.MinTenureMonths:
		return apperr.Validation("max_tenure_months must be at least min_tenure_months")
	}
	return nil
}

func applyBank(b *domain.Bank, in BankInput) error {
	name := strings.TrimSpace(in.BankName)
	if name == "" {
		return apperr.Validation("bank_name is required")
	}
	b.BankName = name
	b.ContactEmail = strings.TrimSpace(in.ContactEmail)
	b.ContactPhone = strings.TrimSpace(in.ContactPhone)
	b.Address = strings.TrimSpace(in.Address)
	return nil
}

func uniqueBankName(ctx context.Context, repo domain.Repository, name string, self uint64) error {
	other, err := repo.GetBankByName(ctx, name)
	switch {
	case err == nil && other.ID != self:
		return apperr.Conflict("bank %q already exists", name)
	case err != nil && !usecase.IsNotFound(err):
		return err
	}
	return nil
}

func translateDuplicate(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperr.Conflict("bank already exists")
	}
	return err
}
