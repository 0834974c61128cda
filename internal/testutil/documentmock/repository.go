package documentmock

import (
	"context"
	"io"

	"gorm.io/gorm"

	domain "loanhub-backend/internal/domain/document"
)

var (
	_ domain.Repository = (*Repo)(nil)
	_ domain.BlobStore  = (*Blobs)(nil)
)

// Repo is a function-backed mock that satisfies domain.Repository.
// Unset getters report gorm.ErrRecordNotFound; unset writers succeed.
type Repo struct {
	CreateFn                   func(ctx context.Context, d *domain.Document) error
	SaveFn                     func(ctx context.Context, d *domain.Document) error
	GetByDocumentIDFn          func(ctx context.Context, documentID string) (*domain.Document, error)
	GetByDocumentIDForUpdateFn func(ctx context.Context, documentID string) (*domain.Document, error)
	ListByApplicantFn          func(ctx context.Context, applicantID uint64) ([]domain.Document, error)
	ListByStatusFn             func(ctx context.Context, status domain.Status) ([]domain.Document, error)
}

func (m *Repo) Create(ctx context.Context, d *domain.Document) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, d)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, d *domain.Document) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, d)
	}
	return nil
}

func (m *Repo) GetByDocumentID(ctx context.Context, documentID string) (*domain.Document, error) {
	if m.GetByDocumentIDFn != nil {
		return m.GetByDocumentIDFn(ctx, documentID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetByDocumentIDForUpdate(ctx context.Context, documentID string) (*domain.Document, error) {
	if m.GetByDocumentIDForUpdateFn != nil {
		return m.GetByDocumentIDForUpdateFn(ctx, documentID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) ListByApplicant(ctx context.Context, applicantID uint64) ([]domain.Document, error) {
	if m.ListByApplicantFn != nil {
		return m.ListByApplicantFn(ctx, applicantID)
	}
	return nil, nil
}

func (m *Repo) ListByStatus(ctx context.Context, status domain.Status) ([]domain.Document, error) {
	if m.ListByStatusFn != nil {
		return m.ListByStatusFn(ctx, status)
	}
	return nil, nil
}

// Blobs is a function-backed domain.BlobStore.
type Blobs struct {
	SaveFn   func(ctx context.Context, owner string, kind domain.Kind, fileName string, r io.Reader) (domain.Blob, error)
	RemoveFn func(ctx context.Context, path string) error
}

func (b *Blobs) Save(ctx context.Context, owner string, kind domain.Kind, fileName string, r io.Reader) (domain.Blob, error) {
	if b.SaveFn != nil {
		return b.SaveFn(ctx, owner, kind, fileName, r)
	}
	return domain.Blob{Path: owner + "/" + fileName}, nil
}

func (b *Blobs) Remove(ctx context.Context, path string) error {
	if b.RemoveFn != nil {
		return b.RemoveFn(ctx, path)
	}
	return nil
}
