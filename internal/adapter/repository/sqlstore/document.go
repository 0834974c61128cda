package sqlstore

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"loanhub-backend/internal/domain/document"
)

type DocumentRepository struct{ db *gorm.DB }

func NewDocumentRepository(db *gorm.DB) *DocumentRepository { return &DocumentRepository{db: db} }

func (r *DocumentRepository) Create(ctx context.Context, d *document.Document) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *DocumentRepository) Save(ctx context.Context, d *document.Document) error {
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *DocumentRepository) GetByDocumentID(ctx context.Context, documentID string) (*document.Document, error) {
	var out document.Document
	res := r.db.WithContext(ctx).Where("document_id = ?", documentID).First(&out)
	return &out, res.Error
}

func (r *DocumentRepository) GetByDocumentIDForUpdate(ctx context.Context, documentID string) (*document.Document, error) {
	var out document.Document
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("document_id = ?", documentID).
		First(&out)
	return &out, res.Error
}

func (r *DocumentRepository) ListByApplicant(ctx context.Context, applicantID uint64) ([]document.Document, error) {
	var out []document.Document
	err := r.db.WithContext(ctx).
		Where("applicant_id = ?", applicantID).
		Order("uploaded_at DESC, id DESC").
		Find(&out).Error
	return out, err
}

// ListByStatus returns every document when status is empty.
func (r *DocumentRepository) ListByStatus(ctx context.Context, status document.Status) ([]document.Document, error) {
	q := r.db.WithContext(ctx)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var out []document.Document
	err := q.Order("uploaded_at ASC, id ASC").Find(&out).Error
	return out, err
}
